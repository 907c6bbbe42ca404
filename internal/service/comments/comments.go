// comments — клиентский кэш дерева комментариев поста.
//
// Сервис владеет лесом каждого загруженного поста и применяет к нему
// чистые трансформации из tree.go строго после подтверждения сервера:
// оптимистичных мутаций нет, упавший запрос оставляет дерево нетронутым.
package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	apierrors "github.com/pribylovaa/go-forum-client/internal/errors"
	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/pkg/log"
	"github.com/pribylovaa/go-forum-client/internal/transport/rest"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — комментарий/пост отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound — цель ответа исчезла из леса (конкурентное удаление).
	ErrParentNotFound = errors.New("parent not found")
	// ErrPermissionDenied — у пользователя нет прав на операцию.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrStaleLoad — ответ загрузки пришёл после ухода со страницы поста.
	ErrStaleLoad = errors.New("stale load")
	// ErrUnavailable — транспортный сбой; дерево не изменено, нужен
	// явный повтор со стороны пользователя.
	ErrUnavailable = errors.New("unavailable")
	// ErrInternal — прочие ошибки.
	ErrInternal = errors.New("internal")
)

// CommentsClient — операции транспорта, нужные движку дерева.
type CommentsClient interface {
	CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, in rest.CreateCommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentByModerator(ctx context.Context, id string) error
}

// Service — кэш лесов комментариев по постам.
//
// Один мьютекс сериализует применение мутаций: к дереву они применяются
// в порядке прихода подтверждений сервера, а не в порядке отправки,
// поэтому перекрывающиеся операции не теряют обновления друг друга.
type Service struct {
	api CommentsClient

	mu      sync.Mutex
	forests map[string][]models.Comment
	epochs  map[string]uint64
}

// New создаёт новый экземпляр Service.
func New(api CommentsClient) *Service {
	return &Service{
		api:     api,
		forests: make(map[string][]models.Comment),
		epochs:  make(map[string]uint64),
	}
}

// mapAPIError транслирует ошибку транспортного слоя в сентинел сервиса.
func mapAPIError(err error) error {
	switch apierrors.KindOf(err) {
	case apierrors.KindNotFound:
		return ErrNotFound
	case apierrors.KindPermission:
		return ErrPermissionDenied
	case apierrors.KindNetwork:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// LoadTree загружает лес комментариев поста и делает его текущим кэшем.
//
// Каждый вызов поднимает эпоху загрузки поста; ответ, доехавший после
// Reset или более нового LoadTree, отбрасывается (ErrStaleLoad) — иначе
// поздний ответ воскресил бы дерево уже закрытой страницы.
func (s *Service) LoadTree(ctx context.Context, postID string) ([]models.Comment, error) {
	const op = "service/comments/LoadTree"

	postID = strings.TrimSpace(postID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("post_id", postID))

	if postID == "" {
		lg.Warn("invalid argument: empty post_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	s.mu.Lock()
	s.epochs[postID]++
	epoch := s.epochs[postID]
	s.mu.Unlock()

	forest, err := s.api.CommentsByPost(ctx, postID)
	if err != nil {
		lg.Warn("load_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, mapAPIError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[postID] != epoch {
		lg.Debug("stale_load_discarded")
		return nil, fmt.Errorf("%s: %w", op, ErrStaleLoad)
	}

	s.forests[postID] = forest

	return forest, nil
}

// Reset сбрасывает кэш поста при уходе со страницы; поздние ответы
// текущих загрузок после этого игнорируются.
func (s *Service) Reset(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.forests, postID)
	s.epochs[postID]++
}

// Forest возвращает текущий кэшированный лес поста.
// Трансформации иммутабельны, поэтому снапшот можно отдавать как есть.
func (s *Service) Forest(postID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.forests[postID]
}

// ReplyTarget возвращает id узла, к которому реально прикрепится ответ
// на targetID (политика сворачивания глубины) — для композера ответа.
func (s *Service) ReplyTarget(postID, targetID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return AttachmentAncestor(s.forests[postID], targetID)
}

// Submit создаёт комментарий (корень или ответ) и после подтверждения
// сервера вносит его в кэш.
//
// Правила:
//   - content нормализуется и не должен быть пуст: текст формы не
//     очищается до успеха, неудачная отправка повторяется явно;
//   - parentID != "" прикрепляет ответ к цели с учётом сворачивания
//     глубины; исчезнувшая цель — ErrParentNotFound;
//   - корневые комментарии встают первыми (сервер отдаёт корни
//     новыми-сначала), ответы — последними в Replies родителя.
func (s *Service) Submit(ctx context.Context, postID, parentID, content string) (*models.Comment, error) {
	const op = "service/comments/Submit"

	postID = strings.TrimSpace(postID)
	content = strings.TrimSpace(content)

	lg := log.From(ctx).With(slog.String("op", op), slog.String("post_id", postID), slog.String("parent_id", parentID))

	if postID == "" || content == "" {
		lg.Warn("invalid argument: empty post_id or content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Свёртка глубины решается по текущему снапшоту до запроса.
	effectiveParent := ""
	if parentID != "" {
		s.mu.Lock()
		target, ok := AttachmentAncestor(s.forests[postID], parentID)
		s.mu.Unlock()

		if !ok {
			lg.Warn("reply_target_missing")
			return nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		}

		effectiveParent = target
	}

	created, err := s.api.CreateComment(ctx, rest.CreateCommentInput{
		Content:  content,
		PostID:   postID,
		ParentID: effectiveParent,
	})
	if err != nil {
		lg.Warn("create_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, mapAPIError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if effectiveParent == "" {
		s.forests[postID] = append([]models.Comment{*created}, s.forests[postID]...)
		return created, nil
	}

	forest, ok := InsertReply(s.forests[postID], effectiveParent, *created)
	if !ok {
		// Родителя успели удалить, пока запрос был в полёте: сервер
		// комментарий принял, локально прикреплять некуда — тихий no-op.
		lg.Warn("insert_parent_vanished")
		return created, nil
	}

	s.forests[postID] = forest

	return created, nil
}

// Delete удаляет комментарий вместе с поддеревом.
//
// Авторизация проверяется клиентски до запроса: автор идёт через
// self-delete, модератор/администратор — через модерационный эндпоинт
// (серверная запись различается, эффект для дерева одинаков).
// Кэш правится только после подтверждения сервера.
func (s *Service) Delete(ctx context.Context, actor *models.User, postID, commentID string) error {
	const op = "service/comments/Delete"

	commentID = strings.TrimSpace(commentID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("post_id", postID), slog.String("comment_id", commentID))

	if commentID == "" {
		lg.Warn("invalid argument: empty comment_id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	s.mu.Lock()
	target, ok := Find(s.forests[postID], commentID)
	s.mu.Unlock()

	if !ok {
		lg.Warn("comment not found")
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	authorID := ""
	if target.Author != nil {
		authorID = target.Author.ID
	}

	allowed, moderated := CanDelete(actor, authorID)
	if !allowed {
		lg.Warn("delete_denied")
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	var err error
	if moderated {
		err = s.api.DeleteCommentByModerator(ctx, commentID)
	} else {
		err = s.api.DeleteComment(ctx, commentID)
	}

	if err != nil {
		lg.Warn("delete_failed", slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w", op, mapAPIError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.forests[postID] = RemoveSubtree(s.forests[postID], commentID)

	return nil
}
