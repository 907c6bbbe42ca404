// reactions — счётчики лайков/дизлайков постов.
//
// Локальные значения никогда не угадываются инкрементом: сервер
// эксклюзивен по взаимному исключению лайк/дизлайк, и клиентская догадка
// разъехалась бы с конкурентным переключением из другой вкладки.
// Кэш всегда замещается значениями из ответа сервера.
package reactions

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
)

var (
	// ErrInvalidArgument — пустой идентификатор поста.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — пост отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable — транспортный сбой; счётчики не изменены.
	ErrUnavailable = errors.New("unavailable")
	// ErrInternal — прочие ошибки.
	ErrInternal = errors.New("internal")
)

// PostsClient — операции транспорта, нужные счётчикам.
type PostsClient interface {
	LikePost(ctx context.Context, id string) (*models.ReactionCounts, error)
	DislikePost(ctx context.Context, id string) (*models.ReactionCounts, error)
}

// Service — кэш авторитетных счётчиков реакций по постам.
type Service struct {
	api PostsClient

	mu     sync.RWMutex
	counts map[string]models.ReactionCounts
}

// New создаёт новый экземпляр Service.
func New(api PostsClient) *Service {
	return &Service{
		api:    api,
		counts: make(map[string]models.ReactionCounts),
	}
}

func mapAPIError(err error) error {
	switch apierrors.KindOf(err) {
	case apierrors.KindNotFound:
		return ErrNotFound
	case apierrors.KindNetwork:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// Like ставит лайк и замещает кэш значениями сервера.
func (s *Service) Like(ctx context.Context, postID string) (models.ReactionCounts, error) {
	return s.react(ctx, postID, "service/reactions/Like", s.api.LikePost)
}

// Dislike ставит дизлайк и замещает кэш значениями сервера.
func (s *Service) Dislike(ctx context.Context, postID string) (models.ReactionCounts, error) {
	return s.react(ctx, postID, "service/reactions/Dislike", s.api.DislikePost)
}

func (s *Service) react(ctx context.Context, postID, op string, call func(context.Context, string) (*models.ReactionCounts, error)) (models.ReactionCounts, error) {
	postID = strings.TrimSpace(postID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("post_id", postID))

	if postID == "" {
		lg.Warn("invalid argument: empty post_id")
		return models.ReactionCounts{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	counts, err := call(ctx, postID)
	if err != nil {
		lg.Warn("reaction_failed", slog.String("err", err.Error()))
		return models.ReactionCounts{}, fmt.Errorf("%s: %w", op, mapAPIError(err))
	}

	s.mu.Lock()
	s.counts[postID] = *counts
	s.mu.Unlock()

	return *counts, nil
}

// Counts возвращает последние подтверждённые сервером счётчики поста.
func (s *Service) Counts(postID string) (models.ReactionCounts, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts, ok := s.counts[postID]

	return counts, ok
}
