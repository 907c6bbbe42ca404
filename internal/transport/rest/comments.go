package rest

import (
	"context"
	"net/http"

	"github.com/pribylovaa/go-forum-client/internal/models"
)

// CreateCommentInput — создание корневого комментария или ответа.
// Пустой ParentID означает корень.
type CreateCommentInput struct {
	Content  string
	PostID   string
	ParentID string
}

// createCommentRequest — тело POST /comment; имена полей — контракт сервера.
type createCommentRequest struct {
	Content       string  `json:"content"`
	PostID        string  `json:"postId"`
	ParentComment *string `json:"parentComment"`
}

// CommentsByPost возвращает лес комментариев поста в порядке сервера
// (корни — сначала новые).
func (c *Client) CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, "/comment/get/"+postID, nil, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// CreateComment создаёт комментарий и возвращает серверную запись.
func (c *Client) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	req := createCommentRequest{
		Content: in.Content,
		PostID:  in.PostID,
	}
	if in.ParentID != "" {
		req.ParentComment = &in.ParentID
	}

	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/comment", req, &comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

// DeleteComment удаляет собственный комментарий.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/comment/"+id, nil, nil)
}

// DeleteCommentByModerator удаляет чужой комментарий от имени модератора.
// Отдельный эндпоинт: сервер фиксирует модерационное удаление иначе,
// чем самоудаление, хотя эффект для дерева одинаков.
func (c *Client) DeleteCommentByModerator(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/mod/comment/"+id, nil, nil)
}
