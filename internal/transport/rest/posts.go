package rest

import (
	"context"
	"net/http"

	"github.com/pribylovaa/go-forum-client/internal/models"
)

// CreatePostInput — создание поста.
type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostInput — правка поста.
type UpdatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Posts возвращает ленту постов.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/post", nil, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// PostByID возвращает пост по идентификатору.
func (c *Client) PostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, "/post/"+id, nil, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// CreatePost создаёт пост.
func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/post", in, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// UpdatePost правит пост.
func (c *Client) UpdatePost(ctx context.Context, id string, in UpdatePostInput) error {
	return c.do(ctx, http.MethodPut, "/post/"+id, in, nil)
}

// DeletePost удаляет пост.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/post/"+id, nil, nil)
}

// LikePost ставит лайк и возвращает авторитетные счётчики сервера.
func (c *Client) LikePost(ctx context.Context, id string) (*models.ReactionCounts, error) {
	var counts models.ReactionCounts
	if err := c.do(ctx, http.MethodPut, "/post/"+id+"/like", nil, &counts); err != nil {
		return nil, err
	}

	return &counts, nil
}

// DislikePost ставит дизлайк и возвращает авторитетные счётчики сервера.
func (c *Client) DislikePost(ctx context.Context, id string) (*models.ReactionCounts, error) {
	var counts models.ReactionCounts
	if err := c.do(ctx, http.MethodPut, "/post/"+id+"/dislike", nil, &counts); err != nil {
		return nil, err
	}

	return &counts, nil
}
