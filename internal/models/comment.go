package models

import "time"

// CommentAuthor — усечённая ссылка на автора комментария.
// nil в Comment.Author означает удалённый аккаунт.
type CommentAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Comment — узел дерева комментариев поста.
//
// Инвариант: набор комментариев одного поста — лес; каждый комментарий
// встречается в нём ровно один раз. ParentID == "" означает корень.
// Глубина в данных не ограничена; политика сворачивания глубоких ответов
// живёт в service/comments, а не в модели.
type Comment struct {
	ID        string         `json:"id"`
	PostID    string         `json:"post_id"`
	ParentID  string         `json:"parent_id,omitempty"`
	Author    *CommentAuthor `json:"author"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Replies   []Comment      `json:"replies,omitempty"`
}
