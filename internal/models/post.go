package models

import "time"

// Post — пост форума (периферийная для клиентского ядра сущность).
// Инвариант likerIDs/dislikerIDs (id максимум в одном из списков)
// обеспечивает сервер; клиент лишь отражает возвращённые данные.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	LikerIDs    []string  `json:"liker_ids,omitempty"`
	DislikerIDs []string  `json:"disliker_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReactionCounts — авторитетные счётчики реакций из ответа сервера.
type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
