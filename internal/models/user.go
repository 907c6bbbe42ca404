// models содержит доменные сущности клиента форума.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Role — роль пользователя; строковый enum, как отдаёт сервер.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid сообщает, известна ли роль клиенту.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanModerate — true для ролей с правами модерации чужого контента.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// User — профиль пользователя, каким его видит клиент.
// Role авторитетна только для UI-гейтинга: сервер перепроверяет права сам.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty"`
	Role        Role      `json:"role"`
	Description string    `json:"description,omitempty"`
	PostIDs     []string  `json:"post_ids,omitempty"`
	CommentIDs  []string  `json:"comment_ids,omitempty"`
	Score       int64     `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
