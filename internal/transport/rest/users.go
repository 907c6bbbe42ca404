package rest

import (
	"context"
	"net/http"

	"github.com/pribylovaa/go-forum-client/internal/models"
)

// UpdateMeInput — правка собственного профиля; nil-поля не меняются.
type UpdateMeInput struct {
	Username    *string `json:"username,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
}

type updateRoleRequest struct {
	Role models.Role `json:"role"`
}

// UpdateMe правит профиль текущего пользователя.
func (c *Client) UpdateMe(ctx context.Context, in UpdateMeInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/user/me", in, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteMe удаляет аккаунт текущего пользователя.
func (c *Client) DeleteMe(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/user/me", nil, nil)
}

// AllUsers — список пользователей; доступен модератору и администратору.
func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/mod/user", nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// DeleteUser удаляет пользователя; доступен модератору и администратору.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/mod/user/"+id, nil, nil)
}

// UpdateUserRole меняет роль пользователя; доступен только администратору.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	return c.do(ctx, http.MethodPatch, "/admin/"+id+"/role", updateRoleRequest{Role: role}, nil)
}
