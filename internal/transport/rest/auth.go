package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/go-forum-client/internal/config"
	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/pkg/log"
	"github.com/pribylovaa/go-forum-client/internal/pkg/redact"
)

// Тела auth-запросов/ответов, зеркалят REST-контракт сервера.

type authLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type authRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	UserID          string `json:"user_id"`
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	AccessExpiresAt int64  `json:"access_expires_at"` // Unix UTC; 0 — не прислан
}

// tokenPair собирает models.TokenPair из ответа.
// Если сервер не прислал access_expires_at, срок восстанавливается из
// exp-клейма самого JWT (подпись не проверяется — клиенту она и не нужна,
// авторитет по валидности токена всегда сервер).
func (r authResponse) tokenPair() models.TokenPair {
	pair := models.TokenPair{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}

	if r.AccessExpiresAt > 0 {
		pair.AccessExpiresAt = time.Unix(r.AccessExpiresAt, 0).UTC()
		return pair
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(r.AccessToken, &claims); err == nil && claims.ExpiresAt != nil {
		pair.AccessExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	return pair
}

// RegisterInput — параметры регистрации.
type RegisterInput struct {
	Email    string
	Password string
	Username string
	Name     string
}

// Login аутентифицирует пользователя.
// В bearer-режиме сохраняет выданную пару токенов; в cookie-режиме
// сервер сам устанавливает httpOnly-куку через cookie-jar клиента.
// Ответ логина не считается каноничным источником профиля — за ним
// вызывающий код идёт отдельно в Me.
func (c *Client) Login(ctx context.Context, email, password string) error {
	const op = "transport/rest/Login"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("email", redact.Email(email)))

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", authLoginRequest{Email: email, Password: password}, &resp); err != nil {
		lg.Warn("login_failed")
		return err
	}

	if c.mode == config.TransportBearer {
		if err := c.tokens.Save(resp.tokenPair()); err != nil {
			return fmt.Errorf("%s: save tokens: %w", op, err)
		}
	}

	lg.Info("login_ok")
	return nil
}

// Register создаёт аккаунт. Сессию не открывает: после регистрации
// клиент логинится обычным путём.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	const op = "transport/rest/Register"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("email", redact.Email(in.Email)))

	err := c.do(ctx, http.MethodPost, "/auth/register", authRegisterRequest{
		Email:    in.Email,
		Password: in.Password,
		Username: in.Username,
		Name:     in.Name,
	}, nil)
	if err != nil {
		lg.Warn("register_failed")
		return err
	}

	lg.Info("register_ok")
	return nil
}

// Logout инвалидирует сессию на сервере и в любом случае вычищает
// локальный credential: цель операции — чистое локальное состояние,
// недоступность сервера её не отменяет.
func (c *Client) Logout(ctx context.Context) error {
	const op = "transport/rest/Logout"

	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)

	c.clearCredentials()

	if err != nil {
		log.From(ctx).Warn("logout_server_failed", slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}

// Me возвращает каноничный профиль текущего пользователя (или 401).
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// SessionExpiry возвращает срок действия access-токена bearer-режима.
// В cookie-режиме (и при пустом хранилище) — нулевое время и false.
func (c *Client) SessionExpiry() (time.Time, bool) {
	if c.tokens == nil {
		return time.Time{}, false
	}

	pair, err := c.tokens.Pair()
	if err != nil || pair.AccessExpiresAt.IsZero() {
		return time.Time{}, false
	}

	return pair.AccessExpiresAt, true
}
