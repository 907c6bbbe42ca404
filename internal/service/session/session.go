// session содержит машину состояний сессии клиента: единственный источник
// истины «кто сейчас залогинен».
//
// Состояния: Bootstrapping (начальное) -> Authenticated | Anonymous;
// переходы — Bootstrap/Login/Logout плюс принудительный сброс Invalidate
// со стороны транспорта (неудачный refresh). Никакой другой код состояние
// сессии не пишет.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	apierrors "github.com/pribylovaa/go-forum-client/internal/errors"
	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/pkg/log"
	"github.com/pribylovaa/go-forum-client/internal/pkg/redact"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна.
	// Восстанавливается локально: форма показывает сообщение, состояние
	// сессии не меняется.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInternal — сбой транспорта/сервера при операции с сессией.
	ErrInternal = errors.New("internal")
)

// AuthClient — операции транспорта, нужные машине состояний.
type AuthClient interface {
	// Login открывает сессию на сервере (токены/кука — забота транспорта).
	Login(ctx context.Context, email, password string) error
	// Logout инвалидирует сессию на сервере и вычищает локальный credential.
	Logout(ctx context.Context) error
	// Me возвращает каноничный профиль текущего пользователя или 401.
	Me(ctx context.Context) (*models.User, error)
}

// Manager — владелец состояния сессии.
//
// Читатели получают иммутабельные снапшоты через Current; подписчики
// уведомляются синхронно внутри перехода, так что окно «залогинен, но
// user == nil» наружу не наблюдаемо.
type Manager struct {
	api AuthClient

	mu      sync.RWMutex
	user    *models.User
	loading bool
	subs    []func(models.Session)
}

// New создаёт менеджер в состоянии Bootstrapping (loading=true).
func New(api AuthClient) *Manager {
	return &Manager{
		api:     api,
		loading: true,
	}
}

// Current возвращает снапшот сессии.
// IsAuthenticated всегда вычисляется как user != nil — и только так.
func (m *Manager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return models.Session{
		User:            m.user,
		IsAuthenticated: m.user != nil,
		Loading:         m.loading,
	}
}

// Subscribe регистрирует наблюдателя переходов. Наблюдатель вызывается
// синхронно со снапшотом нового состояния; подписка не снимается.
func (m *Manager) Subscribe(fn func(models.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs = append(m.subs, fn)
}

// set — единственная точка записи состояния; возвращает снапшот и список
// подписчиков, которых надо уведомить уже вне блокировки.
func (m *Manager) set(user *models.User, loading bool) {
	m.mu.Lock()
	m.user = user
	m.loading = loading
	snap := models.Session{
		User:            m.user,
		IsAuthenticated: m.user != nil,
		Loading:         m.loading,
	}
	subs := make([]func(models.Session), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Bootstrap разрешает начальное состояние единственным identity-запросом.
// Успех -> Authenticated; любая ошибка -> Anonymous. В обоих случаях
// loading снимается.
func (m *Manager) Bootstrap(ctx context.Context) {
	const op = "service/session/Bootstrap"

	lg := log.From(ctx).With(slog.String("op", op))

	user, err := m.api.Me(ctx)
	if err != nil {
		lg.Debug("bootstrap_anonymous", slog.String("err", err.Error()))
		m.set(nil, false)
		return
	}

	lg.Info("bootstrap_authenticated", slog.String("user_id", user.ID))
	m.set(user, false)
}

// Login аутентифицирует пользователя.
//
// После успешного логина профиль перечитывается из identity-эндпоинта:
// объект пользователя из ответа логина каноничным не считается, иначе
// кэш сессии разъезжается с сервером.
//
// Ошибки:
//   - ErrInvalidCredentials — сервер отверг пару логин/пароль;
//   - ErrInternal — прочие сбои; состояние остаётся Anonymous.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	const op = "service/session/Login"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("email", redact.Email(email)))

	if err := m.api.Login(ctx, email, password); err != nil {
		if apierrors.IsKind(err, apierrors.KindAuth) {
			lg.Warn("login_rejected")
			return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("login_failed", slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		// Логин прошёл, а identity недоступен: частичное состояние не
		// протекает наружу — остаёмся Anonymous.
		lg.Error("identity_refetch_failed", slog.String("err", err.Error()))
		m.set(nil, false)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("login_ok", slog.String("user_id", user.ID))
	m.set(user, false)

	return nil
}

// Logout завершает сессию best-effort: серверный вызов может не удаться,
// но локальный пользователь вычищается в любом случае.
func (m *Manager) Logout(ctx context.Context) {
	const op = "service/session/Logout"

	if err := m.api.Logout(ctx); err != nil {
		log.From(ctx).Warn("logout_server_failed", slog.String("op", op), slog.String("err", err.Error()))
	}

	m.set(nil, false)
}

// Invalidate — принудительный переход Authenticated -> Anonymous извне
// прямого действия пользователя (хук транспорта при неудачном refresh).
func (m *Manager) Invalidate() {
	m.set(nil, false)
}
