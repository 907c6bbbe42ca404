// rest — HTTP-клиент к REST API форума.
//
// Пакет отвечает за три вещи:
//   - подкладывание credential в исходящие запросы (bearer-заголовок или
//     cookie-jar — режим выбирается конфигом один раз на процесс);
//   - перехват 401 с ровно одной попыткой обновления пары и одним
//     повтором исходного запроса;
//   - трансляцию любых сбоёв в таксономию internal/errors — сырые
//     транспортные ошибки выше этого слоя не выходят.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pribylovaa/go-forum-client/internal/config"
	apierrors "github.com/pribylovaa/go-forum-client/internal/errors"
	"github.com/pribylovaa/go-forum-client/internal/pkg/log"
	"github.com/pribylovaa/go-forum-client/internal/storage"
)

// Client — клиент REST API форума.
// Экземпляр безопасен для конкурентного использования.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	mode    string
	tokens  storage.TokenStore

	// Конкурентные 401 не должны устраивать шторм refresh-вызовов:
	// singleflight сводит их к одному обращению, результат делят все.
	refresh singleflight.Group

	mu               sync.Mutex
	onSessionExpired func()
}

// New создаёт клиент по конфигурации.
// В bearer-режиме tokens обязателен; в cookie-режиме игнорируется,
// а credential живёт в httpOnly-куке внутри cookie-jar.
func New(cfg *config.Config, tokens storage.TokenStore) (*Client, error) {
	const op = "transport/rest/New"

	base, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	c := &Client{
		baseURL: base,
		mode:    cfg.Auth.Transport,
		http:    &http.Client{Timeout: cfg.API.Timeout},
	}

	switch cfg.Auth.Transport {
	case config.TransportCookie:
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("%s: cookie jar: %w", op, err)
		}
		c.http.Jar = jar
	case config.TransportBearer:
		if tokens == nil {
			return nil, fmt.Errorf("%s: bearer transport requires a token store", op)
		}
		c.tokens = tokens
	default:
		return nil, fmt.Errorf("%s: unknown auth transport %q", op, cfg.Auth.Transport)
	}

	return c, nil
}

// OnSessionExpired регистрирует хук принудительного сброса сессии.
// Вызывается композиционным корнем: клиент не знает о Session Manager
// напрямую, иначе получится цикл зависимостей.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onSessionExpired = fn
}

func (c *Client) fireSessionExpired() {
	c.mu.Lock()
	fn := c.onSessionExpired
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Эндпоинты, на 401 которых refresh не запускается: это либо сам refresh
// (рекурсия), либо login/register, где 401 означает плохие учётные данные,
// а не протухшую сессию.
func isAuthEndpoint(path string) bool {
	switch path {
	case "/auth/login", "/auth/register", "/auth/refresh":
		return true
	default:
		return false
	}
}

// call — явное состояние одной логической операции.
// Флаг replayed живёт здесь, а не в *http.Request: транспортный объект
// не мутируется, а «был ли повтор» видно в одном месте.
type call struct {
	method    string
	path      string
	body      []byte
	requestID string
	replayed  bool
}

// do выполняет запрос с перехватом 401.
//
// Гарантии:
//   - не более одной попытки refresh на исходный запрос;
//   - повтор исходного запроса — ровно один, с credential, актуальным
//     на момент повтора;
//   - 401 на auth-эндпоинтах пробрасывается как есть.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	const op = "transport/rest/do"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("method", method), slog.String("path", path))

	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
	}

	cl := &call{
		method:    method,
		path:      path,
		body:      body,
		requestID: uuid.NewString(),
	}

	for {
		status, respBody, err := c.send(ctx, cl)
		if err != nil {
			lg.Warn("transport_failure", slog.String("err", err.Error()))
			return apierrors.FromTransport(err, cl.requestID)
		}

		if status == http.StatusUnauthorized && !isAuthEndpoint(path) && !cl.replayed {
			cl.replayed = true

			if err := c.refreshCredentials(ctx); err != nil {
				lg.Warn("refresh_failed", slog.String("err", err.Error()))
				c.fireSessionExpired()

				orig := apierrors.FromStatus(status, decodeEnvelope(respBody), cl.requestID)
				return apierrors.Wrap(apierrors.KindSessionExpired, "session expired", orig)
			}

			lg.Debug("credential_refreshed_replaying")
			continue
		}

		if status >= 400 {
			return apierrors.FromStatus(status, decodeEnvelope(respBody), cl.requestID)
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return apierrors.Wrap(apierrors.KindInternal, "malformed response body", err)
			}
		}

		return nil
	}
}

// send собирает и выполняет один HTTP-запрос.
// Запрос строится заново на каждую попытку: credential перечитывается
// из хранилища, так что повтор идёт уже с обновлённой парой.
func (c *Client) send(ctx context.Context, cl *call) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL.JoinPath(cl.path).String(), bytes.NewReader(cl.body))
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("X-Request-Id", cl.requestID)
	if len(cl.body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.mode == config.TransportBearer {
		if pair, err := c.tokens.Pair(); err == nil && pair.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, data, nil
}

// refreshCredentials выполняет один refresh, разделяемый всеми
// конкурентными вызовами. Успех — новая пара сохранена (bearer) или
// сервер переустановил куку (cookie). Любая ошибка — локальный credential
// вычищен: дальше жить с ним бессмысленно.
func (c *Client) refreshCredentials(ctx context.Context) error {
	const op = "transport/rest/refreshCredentials"

	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		var in any
		if c.mode == config.TransportBearer {
			pair, err := c.tokens.Pair()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}

			in = authRefreshRequest{RefreshToken: pair.RefreshToken}
		}

		var body []byte
		if in != nil {
			var err error
			body, err = json.Marshal(in)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		cl := &call{
			method:    http.MethodPost,
			path:      "/auth/refresh",
			body:      body,
			requestID: uuid.NewString(),
		}

		status, respBody, err := c.send(ctx, cl)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if status >= 400 {
			return nil, fmt.Errorf("%s: %w", op, apierrors.FromStatus(status, decodeEnvelope(respBody), cl.requestID))
		}

		if c.mode == config.TransportBearer {
			var resp authResponse
			if err := json.Unmarshal(respBody, &resp); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}

			if err := c.tokens.Save(resp.tokenPair()); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		return nil, nil
	})

	if err != nil {
		c.clearCredentials()
	}

	return err
}

// clearCredentials вычищает локальный credential обоих режимов.
func (c *Client) clearCredentials() {
	if c.tokens != nil {
		_ = c.tokens.Clear()
	}

	if c.http.Jar != nil {
		// Куки по базовому URL затираются протухшими значениями.
		c.http.Jar.SetCookies(c.baseURL, expireCookies(c.http.Jar.Cookies(c.baseURL)))
	}
}

func expireCookies(cookies []*http.Cookie) []*http.Cookie {
	expired := make([]*http.Cookie, 0, len(cookies))
	for _, ck := range cookies {
		expired = append(expired, &http.Cookie{Name: ck.Name, Value: "", MaxAge: -1})
	}

	return expired
}

// decodeEnvelope разбирает конверт ошибки; битое тело — пустой конверт.
func decodeEnvelope(body []byte) apierrors.ErrorEnvelope {
	var env apierrors.ErrorEnvelope
	if len(body) > 0 {
		_ = json.Unmarshal(body, &env)
	}

	return env
}
