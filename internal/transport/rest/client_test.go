package rest

// Тесты HTTP-клиента и интерсептора обновления credential.
//
// Проверяем:
//   - подкладывание bearer-заголовка и повтор запроса с новой парой;
//   - жёсткий инвариант «не более одного refresh на исходный запрос»;
//   - отсутствие refresh на 401 от auth-эндпоинтов;
//   - сброс credential + хук сессии при неудачном refresh;
//   - схлопывание конкурентных refresh в один вызов (singleflight);
//   - маппинг статусов/транспортных сбоёв в таксономию ошибок;
//   - cookie-режим: credential живёт в jar, клиентскому коду не виден.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-forum-client/internal/config"
	apierrors "github.com/pribylovaa/go-forum-client/internal/errors"
	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/storage"
	"github.com/pribylovaa/go-forum-client/internal/storage/memory"
)

func bearerClient(t *testing.T, baseURL string, tokens storage.TokenStore) *Client {
	t.Helper()

	c, err := New(&config.Config{
		API:  config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Auth: config.AuthConfig{Transport: config.TransportBearer},
	}, tokens)
	require.NoError(t, err)

	return c
}

func cookieClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	c, err := New(&config.Config{
		API:  config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Auth: config.AuthConfig{Transport: config.TransportCookie},
	}, nil)
	require.NoError(t, err)

	return c
}

func writeUser(w http.ResponseWriter, id string) {
	_ = json.NewEncoder(w).Encode(models.User{ID: id, Username: "alice", Role: models.RoleUser})
}

// Успешный refresh: исходный запрос повторяется ровно один раз и уже
// с новым access-токеном.
func TestDo_RefreshThenReplay(t *testing.T) {
	t.Parallel()

	var refreshCalls, meCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		_ = json.NewEncoder(w).Encode(authResponse{
			AccessToken:     "fresh-access",
			RefreshToken:    "fresh-refresh",
			AccessExpiresAt: time.Now().Add(15 * time.Minute).Unix(),
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeUser(w, "u1")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	require.NoError(t, tokens.Save(models.TokenPair{AccessToken: "stale", RefreshToken: "old-refresh"}))

	c := bearerClient(t, srv.URL, tokens)

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	require.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	require.Equal(t, int32(2), atomic.LoadInt32(&meCalls), "original + exactly one replay")

	pair, err := tokens.Pair()
	require.NoError(t, err)
	require.Equal(t, "fresh-access", pair.AccessToken)
	require.Equal(t, "fresh-refresh", pair.RefreshToken)
}

// Сервер отвергает даже обновлённую пару: refresh вызывается ровно один
// раз, после чего ошибка пробрасывается без дальнейших попыток.
func TestDo_AtMostOneRefreshPerRequest(t *testing.T) {
	t.Parallel()

	var refreshCalls, meCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "still-bad", RefreshToken: "r2"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	require.NoError(t, tokens.Save(models.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	c := bearerClient(t, srv.URL, tokens)

	_, err := c.Me(context.Background())
	require.Error(t, err)
	require.True(t, apierrors.IsKind(err, apierrors.KindAuth))

	require.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	require.Equal(t, int32(2), atomic.LoadInt32(&meCalls))
}

// 401 от auth-эндпоинта (login) — плохие учётные данные, refresh не
// запускается, ошибка не маскируется под истёкшую сессию.
func TestDo_NoRefreshForAuthEndpoints(t *testing.T) {
	t.Parallel()

	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]map[string]string{
			"error": {"code": "unauthenticated", "message": "invalid credentials"},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	c := bearerClient(t, srv.URL, tokens)

	err := c.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	require.True(t, apierrors.IsKind(err, apierrors.KindAuth))
	require.False(t, apierrors.IsKind(err, apierrors.KindSessionExpired))

	require.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
}

// Неудачный refresh: credential вычищен, хук сессии сработал,
// наружу ушла ошибка session_expired поверх исходного 401.
func TestDo_RefreshFailure_ClearsAndFiresHook(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	require.NoError(t, tokens.Save(models.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	c := bearerClient(t, srv.URL, tokens)

	var hookFired int32
	c.OnSessionExpired(func() { atomic.AddInt32(&hookFired, 1) })

	_, err := c.Me(context.Background())
	require.Error(t, err)
	require.True(t, apierrors.IsKind(err, apierrors.KindSessionExpired))

	require.Equal(t, int32(1), atomic.LoadInt32(&hookFired))

	_, err = tokens.Pair()
	require.ErrorIs(t, err, storage.ErrNoCredentials)
}

// Конкурентные 401 не устраивают шторм refresh-вызовов: все запросы
// делят один refresh и доезжают с обновлённой парой.
func TestDo_ConcurrentRefreshIsShared(t *testing.T) {
	t.Parallel()

	const workers = 4

	var refreshCalls int32
	arrived := make(chan struct{}, workers)
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		// Широкое окно, чтобы все воркеры гарантированно застали общий flight.
		time.Sleep(100 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "fresh", RefreshToken: "r2"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer fresh" {
			writeUser(w, "u1")
			return
		}

		// Держим все первые попытки до тех пор, пока не соберутся все
		// воркеры: 401 они получат одновременно.
		arrived <- struct{}{}
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	require.NoError(t, tokens.Save(models.TokenPair{AccessToken: "stale", RefreshToken: "r"}))

	c := bearerClient(t, srv.URL, tokens)

	go func() {
		for i := 0; i < workers; i++ {
			<-arrived
		}
		close(release)
	}()

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Me(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	require.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

// Маппинг статусов в категории на живом сервере.
func TestDo_StatusMapping(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/mod/user/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/post/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	require.NoError(t, tokens.Save(models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	c := bearerClient(t, srv.URL, tokens)

	err := c.DeleteUser(context.Background(), "u2")
	require.True(t, apierrors.IsKind(err, apierrors.KindPermission))

	_, err = c.PostByID(context.Background(), "missing")
	require.True(t, apierrors.IsKind(err, apierrors.KindNotFound))
}

// Недоступный сервер — network, а не internal.
func TestDo_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // закрываем сразу: порт мёртв

	c := cookieClient(t, srv.URL)

	_, err := c.Me(context.Background())
	require.Error(t, err)
	require.True(t, apierrors.IsKind(err, apierrors.KindNetwork))
}

// Счётчики реакций декодируются как есть из ответа сервера.
func TestLikePost_ReturnsServerCounts(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/post/p1/like", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		fmt.Fprint(w, `{"likes": 7, "dislikes": 2}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := cookieClient(t, srv.URL)

	counts, err := c.LikePost(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, int64(7), counts.Likes)
	require.Equal(t, int64(2), counts.Dislikes)
}

// Cookie-режим: логин устанавливает httpOnly-куку, дальнейшие запросы
// авторизуются ею без какого-либо клиентского токена.
func TestCookieMode_SessionViaJar(t *testing.T) {
	t.Parallel()

	const sessionValue = "s3cret"

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: sessionValue, HttpOnly: true, Path: "/"})
		_ = json.NewEncoder(w).Encode(authResponse{UserID: "u1"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("sid")
		if err != nil || ck.Value != sessionValue {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeUser(w, "u1")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := cookieClient(t, srv.URL)

	require.NoError(t, c.Login(context.Background(), "alice@example.com", "pw"))

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}

// Logout вычищает локальный credential даже при недоступном сервере.
func TestLogout_BestEffort(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := memory.New()
	require.NoError(t, tokens.Save(models.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	c := bearerClient(t, srv.URL, tokens)

	err := c.Logout(context.Background())
	require.Error(t, err)

	_, err = tokens.Pair()
	require.ErrorIs(t, err, storage.ErrNoCredentials)
}

// Логин прошёл по сети, но пара не сохранилась (битый диск под файловым
// хранилищем): ошибка не глотается, иначе клиент считал бы себя
// залогиненным без credential для последующих запросов.
// Срок действия access-токена восстанавливается из exp-клейма JWT,
// когда сервер не прислал access_expires_at.
func TestTokenPair_ExpiryFromJWT(t *testing.T) {
	t.Parallel()

	// HS256-токен c exp=4102444800 (2100-01-01T00:00:00Z); подпись не
	// проверяется, поэтому её валидность не важна.
	const token = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJleHAiOjQxMDI0NDQ4MDB9." +
		"invalid-signature"

	pair := authResponse{AccessToken: token, RefreshToken: "r"}.tokenPair()
	require.Equal(t, time.Unix(4102444800, 0).UTC(), pair.AccessExpiresAt)
}

func TestTokenPair_ExplicitExpiryWins(t *testing.T) {
	t.Parallel()

	at := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	pair := authResponse{AccessToken: "opaque", RefreshToken: "r", AccessExpiresAt: at.Unix()}.tokenPair()
	require.Equal(t, at, pair.AccessExpiresAt)
}
