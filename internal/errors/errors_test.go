package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// Таблица маппинга статусов в категории.
func TestFromStatus_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindInvalidArgument},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindPermission},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusInternalServerError, KindInternal},
		{http.StatusBadGateway, KindInternal},
		{http.StatusTeapot, KindInternal},
	}

	for _, tc := range cases {
		e := FromStatus(tc.status, ErrorEnvelope{}, "rid-1")
		require.Equal(t, tc.kind, e.Kind, "status=%d", tc.status)
		require.Equal(t, tc.status, e.HTTPStatus)
		require.Equal(t, "rid-1", e.RequestID)
	}
}

func TestFromStatus_MessageFallback(t *testing.T) {
	t.Parallel()

	// Сообщение из конверта приоритетнее.
	env := ErrorEnvelope{}
	env.Error.Message = "email already taken"
	e := FromStatus(http.StatusConflict, env, "")
	require.Equal(t, "email already taken", e.Message)

	// Пустой конверт — берём http.StatusText.
	e = FromStatus(http.StatusNotFound, ErrorEnvelope{}, "")
	require.Equal(t, "Not Found", e.Message)
}

func TestKindOf_And_IsKind(t *testing.T) {
	t.Parallel()

	base := New(KindAuth, "invalid credentials")
	wrapped := Wrap(KindSessionExpired, "refresh failed", base)

	require.Equal(t, KindSessionExpired, KindOf(wrapped))
	require.True(t, IsKind(wrapped, KindSessionExpired))
	require.False(t, IsKind(wrapped, KindNetwork))

	// Чужая ошибка — internal.
	require.Equal(t, KindInternal, KindOf(stderrors.New("plain")))
}

func TestIs_MatchesByKind(t *testing.T) {
	t.Parallel()

	err := FromTransport(stderrors.New("dial tcp: refused"), "rid-2")

	require.True(t, stderrors.Is(err, New(KindNetwork, "")))
	require.False(t, stderrors.Is(err, New(KindAuth, "")))
}

func TestUnwrap_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("dial tcp: refused")
	err := FromTransport(cause, "")

	require.ErrorIs(t, err, cause)
}
