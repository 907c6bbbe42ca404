package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/storage"
)

func TestStore_EmptyByDefault(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.Pair()
	require.ErrorIs(t, err, storage.ErrNoCredentials)
}

func TestStore_SavePairClear(t *testing.T) {
	t.Parallel()

	s := New()
	pair := models.TokenPair{
		AccessToken:     "access",
		RefreshToken:    "refresh",
		AccessExpiresAt: time.Now().UTC().Add(15 * time.Minute),
	}

	require.NoError(t, s.Save(pair))

	got, err := s.Pair()
	require.NoError(t, err)
	require.Equal(t, pair, got)

	require.NoError(t, s.Clear())
	_, err = s.Pair()
	require.ErrorIs(t, err, storage.ErrNoCredentials)

	// Повторный Clear — no-op.
	require.NoError(t, s.Clear())
}

func TestStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.Save(models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, s.Save(models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}))

	got, err := s.Pair()
	require.NoError(t, err)
	require.Equal(t, "a2", got.AccessToken)
	require.Equal(t, "r2", got.RefreshToken)
}

// Конкурентные записи не должны ломать состояние (go test -race).
func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(models.TokenPair{AccessToken: "a", RefreshToken: "r"})
			_, _ = s.Pair()
		}()
	}
	wg.Wait()

	got, err := s.Pair()
	require.NoError(t, err)
	require.Equal(t, "a", got.AccessToken)
}
