// memory — потокобезопасное хранилище пары токенов в памяти процесса.
// Используется по умолчанию, когда персистентность не сконфигурирована.
package memory

import (
	"sync"

	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/storage"
)

// Store — in-memory реализация storage.TokenStore.
type Store struct {
	mu   sync.RWMutex
	pair models.TokenPair
	set  bool
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{}
}

// Save перезаписывает сохранённую пару.
func (s *Store) Save(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = pair
	s.set = true

	return nil
}

// Pair возвращает последнюю сохранённую пару или storage.ErrNoCredentials.
func (s *Store) Pair() (models.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return models.TokenPair{}, storage.ErrNoCredentials
	}

	return s.pair, nil
}

// Clear удаляет пару; повторный вызов — no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = models.TokenPair{}
	s.set = false

	return nil
}
