// file — файловое хранилище пары токенов: переживает перезапуск процесса
// (аналог localStorage одностраничного клиента).
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/storage"
)

// persistedPair — формат файла. Времена — Unix UTC.
type persistedPair struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	AccessExpiresAt int64  `json:"access_expires_at"`
}

// Store — реализация storage.TokenStore поверх JSON-файла.
//
// Файл создаётся с правами 0600; запись атомарная (temp + rename), чтобы
// упавший посреди записи процесс не оставил битый файл.
type Store struct {
	mu   sync.Mutex
	path string
}

// New создаёт хранилище по указанному пути.
// Родительская директория создаётся при необходимости.
func New(path string) (*Store, error) {
	const op = "storage/file/New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{path: path}, nil
}

// Save перезаписывает пару на диске.
func (s *Store) Save(pair models.TokenPair) error {
	const op = "storage/file/Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(persistedPair{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt.UTC().Unix(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Pair читает пару с диска; отсутствие файла — storage.ErrNoCredentials.
func (s *Store) Pair() (models.TokenPair, error) {
	const op = "storage/file/Pair"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.TokenPair{}, storage.ErrNoCredentials
		}

		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	var p persistedPair
	if err := json.Unmarshal(data, &p); err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.TokenPair{
		AccessToken:     p.AccessToken,
		RefreshToken:    p.RefreshToken,
		AccessExpiresAt: time.Unix(p.AccessExpiresAt, 0).UTC(),
	}, nil
}

// Clear удаляет файл; отсутствие файла — no-op.
func (s *Store) Clear() error {
	const op = "storage/file/Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
