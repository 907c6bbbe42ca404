// storage описывает хранилище credential bearer-варианта.
package storage

import (
	"errors"

	"github.com/pribylovaa/go-forum-client/internal/models"
)

var (
	// ErrNoCredentials — в хранилище нет сохранённой пары токенов.
	ErrNoCredentials = errors.New("no credentials")
)

// TokenStore описывает операции над парой токенов.
//
// Семантика:
//   - Save перезаписывает пару целиком (частичных обновлений нет);
//   - Pair возвращает последнюю сохранённую пару или ErrNoCredentials;
//   - Clear удаляет пару; повторный Clear — no-op.
//
// Реализации обязаны быть потокобезопасными: интерсептор обновления
// может писать пару из нескольких конкурентных запросов.
type TokenStore interface {
	Save(pair models.TokenPair) error
	Pair() (models.TokenPair, error)
	Clear() error
}
