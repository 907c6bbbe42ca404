// errors — таксономия ошибок клиентского ядра.
//
// Ошибки конструируются ровно один раз — на HTTP-границе (transport/rest):
// на вход идут статус ответа и конверт {"error":{code,message}}, на выход —
// *Error с машинным Kind. Выше по стеку ошибка никогда не разбирается по
// полям ответа ad hoc: сервисные слои матчатся только на Kind через
// errors.Is/KindOf и мапят его на свои сентинелы.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind — стабильная машиночитаемая категория ошибки.
type Kind string

const (
	// KindAuth — неверные учётные данные при логине; восстанавливается
	// локально (форма показывает сообщение), состояние сессии не меняется.
	KindAuth Kind = "auth"
	// KindSessionExpired — refresh не удался; сессия принудительно
	// сбрасывается, пользователь уводится на вход.
	KindSessionExpired Kind = "session_expired"
	// KindPermission — действие требует роли, которой нет.
	KindPermission Kind = "permission_denied"
	// KindNotFound — сущность не найдена на сервере.
	KindNotFound Kind = "not_found"
	// KindConflict — конфликт (занятый e-mail и т.п.).
	KindConflict Kind = "conflict"
	// KindInvalidArgument — сервер отверг входные данные.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNetwork — транспортный сбой: запрос не дошёл или ответ не получен.
	KindNetwork Kind = "network"
	// KindInternal — всё прочее (5xx, битое тело ответа).
	KindInternal Kind = "internal"
)

// Error — единственный тип ошибок, пересекающий HTTP-границу.
// RequestID прокидывается из X-Request-Id для привязки к трассировке.
type Error struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	RequestID  string
	cause      error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap отдаёт исходную (обёрнутую) ошибку, если она есть.
func (e *Error) Unwrap() error { return e.cause }

// Is позволяет errors.Is сравнивать по Kind:
// цель с тем же Kind и пустыми остальными полями считается совпадением.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// New создаёт ошибку заданной категории.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap создаёт ошибку категории kind поверх исходной.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf возвращает категорию ошибки или KindInternal для чужих ошибок.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// IsKind — true, если где-то в цепочке есть *Error с данной категорией.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}

	return false
}

// apiError — конверт ошибки, который отдаёт сервер.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorEnvelope — корневой объект тела ошибки в ответе сервера.
type ErrorEnvelope struct {
	Error apiError `json:"error"`
}

// FromStatus мапит HTTP-статус и (уже распарсенный) конверт в *Error.
//
// Таблица:
//   - 400 -> invalid_argument;
//   - 401 -> auth (контекст «сессия истекла» транспорт выставляет сам,
//     потому что только он знает, был ли это ответ на refresh);
//   - 403 -> permission_denied;
//   - 404 -> not_found;
//   - 409 -> conflict;
//   - прочее -> internal.
func FromStatus(status int, env ErrorEnvelope, requestID string) *Error {
	msg := env.Error.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	e := &Error{Message: msg, HTTPStatus: status, RequestID: requestID}

	switch status {
	case http.StatusBadRequest:
		e.Kind = KindInvalidArgument
	case http.StatusUnauthorized:
		e.Kind = KindAuth
	case http.StatusForbidden:
		e.Kind = KindPermission
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusConflict:
		e.Kind = KindConflict
	default:
		e.Kind = KindInternal
	}

	return e
}

// FromTransport оборачивает сбой на уровне транспорта (DNS, таймаут, обрыв
// соединения): до сервера запрос не дошёл либо ответ не получен.
func FromTransport(err error, requestID string) *Error {
	return &Error{
		Kind:      KindNetwork,
		Message:   "request failed",
		RequestID: requestID,
		cause:     err,
	}
}
