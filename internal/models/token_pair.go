package models

import "time"

// TokenPair — пара токенов bearer-варианта транспорта.
//
// Описание:
//   - AccessToken — короткоживущий JWT для авторизации запросов;
//   - RefreshToken — долгоживущий секрет для выпуска новой пары;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
//
// В cookie-варианте пара не используется: credential живёт в httpOnly-куке
// и клиентскому коду не виден.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}
