// redact — хелперы для безопасного вывода чувствительных значений в логи.
package redact

import "strings"

// Email маскирует локальную часть адреса, оставляя домен.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token — плейсхолдер вместо access/refresh-токена.
func Token() string { return "[REDACTED_TOKEN]" }

// Password — плейсхолдер вместо пароля.
func Password() string { return "[REDACTED_PASSWORD]" }
