package rest

// AuthResponse открывает неэкспортируемый authResponse для внешнего
// тестового пакета rest_test (см. client_external_test.go).
type AuthResponse = authResponse
