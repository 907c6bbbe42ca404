package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
api:
  base_url: "https://forum.example.com/api"
  timeout: "5s"
auth:
  transport: "bearer"
  token_file: "/tmp/forum-tokens.json"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
api:
  base_url: "https://forum.example.com/api"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
api:
  base_url: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://forum.example.com/api", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout)
	require.Equal(t, TransportBearer, cfg.Auth.Transport)
	require.Equal(t, "/tmp/forum-tokens.json", cfg.Auth.TokenFile)
}

func TestLoad_Minimal_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, TransportCookie, cfg.Auth.Transport)
	require.Equal(t, "", cfg.Auth.TokenFile)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_BrokenYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

func TestLoad_EnvOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("API_TIMEOUT", "2s")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, cfg.API.Timeout)
}

func TestValidate_RejectsUnknownTransport(t *testing.T) {
	cfg := Config{
		API:  APIConfig{BaseURL: "https://x"},
		Auth: AuthConfig{Transport: "magic"},
	}
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsTokenFileWithCookie(t *testing.T) {
	cfg := Config{
		API:  APIConfig{BaseURL: "https://x"},
		Auth: AuthConfig{Transport: TransportCookie, TokenFile: "/tmp/t.json"},
	}
	require.Error(t, cfg.Validate())
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://env.example.com")
	t.Setenv("AUTH_TRANSPORT", "bearer")

	// Гарантируем отсутствие local.yaml в рабочей директории теста.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	require.Equal(t, TransportBearer, cfg.Auth.Transport)
}
