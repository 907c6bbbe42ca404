// config предоставляет структуру конфигурации клиента и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Режимы транспорта credential.
const (
	TransportCookie = "cookie"
	TransportBearer = "bearer"
)

// Config — корневая конфигурация клиента.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env  string     `yaml:"env" env:"ENV" env-default:"local"`
	API  APIConfig  `yaml:"api"`
	Auth AuthConfig `yaml:"auth"`
}

// APIConfig — параметры доступа к REST API форума.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
}

// AuthConfig — параметры хранения и транспорта credential.
//
// Transport выбирается один раз на процесс и не смешивается:
//   - cookie (по умолчанию) — httpOnly-кука, клиент токенов не видит;
//   - bearer — пара access/refresh в TokenStore.
//
// TokenFile имеет смысл только для bearer: пустое значение — пара живёт
// в памяти процесса, иначе — в файле по указанному пути.
type AuthConfig struct {
	Transport string `yaml:"transport" env:"AUTH_TRANSPORT" env-default:"cookie"`
	TokenFile string `yaml:"token_file" env:"AUTH_TOKEN_FILE" env-default:""`
}

// Validate проверяет согласованность значений после загрузки.
func (c *Config) Validate() error {
	if c.Auth.Transport != TransportCookie && c.Auth.Transport != TransportBearer {
		return fmt.Errorf("unknown auth transport %q", c.Auth.Transport)
	}

	if c.Auth.Transport == TransportCookie && c.Auth.TokenFile != "" {
		return fmt.Errorf("token_file is only valid with bearer transport")
	}

	return nil
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
