package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/letsssgooo/triviaQuiz/internal/client"
)

// Режимы источника вопросов
const (
	ModeBank   = "bank"
	ModeStatic = "static"
	ModeStored = "stored"
)

// Ограничение Open Trivia DB на количество вопросов в одном запросе.
const maxAmount = 50

var (
	modes        = []string{ModeBank, ModeStatic, ModeStored}
	difficulties = []string{"", "easy", "medium", "hard"}
	types        = []string{"", "multiple"}
)

// ErrInvalidConfig - ошибка проверки конфигурации.
var ErrInvalidConfig = errors.New("invalid config")

// Config содержит настройки квиза. Значения читаются из переменных окружения
// с префиксом QUIZ_ и могут быть переопределены флагами командной строки.
type Config struct {
	Mode        string        `env:"MODE" envDefault:"bank"`
	Amount      int           `env:"AMOUNT" envDefault:"20"`
	Category    int           `env:"CATEGORY" envDefault:"10"`
	Difficulty  string        `env:"DIFFICULTY" envDefault:"easy"`
	Type        string        `env:"TYPE" envDefault:"multiple"`
	BankURL     string        `env:"BANK_URL" envDefault:"https://opentdb.com"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	Seed        uint64        `env:"SEED" envDefault:"0"`
	PostgresDSN string        `env:"POSTGRES_DSN"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load читает конфигурацию из переменных окружения с префиксом QUIZ_.
// Перед этим подгружается файл .env, если он есть.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "QUIZ_"})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет значения конфигурации.
func (c *Config) Validate() error {
	if !slices.Contains(modes, c.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}

	if c.Amount < 1 || c.Amount > maxAmount {
		return fmt.Errorf("%w: amount must be in range 1..%d, got %d", ErrInvalidConfig, maxAmount, c.Amount)
	}

	if c.Category < 0 {
		return fmt.Errorf("%w: category must not be negative", ErrInvalidConfig)
	}

	if !slices.Contains(difficulties, c.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, c.Difficulty)
	}

	if !slices.Contains(types, c.Type) {
		return fmt.Errorf("%w: unsupported question type %q", ErrInvalidConfig, c.Type)
	}

	if c.BankURL != "" {
		u, err := url.Parse(c.BankURL)
		if err != nil {
			return fmt.Errorf("%w: bank url: %w", ErrInvalidConfig, err)
		}

		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: bank url must be an absolute http(s) url, got %q", ErrInvalidConfig, c.BankURL)
		}
	}

	if c.Mode == ModeStored && c.PostgresDSN == "" {
		return fmt.Errorf("%w: stored mode requires postgres dsn", ErrInvalidConfig)
	}

	return nil
}

// BankParams возвращает параметры запроса к банку вопросов.
func (c *Config) BankParams() client.Params {
	return client.Params{
		Amount:     c.Amount,
		Category:   c.Category,
		Difficulty: c.Difficulty,
		Type:       c.Type,
	}
}
