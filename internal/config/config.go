package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/gumwoo/umc-pr/internal/pagination"
)

type Config struct {
	Env        string     `yaml:"env" env:"APP_ENV" env-default:"local"`
	Log        Log        `yaml:"log"`
	Postgres   Postgres   `yaml:"postgres"`
	Server     Server     `yaml:"server" env-required:"true"`
	Auth       Auth       `yaml:"auth"`
	Pagination Pagination `yaml:"pagination"`
}

type Log struct {
	// File is optional; when empty logs go to stdout.
	File string `yaml:"file" env:"LOG_FILE"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Database        string        `env:"POSTGRES_DB" env-required:"true"`
	SSLMode         string        `yaml:"ssl_mode" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

type Server struct {
	Host            string        `yaml:"host" env-default:"localhost"`
	Port            string        `yaml:"port" env:"PORT" env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Auth describes how the caller id is taken from a request until a real identity
// provider sits in front of the service.
type Auth struct {
	UserIDHeader   string `yaml:"user_id_header" env-default:"X-User-ID"`
	FallbackUserID int64  `yaml:"fallback_user_id" env:"FALLBACK_USER_ID" env-default:"1"`
}

type Pagination struct {
	DefaultLimit int `yaml:"default_limit" env-default:"5"`
}

// DSN builds the lib/pq connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.Username, p.Password, p.Host, p.Port, p.Database, p.SSLMode,
	)
}

func Load() (*Config, error) {
	// .env is optional, real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Pagination.DefaultLimit <= 0 {
		return nil, fmt.Errorf("pagination.default_limit must be positive, got %d", cfg.Pagination.DefaultLimit)
	}

	if cfg.Pagination.DefaultLimit > pagination.MaxLimit {
		return nil, fmt.Errorf("pagination.default_limit must not exceed %d, got %d",
			pagination.MaxLimit, cfg.Pagination.DefaultLimit)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
