package client

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"mdnotes/pkg/db/redis"
)

// Config is the terminal client configuration.
type Config struct {
	ServerURL string        `yaml:"server_url" env:"NOTES_TUI_SERVER_URL" env-default:"http://localhost:8080"`
	PageLimit int           `yaml:"page_limit" env:"NOTES_TUI_PAGE_LIMIT" env-default:"10"`
	DraftTTL  time.Duration `yaml:"draft_ttl" env:"NOTES_TUI_DRAFT_TTL" env-default:"24h"`
	LogFile   string        `yaml:"log_file" env:"NOTES_TUI_LOG_FILE" env-default:""`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds the draft store connection settings.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"NOTES_TUI_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"NOTES_TUI_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"NOTES_TUI_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"NOTES_TUI_REDIS_DB" env-default:"0"`
	Timeout  time.Duration `yaml:"timeout" env:"NOTES_TUI_REDIS_TIMEOUT" env-default:"2s"`
}

// ToClientConfig converts to the shared Redis client configuration.
func (c *RedisConfig) ToClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: redis.DefaultPoolSize,
		Timeout:  c.Timeout,
	}
}

// LoadConfig reads the client configuration from environment variables.
func LoadConfig(_ context.Context) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load client configuration: %w", err)
	}
	return &cfg, nil
}
