package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	TokenStoreMemory   = "memory"
	TokenStoreRedis    = "redis"
	TokenStorePostgres = "postgres"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	BaseURL          string        `envconfig:"FANYI_BASE_URL" default:"https://fanyi.baidu.com"`
	UserAgent        string        `envconfig:"FANYI_USER_AGENT" default:""`
	TokenTimeout     time.Duration `envconfig:"FANYI_TOKEN_TIMEOUT" default:"10s"`
	TranslateTimeout time.Duration `envconfig:"FANYI_TRANSLATE_TIMEOUT" default:"10s"`
	DefaultProvider  string        `envconfig:"TRANSLATION_PROVIDER" default:"baidu"`

	TokenStore  string `envconfig:"TOKEN_STORE" default:"memory"`
	RedisURL    string `envconfig:"REDIS_URL" default:""`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"4"`

	APIKeyHash         string `envconfig:"API_KEY_HASH" default:""`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	parsed, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("FANYI_BASE_URL must be an absolute URL")
	}
	if c.TokenTimeout <= 0 {
		return fmt.Errorf("FANYI_TOKEN_TIMEOUT must be > 0")
	}
	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("FANYI_TRANSLATE_TIMEOUT must be > 0")
	}

	switch c.TokenStoreKind() {
	case TokenStoreMemory:
	case TokenStoreRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required when TOKEN_STORE=redis")
		}
	case TokenStorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when TOKEN_STORE=postgres")
		}
	default:
		return fmt.Errorf("TOKEN_STORE must be one of memory, redis, postgres (got %q)", c.TokenStore)
	}

	if c.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// TokenStoreKind returns the normalized TOKEN_STORE value.
func (c *Config) TokenStoreKind() string {
	if c == nil {
		return TokenStoreMemory
	}
	kind := strings.ToLower(strings.TrimSpace(c.TokenStore))
	if kind == "" {
		return TokenStoreMemory
	}
	return kind
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
