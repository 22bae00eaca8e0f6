package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"horse.fit/fanyi/internal/cli"
	"horse.fit/fanyi/internal/config"
	"horse.fit/fanyi/internal/db"
	"horse.fit/fanyi/internal/fanyi"
	"horse.fit/fanyi/internal/httpapi"
	"horse.fit/fanyi/internal/kv"
	"horse.fit/fanyi/internal/logging"
	"horse.fit/fanyi/internal/transport"
	"horse.fit/fanyi/internal/translation"
)

const redisKeyPrefix = "fanyi:"

// services holds everything a command needs to talk to Baidu Fanyi.
type services struct {
	cfg      *config.Config
	logger   zerolog.Logger
	store    kv.Store
	provider *fanyi.Provider
	registry *translation.Registry
	checks   map[string]httpapi.HealthCheck
}

func (r *services) Close() {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.logger.Warn().Err(err).Msg("close token store failed")
	}
}

// loadEnvironment loads .env, config and the logger the way every command does.
func loadEnvironment(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, logger, nil
}

// bootstrap wires config, token store, transport and provider. Offline
// callers get an in-memory store so no backing service is contacted.
func bootstrap(ctx context.Context, envLoader *cli.EnvLoader, offline bool) (*services, error) {
	cfg, logger, err := loadEnvironment(envLoader)
	if err != nil {
		return nil, err
	}

	var (
		store  kv.Store = kv.NewMemory()
		checks map[string]httpapi.HealthCheck
	)
	if !offline {
		store, checks, err = openTokenKV(ctx, cfg)
	}
	if err != nil {
		logger.Error().Err(err).Str("token_store", cfg.TokenStoreKind()).Msg("open token store failed")
		return nil, fmt.Errorf("open token store: %w", err)
	}

	client := transport.New(transport.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   max(cfg.TokenTimeout, cfg.TranslateTimeout),
	})
	provider := fanyi.NewProvider(client, fanyi.NewTokenStore(store), logger, fanyi.Options{
		BaseURL:          cfg.BaseURL,
		TokenTimeout:     cfg.TokenTimeout,
		TranslateTimeout: cfg.TranslateTimeout,
	})

	registry := translation.NewRegistry(cfg.DefaultProvider)
	if err := registry.Register(translation.NewBaiduProvider(provider)); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("register provider: %w", err)
	}

	return &services{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		provider: provider,
		registry: registry,
		checks:   checks,
	}, nil
}

func openTokenKV(ctx context.Context, cfg *config.Config) (kv.Store, map[string]httpapi.HealthCheck, error) {
	switch cfg.TokenStoreKind() {
	case config.TokenStoreRedis:
		store, err := kv.OpenRedis(ctx, cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, map[string]httpapi.HealthCheck{"redis": store.Ping}, nil
	case config.TokenStorePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return db.NewKVStore(pool), map[string]httpapi.HealthCheck{"postgres": pool.Ping}, nil
	default:
		return kv.NewMemory(), nil, nil
	}
}
