// Package deps contains the dependencies for the backend and admin-cli.
package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
	"github.com/quirzy/backend/internal/auth"
	"github.com/quirzy/backend/internal/config"
	"github.com/quirzy/backend/internal/events"
	"github.com/quirzy/backend/internal/store"
	"github.com/redis/rueidis"
	"github.com/redis/rueidis/rueidisotel"
	"go.uber.org/fx"
)

// Config loads the environment variables from the .env file and returns a config.Config.
func Config() (config.Config, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("error creating config", "error", err)
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("error validating config", "error", err)
		return config.Config{}, err
	}

	return cfg, nil
}

// Store creates a store.Store backed by the configured Postgres database.
func Store(cfg config.Config) (*store.Store, error) {
	st, err := store.New(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("error creating store", "error", err)
		return nil, err
	}

	return st, nil
}

// RedisClient creates a rueidis.Client pointed at the session store of
// the main Quirzy app. It is nil when no Redis endpoint is configured.
func RedisClient(cfg config.Config) (rueidis.Client, error) {
	if !cfg.Redis.Enabled() {
		slog.Warn("no Redis endpoint configured, session revocation is disabled")
		return nil, nil
	}

	client, err := rueidisotel.NewClient(rueidis.ClientOption{
		InitAddress: []string{
			fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		},
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		slog.Error("error creating redis client", "error", err)
		return nil, err
	}

	return client, nil
}

// AuthStorage creates an auth.Storage. Nil when Redis is not configured.
func AuthStorage(redisClient rueidis.Client) auth.Storage {
	if redisClient == nil {
		return nil
	}

	return auth.NewRedisStorage(redisClient)
}

// EventsService creates an events.Service. Without a PostHog API key the
// service is a no-op.
func EventsService(cfg config.Config) (*events.Service, error) {
	if !cfg.PostHog.Enabled() {
		return events.NewService(nil), nil
	}

	client, err := posthog.NewWithConfig(cfg.PostHog.APIKey, posthog.Config{
		Endpoint: cfg.PostHog.Endpoint,
	})
	if err != nil {
		slog.Error("error creating posthog client", "error", err)
		return nil, err
	}

	return events.NewService(client), nil
}

var FxCommonModule = fx.Module("common",
	fx.Provide(Config),
	fx.Provide(Store),
	fx.Provide(RedisClient),
	fx.Provide(AuthStorage),
	fx.Provide(EventsService),
)
