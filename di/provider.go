package di

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/kafka"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/transport/http"
	"shareit/transport/http/router"

	goRedis "github.com/redis/go-redis/v9"
)

// NewServer builds the HTTP server and releases every connection it depends on once it stops.
func NewServer(
	cfg *config.Config,
	r router.Router,
	db *postgres.Connection,
	redisClient *goRedis.Client,
	kafkaClient kafka.Client,
	tracer otel.Otel,
) *http.HTTP {
	server := http.New(cfg, r)

	server.OnShutdown(
		func(context.Context) error { return kafkaClient.Close() },
		func(context.Context) error {
			if err := redisClient.Close(); err != nil {
				return fmt.Errorf("failed to close redis: %w", err)
			}

			return nil
		},
		func(context.Context) error { return db.Close() },
	)

	if provider, ok := tracer.(*otel.Provider); ok {
		server.OnShutdown(provider.Shutdown)
	}

	return server
}
