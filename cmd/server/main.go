// Command storefront starts the storefront session service: per-browser
// cart/session/notification state in front of the commerce backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NahuFed/storefront/internal/api"
	"github.com/NahuFed/storefront/internal/core/ports"
	"github.com/NahuFed/storefront/internal/core/store"
	"github.com/NahuFed/storefront/internal/infrastructure/backend"
	redisdb "github.com/NahuFed/storefront/internal/infrastructure/db/redis"
	"github.com/NahuFed/storefront/internal/infrastructure/queue"
	"github.com/NahuFed/storefront/internal/pkg/config"
	"github.com/NahuFed/storefront/internal/session"
	"github.com/NahuFed/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.SessionSecret == "" {
		log.Fatal().Msg("missing SESSION_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The user mirror is a best-effort side channel: without redis the
	// service still runs, it just mirrors nothing.
	var rdb *redis.Client
	var mirrorQueue ports.MirrorQueue
	mirror, rdb, err := redisdb.OpenMirror(ctx, redisdb.Config{
		Addr:        cfg.Redis.Addr,
		DB:          cfg.Redis.DB,
		SnapshotTTL: cfg.SessionTTL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, user mirror disabled")
		rdb = nil
	} else {
		flusher := queue.NewMirrorFlusher(cfg.MirrorWorkers, mirror, log)
		flusher.Start(ctx)
		mirrorQueue = flusher
	}

	factory := func(sessionID string) (*session.Bundle, error) {
		client, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
		if err != nil {
			return nil, err
		}
		return &session.Bundle{
			ID:            sessionID,
			Session:       store.NewSessionStore(backend.NewAuthGateway(client), mirrorQueue, sessionID, log),
			Cart:          store.NewCartStore(),
			Notifications: store.NewNotificationStore(),
			Sales:         backend.NewSaleGateway(client),
			Products:      backend.NewProductGateway(client),
			Users:         backend.NewUserGateway(client),
			PasswordReset: backend.NewPasswordResetGateway(client),
		}, nil
	}

	reg := session.NewRegistry([]byte(cfg.SessionSecret), cfg.SessionTTL, factory, log)
	go reg.Sweep(ctx, time.Minute)

	e := api.NewRouter(reg, cfg.SessionTTL, rdb, cfg.Backend.BaseURL, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("starting storefront session service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("stopped")
}
