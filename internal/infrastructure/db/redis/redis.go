// Package redis hosts the storefront's user-snapshot mirror. Redis is a
// side channel here, not a store of record: Session Store transitions are
// mirrored in, nothing is ever read back, and the service runs fine
// without it.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config carries the mirror's connection settings.
type Config struct {
	Addr string
	DB   int
	// SnapshotTTL is how long a mirrored user snapshot outlives its last
	// write. Zero keeps snapshots until explicitly deleted.
	SnapshotTTL time.Duration
	// PingTimeout bounds the startup connectivity check. Zero applies the
	// default.
	PingTimeout time.Duration
}

// Connect opens the mirror's client and verifies connectivity with a ping,
// so a dead redis is discovered at startup, where the caller can fall back
// to running unmirrored, instead of on the first snapshot write.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("mirror redis ping: %w", err)
	}
	return client, nil
}

// OpenMirror connects and wraps the client in a UserMirror configured with
// the snapshot TTL. The raw client is returned too so callers can reuse it
// for readiness checks.
func OpenMirror(ctx context.Context, cfg Config) (*UserMirror, *redis.Client, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewUserMirror(client, cfg.SnapshotTTL), client, nil
}
