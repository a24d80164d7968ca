package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NahuFed/storefront/internal/core/domain"
)

// UserMirror persists the current user snapshot per storefront session,
// replacing the legacy client's localStorage "user" entry. It is a
// write-through side channel: the Session Store never reads it back, so
// this type intentionally exposes no read method.
// Key format: session:<session_id>:user
type UserMirror struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserMirror wraps the given client. Snapshots expire after ttl so
// abandoned sessions leave nothing behind.
func NewUserMirror(client *redis.Client, ttl time.Duration) *UserMirror {
	return &UserMirror{client: client, ttl: ttl}
}

func (m *UserMirror) Write(ctx context.Context, sessionID string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	return m.client.Set(ctx, m.key(sessionID), raw, m.ttl).Err()
}

func (m *UserMirror) Delete(ctx context.Context, sessionID string) error {
	return m.client.Del(ctx, m.key(sessionID)).Err()
}

func (m *UserMirror) key(sessionID string) string {
	return fmt.Sprintf("session:%s:user", sessionID)
}
