// Package session manages storefront sessions: one Bundle of state
// containers and backend gateways per browser, addressed by a signed
// session token. The browser only ever holds the token; the backend's own
// auth cookie stays server-side in the bundle's cookie jar.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/NahuFed/storefront/internal/api/metrics"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
	"github.com/NahuFed/storefront/internal/core/store"
)

// Bundle holds everything scoped to one storefront session. Each store
// owns its slice of state exclusively; the gateways share the session's
// backend cookie jar.
type Bundle struct {
	ID            string
	Session       *store.SessionStore
	Cart          *store.CartStore
	Notifications *store.NotificationStore

	Sales         ports.SaleGateway
	Products      ports.ProductGateway
	Users         ports.UserGateway
	PasswordReset ports.PasswordResetGateway
}

// Factory builds a fresh Bundle for a new session id. Injected so tests
// can assemble bundles around stubs.
type Factory func(sessionID string) (*Bundle, error)

type entry struct {
	bundle   *Bundle
	lastSeen time.Time
}

// Registry issues and resolves storefront sessions. Session ids travel as
// HS256-signed JWTs; the registry evicts bundles idle longer than ttl.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	secret  []byte
	ttl     time.Duration
	factory Factory
	log     zerolog.Logger
}

func NewRegistry(secret []byte, ttl time.Duration, factory Factory, log zerolog.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		secret:  secret,
		ttl:     ttl,
		factory: factory,
		log:     log,
	}
}

// Issue creates a new session bundle and returns its signed token.
func (r *Registry) Issue() (string, *Bundle, error) {
	id, err := newSessionID()
	if err != nil {
		return "", nil, err
	}

	bundle, err := r.factory(id)
	if err != nil {
		return "", nil, fmt.Errorf("build session bundle: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": id,
		"exp": time.Now().Add(r.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	r.mu.Lock()
	r.entries[id] = &entry{bundle: bundle, lastSeen: time.Now()}
	size := len(r.entries)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(size))
	r.log.Debug().Str("session_id", id).Msg("session issued")
	return token, bundle, nil
}

// Resolve validates the token and returns the live bundle, refreshing its
// idle timer. Unknown or evicted sessions return ErrSessionExpired so the
// caller can transparently issue a new one.
func (r *Registry) Resolve(token string) (*Bundle, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return r.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrSessionExpired
	}

	id, _ := claims["sid"].(string)
	if id == "" {
		return nil, domain.ErrSessionExpired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	e.lastSeen = time.Now()
	return e.bundle, nil
}

// Sweep evicts idle sessions every interval until ctx is cancelled.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.sweepOnce(time.Now()); n > 0 {
				r.log.Info().Int("evicted", n).Msg("idle sessions evicted")
			}
		}
	}
}

func (r *Registry) sweepOnce(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
			evicted++
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	return evicted
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session id entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
