package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

// SessionState is the observable state of a SessionStore. The invariant
// IsAuthenticated == (User != nil) holds in every snapshot; both fields
// change together inside a single critical section.
type SessionState struct {
	User            *domain.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// AuthResult is what Login/FetchUserData/VerifyAuth hand back to callers.
// These operations never return a Go error: remote failures are normalized
// into Message.
type AuthResult struct {
	Success bool
	User    *domain.User
	Message string
}

// SessionStore owns authentication status and the current user identity
// for one storefront session.
//
// Concurrent Login/FetchUserData calls collapse into a single in-flight
// remote operation. Only the flight leader touches IsLoading: duplicate
// callers share the leader's result without mutating state, so a caller
// that merely joined an in-flight call can never leave IsLoading set.
type SessionStore struct {
	mu    sync.Mutex
	state SessionState
	gen   uint64 // bumped by Logout; a stale flight must not install its result

	auth      ports.AuthGateway
	mirror    ports.MirrorQueue // optional, nil disables mirroring
	sessionID string
	log       zerolog.Logger

	flight singleflight.Group
}

func NewSessionStore(auth ports.AuthGateway, mirror ports.MirrorQueue, sessionID string, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		auth:      auth,
		mirror:    mirror,
		sessionID: sessionID,
		log:       log,
	}
}

// Login authenticates against the backend. On success the user replaces
// whatever was held before; on failure the store returns to anonymous and
// the failure message is surfaced in the result. A login that completes
// after Logout was requested is discarded: logout wins.
func (s *SessionStore) Login(ctx context.Context, email, password string) AuthResult {
	v, _, _ := s.flight.Do("auth", func() (any, error) {
		gen := s.beginLoading()
		user, err := s.auth.Login(ctx, email, password)
		if err != nil {
			msg := remoteMessage(err, "connection error")
			s.clearUser(gen, msg)
			return AuthResult{Success: false, Message: msg}, nil
		}
		if !s.setUser(gen, user) {
			return AuthResult{Success: false, Message: "logged out"}, nil
		}
		return AuthResult{Success: true, User: cloneUser(user)}, nil
	})
	return v.(AuthResult)
}

// FetchUserData asks the backend who the session cookie belongs to and
// populates or clears state exactly like Login's success/failure paths.
func (s *SessionStore) FetchUserData(ctx context.Context) AuthResult {
	v, _, _ := s.flight.Do("auth", func() (any, error) {
		gen := s.beginLoading()
		user, err := s.auth.Me(ctx)
		if err != nil {
			msg := remoteMessage(err, "not authenticated")
			s.clearUser(gen, msg)
			return AuthResult{Success: false, Message: msg}, nil
		}
		if !s.setUser(gen, user) {
			return AuthResult{Success: false, Message: "logged out"}, nil
		}
		return AuthResult{Success: true, User: cloneUser(user)}, nil
	})
	return v.(AuthResult)
}

// VerifyAuth returns the cached user when one is held, avoiding a remote
// round-trip; otherwise it delegates to FetchUserData.
func (s *SessionStore) VerifyAuth(ctx context.Context) AuthResult {
	s.mu.Lock()
	if s.state.User != nil {
		user := cloneUser(s.state.User)
		s.mu.Unlock()
		return AuthResult{Success: true, User: user}
	}
	s.mu.Unlock()

	return s.FetchUserData(ctx)
}

// Logout tells the backend to drop the session, then unconditionally
// clears local state. A failed remote call is logged and otherwise
// ignored; an auth call still in flight is superseded and its result
// discarded. The client must never stay authenticated after the user
// asked to leave.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()

	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	s.mu.Lock()
	s.state = SessionState{}
	s.mu.Unlock()

	if s.mirror != nil {
		s.mirror.EnqueueDelete(s.sessionID)
	}
}

// UpdateUser shallow-merges the patch into the current user. A no-op when
// anonymous.
func (s *SessionStore) UpdateUser(patch domain.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return
	}
	if patch.Name != nil {
		s.state.User.Name = *patch.Name
	}
	if patch.Email != nil {
		s.state.User.Email = *patch.Email
	}
	if patch.Role != nil {
		s.state.User.Role = *patch.Role
	}
	s.enqueueMirrorWrite(s.state.User)
}

// ClearError resets the error without touching authentication state.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}

// Snapshot returns a copy of the current state. The user is cloned so the
// caller cannot mutate store internals.
func (s *SessionStore) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.User = cloneUser(s.state.User)
	return snap
}

// beginLoading marks an auth operation in flight and captures the current
// generation. Runs inside the flight leader only.
func (s *SessionStore) beginLoading() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = true
	s.state.Error = ""
	return s.gen
}

// setUser installs a user unless a logout moved the generation while the
// call was in flight. User and IsAuthenticated flip together under the
// lock so no snapshot can observe them disagreeing.
func (s *SessionStore) setUser(gen uint64, user *domain.User) bool {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return false
	}
	s.state = SessionState{User: cloneUser(user), IsAuthenticated: true}
	s.mu.Unlock()

	s.enqueueMirrorWrite(user)
	return true
}

func (s *SessionStore) clearUser(gen uint64, errMsg string) {
	s.mu.Lock()
	if s.gen != gen {
		// Logout already cleared the state and enqueued the mirror delete.
		s.mu.Unlock()
		return
	}
	s.state = SessionState{Error: errMsg}
	s.mu.Unlock()

	if s.mirror != nil {
		s.mirror.EnqueueDelete(s.sessionID)
	}
}

func (s *SessionStore) enqueueMirrorWrite(user *domain.User) {
	if s.mirror != nil && user != nil {
		s.mirror.EnqueueWrite(s.sessionID, cloneUser(user))
	}
}

// remoteMessage extracts the backend-reported message, or falls back to
// the generic connection-error class for transport failures.
func remoteMessage(err error, fallback string) string {
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
