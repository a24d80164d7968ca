package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/NahuFed/storefront/internal/core/domain"
)

type stubAuthGateway struct {
	mu         sync.Mutex
	loginCalls int32
	meCalls    int32

	loginUser *domain.User
	loginErr  error
	meUser    *domain.User
	meErr     error
	logoutErr error

	// block, when set, stalls Login/Me until released. Used to provoke
	// overlapping in-flight calls.
	block chan struct{}
}

func (g *stubAuthGateway) Login(context.Context, string, string) (*domain.User, error) {
	atomic.AddInt32(&g.loginCalls, 1)
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	clone := *g.loginUser
	return &clone, nil
}

func (g *stubAuthGateway) Me(context.Context) (*domain.User, error) {
	atomic.AddInt32(&g.meCalls, 1)
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.meErr != nil {
		return nil, g.meErr
	}
	clone := *g.meUser
	return &clone, nil
}

func (g *stubAuthGateway) Logout(context.Context) error {
	return g.logoutErr
}

type recordingMirror struct {
	mu      sync.Mutex
	writes  []string
	deletes []string
}

func (m *recordingMirror) EnqueueWrite(sessionID string, user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, sessionID+"/"+user.Email)
}

func (m *recordingMirror) EnqueueDelete(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, sessionID)
}

// checkInvariant fails the test if a snapshot shows IsAuthenticated
// disagreeing with the presence of a user.
func checkInvariant(t *testing.T, snap SessionState) {
	t.Helper()
	if snap.IsAuthenticated != (snap.User != nil) {
		t.Fatalf("invariant broken: isAuthenticated=%v user=%v", snap.IsAuthenticated, snap.User)
	}
}

func newTestSession(gw *stubAuthGateway, mirror *recordingMirror) *SessionStore {
	if mirror == nil {
		return NewSessionStore(gw, nil, "sess-1", zerolog.Nop())
	}
	return NewSessionStore(gw, mirror, "sess-1", zerolog.Nop())
}

func TestSessionStore_Login_Success(t *testing.T) {
	gw := &stubAuthGateway{loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleAdmin}}
	mirror := &recordingMirror{}
	s := newTestSession(gw, mirror)

	res := s.Login(context.Background(), "a@b.com", "secret")
	if !res.Success {
		t.Fatalf("expected success, got message %q", res.Message)
	}
	if res.User == nil || res.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user in result: %+v", res.User)
	}

	snap := s.Snapshot()
	checkInvariant(t, snap)
	if !snap.IsAuthenticated || snap.IsLoading || snap.Error != "" {
		t.Fatalf("unexpected state after login: %+v", snap)
	}
	if len(mirror.writes) != 1 {
		t.Fatalf("expected 1 mirror write, got %d", len(mirror.writes))
	}
}

func TestSessionStore_Login_BackendMessagePassthrough(t *testing.T) {
	gw := &stubAuthGateway{loginErr: &domain.RemoteError{Status: 401, Message: "wrong password"}}
	s := newTestSession(gw, nil)

	res := s.Login(context.Background(), "a@b.com", "nope")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "wrong password" {
		t.Fatalf("expected verbatim backend message, got %q", res.Message)
	}

	snap := s.Snapshot()
	checkInvariant(t, snap)
	if snap.IsAuthenticated || snap.Error != "wrong password" {
		t.Fatalf("unexpected state after failed login: %+v", snap)
	}
}

func TestSessionStore_Login_TransportErrorNormalized(t *testing.T) {
	gw := &stubAuthGateway{loginErr: domain.ErrBackendUnavailable}
	s := newTestSession(gw, nil)

	res := s.Login(context.Background(), "a@b.com", "secret")
	if res.Success || res.Message != "connection error" {
		t.Fatalf("expected normalized connection error, got %+v", res)
	}
	checkInvariant(t, s.Snapshot())
}

func TestSessionStore_Logout_ClearsEvenWhenRemoteFails(t *testing.T) {
	for _, remoteErr := range []error{nil, domain.ErrBackendUnavailable} {
		gw := &stubAuthGateway{
			loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser},
			logoutErr: remoteErr,
		}
		mirror := &recordingMirror{}
		s := newTestSession(gw, mirror)

		s.Login(context.Background(), "a@b.com", "secret")
		s.Logout(context.Background())

		snap := s.Snapshot()
		checkInvariant(t, snap)
		if snap.IsAuthenticated || snap.User != nil || snap.IsLoading {
			t.Fatalf("remoteErr=%v: session not cleared: %+v", remoteErr, snap)
		}
		if len(mirror.deletes) != 1 {
			t.Fatalf("remoteErr=%v: expected 1 mirror delete, got %d", remoteErr, len(mirror.deletes))
		}
	}
}

func TestSessionStore_VerifyAuth_ShortCircuitsWhenCached(t *testing.T) {
	gw := &stubAuthGateway{
		loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser},
		meUser:    &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser},
	}
	s := newTestSession(gw, nil)

	s.Login(context.Background(), "a@b.com", "secret")
	res := s.VerifyAuth(context.Background())

	if !res.Success {
		t.Fatalf("expected cached success")
	}
	if me, login := atomic.LoadInt32(&gw.meCalls), atomic.LoadInt32(&gw.loginCalls); me != 0 || login != 1 {
		t.Fatalf("expected no /me call after cached verify, got me=%d login=%d", me, login)
	}
}

func TestSessionStore_VerifyAuth_FetchesWhenAnonymous(t *testing.T) {
	gw := &stubAuthGateway{meUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser}}
	s := newTestSession(gw, nil)

	res := s.VerifyAuth(context.Background())
	if !res.Success || atomic.LoadInt32(&gw.meCalls) != 1 {
		t.Fatalf("expected one /me call, got %d (res %+v)", gw.meCalls, res)
	}
	checkInvariant(t, s.Snapshot())
}

func TestSessionStore_ConcurrentLogin_SingleFlight(t *testing.T) {
	gw := &stubAuthGateway{
		loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser},
		block:     make(chan struct{}),
	}
	s := newTestSession(gw, nil)

	const callers = 4
	var wg sync.WaitGroup
	results := make([]AuthResult, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = s.Login(context.Background(), "a@b.com", "secret")
		}(i)
	}

	// Let all goroutines pile up on the in-flight call, then release it.
	for atomic.LoadInt32(&gw.loginCalls) == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(gw.block)
	wg.Wait()

	if n := atomic.LoadInt32(&gw.loginCalls); n != 1 {
		t.Fatalf("expected exactly 1 remote login, got %d", n)
	}
	for i, res := range results {
		if !res.Success {
			t.Fatalf("caller %d did not share the in-flight result: %+v", i, res)
		}
	}
}

// gateMirror stalls the first enqueued write until released, holding the
// auth flight open after its state commit so later callers join it.
type gateMirror struct {
	writeStarted chan struct{}
	release      chan struct{}
}

func (m *gateMirror) EnqueueWrite(string, *domain.User) {
	m.writeStarted <- struct{}{}
	<-m.release
}

func (m *gateMirror) EnqueueDelete(string) {}

func TestSessionStore_LateDuplicateLogin_LoadingCleared(t *testing.T) {
	gw := &stubAuthGateway{loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser}}
	mirror := &gateMirror{writeStarted: make(chan struct{}, 1), release: make(chan struct{})}
	s := NewSessionStore(gw, mirror, "sess-1", zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Login(context.Background(), "a@b.com", "secret")
	}()

	// Wait until the first login has committed its state and is stalled on
	// the mirror write, then issue a second login that joins the same
	// in-flight call after the commit already happened.
	<-mirror.writeStarted
	go func() {
		defer wg.Done()
		s.Login(context.Background(), "a@b.com", "secret")
	}()
	time.Sleep(50 * time.Millisecond)
	close(mirror.release)
	wg.Wait()

	snap := s.Snapshot()
	checkInvariant(t, snap)
	if snap.IsLoading {
		t.Fatalf("IsLoading left set after overlapping logins: %+v", snap)
	}
	if !snap.IsAuthenticated {
		t.Fatalf("expected authenticated state, got %+v", snap)
	}
	if n := atomic.LoadInt32(&gw.loginCalls); n != 1 {
		t.Fatalf("expected exactly 1 remote login, got %d", n)
	}
}

func TestSessionStore_LogoutDuringLogin_StaysAnonymous(t *testing.T) {
	gw := &stubAuthGateway{
		loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser},
		block:     make(chan struct{}),
	}
	mirror := &recordingMirror{}
	s := newTestSession(gw, mirror)

	done := make(chan AuthResult, 1)
	go func() {
		done <- s.Login(context.Background(), "a@b.com", "secret")
	}()

	for atomic.LoadInt32(&gw.loginCalls) == 0 {
		time.Sleep(time.Millisecond)
	}
	s.Logout(context.Background())
	close(gw.block)
	res := <-done

	if res.Success {
		t.Fatalf("login overlapping a logout must not report success: %+v", res)
	}
	snap := s.Snapshot()
	checkInvariant(t, snap)
	if snap.IsAuthenticated || snap.User != nil || snap.IsLoading {
		t.Fatalf("logout did not win over the in-flight login: %+v", snap)
	}
	if len(mirror.writes) != 0 {
		t.Fatalf("superseded login must not reach the mirror, got writes %v", mirror.writes)
	}
}

func TestSessionStore_UpdateUser_ShallowMerge(t *testing.T) {
	gw := &stubAuthGateway{loginUser: &domain.User{ID: "u1", Name: "alice", Email: "a@b.com", Role: domain.RoleUser}}
	s := newTestSession(gw, nil)
	s.Login(context.Background(), "a@b.com", "secret")

	name := "alice cooper"
	s.UpdateUser(domain.UserPatch{Name: &name})

	snap := s.Snapshot()
	checkInvariant(t, snap)
	if snap.User.Name != "alice cooper" || snap.User.Email != "a@b.com" {
		t.Fatalf("merge went wrong: %+v", snap.User)
	}
}

func TestSessionStore_UpdateUser_NoOpWhenAnonymous(t *testing.T) {
	s := newTestSession(&stubAuthGateway{}, nil)

	name := "ghost"
	s.UpdateUser(domain.UserPatch{Name: &name})

	snap := s.Snapshot()
	checkInvariant(t, snap)
	if snap.User != nil {
		t.Fatalf("anonymous update created a user: %+v", snap.User)
	}
}

func TestSessionStore_ClearError(t *testing.T) {
	gw := &stubAuthGateway{loginErr: &domain.RemoteError{Status: 401, Message: "nope"}}
	s := newTestSession(gw, nil)
	s.Login(context.Background(), "a@b.com", "bad")

	s.ClearError()

	snap := s.Snapshot()
	checkInvariant(t, snap)
	if snap.Error != "" {
		t.Fatalf("error not cleared: %+v", snap)
	}
	if snap.IsAuthenticated {
		t.Fatalf("clearError must not touch authentication state")
	}
}
