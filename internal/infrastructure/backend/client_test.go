package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

// newBackendStub simulates the commerce backend: login sets an httpOnly
// session cookie, authenticated endpoints require it.
func newBackendStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "credenciales inválidas"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "tok-123", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"_id": "u1", "username": "alice", "role": "admin"},
		})
	})
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if c, err := r.Cookie("token"); err != nil || c.Value != "tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "username": "alice", "email": "a@b.com", "role": "admin",
		})
	})
	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := r.Cookie("token"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "no autenticado"})
			return
		}
		var input ports.SaleInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		total := 0.0
		for _, it := range input.Items {
			total += it.PriceAtSale * float64(it.Quantity)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id": "s1", "items": input.Items, "total": total, "date": "2026-08-30T12:00:00Z",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(baseURL, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestAuthGateway_LoginCookieReplayedOnMe(t *testing.T) {
	srv := newBackendStub(t)
	c := newTestClient(t, srv.URL)
	auth := NewAuthGateway(c)

	user, err := auth.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" || user.Role != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}
	// The backend did not echo the email; the submitted one backfills it.
	if user.Email != "a@b.com" {
		t.Fatalf("expected fallback email, got %q", user.Email)
	}

	me, err := auth.Me(context.Background())
	if err != nil {
		t.Fatalf("me should ride the jarred cookie: %v", err)
	}
	if me.Name != "alice" {
		t.Fatalf("unexpected identity: %+v", me)
	}
}

func TestAuthGateway_BackendMessagePassthrough(t *testing.T) {
	srv := newBackendStub(t)
	auth := NewAuthGateway(newTestClient(t, srv.URL))

	_, err := auth.Login(context.Background(), "a@b.com", "wrong")
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != http.StatusUnauthorized || re.Message != "credenciales inválidas" {
		t.Fatalf("message not passed through verbatim: %+v", re)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := newBackendStub(t)
	c := newTestClient(t, srv.URL)
	srv.Close()

	_, err := NewAuthGateway(c).Me(context.Background())
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	var re *domain.RemoteError
	if errors.As(err, &re) {
		t.Fatalf("transport failures must not look like backend messages")
	}
}

func TestSaleGateway_CreateRequiresSession(t *testing.T) {
	srv := newBackendStub(t)
	c := newTestClient(t, srv.URL)
	sales := NewSaleGateway(c)

	input := ports.SaleInput{Items: []ports.SaleItemInput{{ProductID: "p1", Quantity: 2, PriceAtSale: 10}}}

	if _, err := sales.Create(context.Background(), input); err == nil {
		t.Fatalf("expected rejection without a session cookie")
	}

	if _, err := NewAuthGateway(c).Login(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	sale, err := sales.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if sale.ID != "s1" || sale.Total != 20 {
		t.Fatalf("unexpected sale: %+v", sale)
	}
	if len(sale.Items) != 1 || sale.Items[0].PriceAtSale != 10 {
		t.Fatalf("priceAtSale not preserved: %+v", sale.Items)
	}
}
