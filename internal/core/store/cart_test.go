package store

import (
	"math"
	"testing"

	"github.com/NahuFed/storefront/internal/core/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCartStore_AddItem_MergesLines(t *testing.T) {
	cart := NewCartStore()
	p := domain.Product{ID: "p1", Name: "Keyboard", Price: 10}

	cart.AddItem(p, nil)
	cart.AddItem(p, nil)

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
	if !almostEqual(cart.Total(), 20) {
		t.Fatalf("expected total 20, got %v", cart.Total())
	}
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(domain.Product{ID: "p1", Name: "Keyboard", Price: 10}, nil)
	cart.AddItem(domain.Product{ID: "p1", Name: "Keyboard", Price: 10}, nil)

	cart.UpdateQuantity("p1", 5)

	if cart.ItemsCount() != 5 {
		t.Fatalf("expected count 5, got %d", cart.ItemsCount())
	}
	if !almostEqual(cart.Total(), 50) {
		t.Fatalf("expected total 50, got %v", cart.Total())
	}
}

func TestCartStore_UpdateQuantityZero_BehavesAsRemove(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(domain.Product{ID: "p1", Name: "Keyboard", Price: 10}, nil)

	cart.UpdateQuantity("p1", 0)

	if len(cart.Lines()) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines()))
	}
	if !almostEqual(cart.Total(), 0) {
		t.Fatalf("expected total 0, got %v", cart.Total())
	}
}

func TestCartStore_RemoveAbsent_NoOp(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(domain.Product{ID: "p1", Name: "Keyboard", Price: 10}, nil)

	notified := false
	cart.RemoveItem("missing", func(string, string) { notified = true })

	if notified {
		t.Fatalf("removing an absent id must not notify")
	}
	if len(cart.Lines()) != 1 || !almostEqual(cart.Total(), 10) {
		t.Fatalf("cart changed by a no-op remove: lines=%d total=%v", len(cart.Lines()), cart.Total())
	}
}

func TestCartStore_TotalConsistentAfterSequence(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(domain.Product{ID: "a", Name: "A", Price: 2.5}, nil)
	cart.AddItem(domain.Product{ID: "b", Name: "B", Price: 7}, nil)
	cart.AddItem(domain.Product{ID: "a", Name: "A", Price: 2.5}, nil)
	cart.UpdateQuantity("b", 3)
	cart.RemoveItem("a", nil)
	cart.AddItem(domain.Product{ID: "c", Name: "C", Price: 0}, nil)

	want := 0.0
	for _, l := range cart.Lines() {
		want += l.Price * float64(l.Quantity)
	}
	if !almostEqual(cart.Total(), want) {
		t.Fatalf("total %v diverged from recomputed %v", cart.Total(), want)
	}
}

func TestCartStore_Notifications(t *testing.T) {
	cart := NewCartStore()
	var messages []string
	var severities []string
	notify := func(msg, sev string) {
		messages = append(messages, msg)
		severities = append(severities, sev)
	}

	p := domain.Product{ID: "p1", Name: "Keyboard", Price: 10}
	cart.AddItem(p, notify)
	cart.AddItem(p, notify)
	cart.RemoveItem("p1", notify)
	cart.ClearCart(notify)

	if len(messages) != 4 {
		t.Fatalf("expected 4 notifications, got %d: %v", len(messages), messages)
	}
	wantSev := []string{domain.SeveritySuccess, domain.SeveritySuccess, domain.SeverityInfo, domain.SeverityInfo}
	for i, sev := range wantSev {
		if severities[i] != sev {
			t.Fatalf("notification %d: expected severity %q, got %q", i, sev, severities[i])
		}
	}
}

func TestCartStore_ClearCart(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(domain.Product{ID: "p1", Name: "Keyboard", Price: 10}, nil)
	cart.AddItem(domain.Product{ID: "p2", Name: "Mouse", Price: 5}, nil)

	cart.ClearCart(nil)

	if cart.ItemsCount() != 0 || !almostEqual(cart.Total(), 0) {
		t.Fatalf("expected empty cart, got count=%d total=%v", cart.ItemsCount(), cart.Total())
	}
}
