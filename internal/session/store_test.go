package session

import (
	"context"
	"testing"

	"github.com/RGianluca98/Stycly/internal/models"
)

func TestMemoryStore_UnknownSessionYieldsEmptyCart(t *testing.T) {
	store := NewMemoryStore()

	cart, err := store.GetCart(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart) != 0 {
		t.Errorf("expected empty cart, got %v", cart)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart := models.Cart{"a": 2, "b": 1}
	if err := store.SetCart(ctx, "s1", cart); err != nil {
		t.Fatalf("set cart: %v", err)
	}

	got, err := store.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if got.Quantity("a") != 2 || got.Quantity("b") != 1 {
		t.Errorf("unexpected cart contents: %v", got)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetCart(ctx, "s1", models.Cart{"a": 1}); err != nil {
		t.Fatalf("set cart: %v", err)
	}

	first, err := store.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	first.Set("a", 99)

	second, err := store.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if second.Quantity("a") != 1 {
		t.Errorf("mutating a returned cart must not affect stored state, got %d", second.Quantity("a"))
	}
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetCart(ctx, "s1", models.Cart{"a": 3}); err != nil {
		t.Fatalf("set cart: %v", err)
	}

	other, err := store.GetCart(ctx, "s2")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected isolated empty cart for s2, got %v", other)
	}
}
