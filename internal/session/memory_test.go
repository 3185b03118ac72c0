package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	token, err := store.Create(ctx, Data{UserID: "u1", Email: "a@x.com", Role: "Employee"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	data, ok, err := store.Get(ctx, token)
	if err != nil || !ok {
		t.Fatalf("expected session, got ok=%v err=%v", ok, err)
	}
	if data.UserID != "u1" || data.Email != "a@x.com" || data.Role != "Employee" {
		t.Fatalf("unexpected session data: %+v", data)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, token); ok {
		t.Fatal("expected session to be gone after destroy")
	}
}

func TestMemoryStoreIdleTimeout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	current := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return current })

	token, err := store.Create(ctx, Data{UserID: "u1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	current = current.Add(31 * time.Minute)
	if _, ok, _ := store.Get(ctx, token); ok {
		t.Fatal("expected session to expire after idle timeout")
	}
}

func TestMemoryStoreTouchSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	current := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return current })

	token, err := store.Create(ctx, Data{UserID: "u1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Keep the session alive by touching just inside the window.
	for i := 0; i < 3; i++ {
		current = current.Add(20 * time.Minute)
		if err := store.Touch(ctx, token); err != nil {
			t.Fatalf("touch failed: %v", err)
		}
	}

	if _, ok, _ := store.Get(ctx, token); !ok {
		t.Fatal("expected touched session to still be valid")
	}

	current = current.Add(31 * time.Minute)
	if _, ok, _ := store.Get(ctx, token); ok {
		t.Fatal("expected session to expire once idle")
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	if _, ok, err := store.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss for unknown token, got ok=%v err=%v", ok, err)
	}
	if err := store.Touch(ctx, "missing"); err != nil {
		t.Fatalf("touch of unknown token should be a no-op, got %v", err)
	}
	if err := store.Destroy(ctx, "missing"); err != nil {
		t.Fatalf("destroy of unknown token should be a no-op, got %v", err)
	}
}
