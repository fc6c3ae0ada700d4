package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_GetOrLoad_LoadsOnce(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	calls := 0
	loader := func(context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	for i := 0; i < 3; i++ {
		got, err := store.GetOrLoad(context.Background(), "round:current", loader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "payload" {
			t.Fatalf("unexpected value: %q", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one loader call, got %d", calls)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	errBoom := errors.New("boom")
	calls := 0

	_, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		calls++
		return 0, errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	got, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	if err != nil || got != 7 {
		t.Fatalf("expected reload to succeed, got %d err=%v", got, err)
	}
	if calls != 2 {
		t.Fatalf("expected two loader calls, got %d", calls)
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)
	store := NewStore[string](time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry to be evicted")
	}
}
