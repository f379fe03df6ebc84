package cachestore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, "kpis"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss on empty store, got %v", err)
	}

	if err := m.Set(ctx, "kpis", []byte(`{"a":1}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := m.Get(ctx, "kpis")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(val) != `{"a":1}` {
		t.Fatalf("value = %s, want {\"a\":1}", val)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "agg", []byte("1"), 5*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	now = now.Add(4 * time.Second)
	if _, err := m.Get(ctx, "agg"); err != nil {
		t.Fatalf("entry expired early: %v", err)
	}

	now = now.Add(2 * time.Second)
	if _, err := m.Get(ctx, "agg"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after ttl, got %v", err)
	}
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "prefijo", []byte("api"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	now = now.Add(48 * time.Hour)
	if _, err := m.Get(ctx, "prefijo"); err != nil {
		t.Fatalf("zero-ttl entry expired: %v", err)
	}
}

func TestMemoryDeleteAndFlush(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "a", []byte("1"), time.Minute)
	m.Set(ctx, "b", []byte("2"), time.Minute)

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after delete, got %v", err)
	}
	if _, err := m.Get(ctx, "b"); err != nil {
		t.Fatalf("delete removed the wrong key: %v", err)
	}

	if err := m.Flush(ctx); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, err := m.Get(ctx, "b"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after flush, got %v", err)
	}
}
