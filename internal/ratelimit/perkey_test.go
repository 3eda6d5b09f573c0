package ratelimit

import (
	"testing"
	"time"
)

func newPerKey(capacity float64) *PerKeyLimiter {
	return NewPerKeyLimiter(PerKeyConfig{
		Capacity:      capacity,
		RefillRate:    0,
		CleanupPeriod: time.Hour, // never fires during a test
	})
}

func TestPerKey_IsolatesKeys(t *testing.T) {
	pkl := newPerKey(1)
	defer pkl.Stop()

	if !pkl.Allow("alice") {
		t.Fatal("alice's first request rejected")
	}
	if pkl.Allow("alice") {
		t.Error("alice's second request allowed, want rejected")
	}
	if !pkl.Allow("bob") {
		t.Error("bob's first request rejected; buckets must be per key")
	}
}

func TestPerKey_EmptyKeyNeverLimited(t *testing.T) {
	pkl := newPerKey(1)
	defer pkl.Stop()

	for i := 0; i < 10; i++ {
		if !pkl.Allow("") {
			t.Fatal("empty key was rate limited")
		}
	}
	if got := pkl.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d, want 0 (no bucket for empty key)", got)
	}
}

func TestPerKey_OnDrop(t *testing.T) {
	pkl := newPerKey(1)
	defer pkl.Stop()

	dropped := 0
	pkl.OnDrop(func() { dropped++ })

	pkl.Allow("alice")
	pkl.Allow("alice")
	pkl.Allow("alice")

	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}

func TestPerKey_ActiveCount(t *testing.T) {
	pkl := newPerKey(3)
	defer pkl.Stop()

	pkl.Allow("alice")
	pkl.Allow("bob")
	pkl.Allow("alice")

	if got := pkl.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}
}

func TestPerKey_CleanupSweepsIdleBuckets(t *testing.T) {
	pkl := NewPerKeyLimiter(PerKeyConfig{
		Capacity:      1,
		RefillRate:    1000, // refills instantly
		CleanupPeriod: 10 * time.Millisecond,
	})
	defer pkl.Stop()

	pkl.Allow("alice")

	deadline := time.Now().Add(2 * time.Second)
	for pkl.ActiveCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("idle bucket was never swept")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPerKey_StopIdempotent(t *testing.T) {
	pkl := newPerKey(1)
	pkl.Stop()
	pkl.Stop() // must not panic
}
