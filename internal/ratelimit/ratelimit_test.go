package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := New(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("203.0.113.7") {
			t.Fatalf("request %d within burst denied", i+1)
		}
	}
	if l.Allow("203.0.113.7") {
		t.Error("request past burst allowed")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(1, 1)

	if !l.Allow("203.0.113.7") {
		t.Fatal("first key denied its burst")
	}
	if l.Allow("203.0.113.7") {
		t.Error("first key not exhausted after burst")
	}
	if !l.Allow("198.51.100.2") {
		t.Error("second key throttled by first key's bucket")
	}
}

func TestLimiter_Refill(t *testing.T) {
	l := New(100, 1) // refills a token every 10ms

	if !l.Allow("203.0.113.7") {
		t.Fatal("burst denied")
	}
	if l.Allow("203.0.113.7") {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("203.0.113.7") {
		t.Error("bucket did not refill")
	}
}

func TestLimiter_SweepEvictsIdleKeys(t *testing.T) {
	l := New(10, 5)

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("203.0.113.%d", i))
	}
	if got := l.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	// Age two of the keys past a full refill, keep one fresh.
	stale := l.now().Add(-2 * l.maxIdle)
	l.mu.Lock()
	l.entries["203.0.113.0"].lastSeen = stale
	l.entries["203.0.113.1"].lastSeen = stale
	l.sweepLocked()
	l.mu.Unlock()

	if got := l.Len(); got != 1 {
		t.Errorf("Len() after sweep = %d, want 1", got)
	}
	l.mu.Lock()
	_, kept := l.entries["203.0.113.2"]
	l.mu.Unlock()
	if !kept {
		t.Error("fresh key evicted")
	}
}

func TestLimiter_AllowSweepsPastThreshold(t *testing.T) {
	l := New(10, 5)

	// Fill to the threshold, then age everything.
	for i := 0; i < sweepThreshold; i++ {
		l.Allow(fmt.Sprintf("key-%d", i))
	}
	stale := l.now().Add(-2 * l.maxIdle)
	l.mu.Lock()
	for _, e := range l.entries {
		e.lastSeen = stale
	}
	l.mu.Unlock()

	// The next unseen key triggers the sweep before it is inserted.
	l.Allow("fresh")

	if got := l.Len(); got != 1 {
		t.Errorf("Len() after sweep = %d, want 1", got)
	}
}

func TestLimiter_MaxIdleCoversFullRefill(t *testing.T) {
	// 2 rps with burst 10 takes 5s to refill, but the floor is a minute.
	if l := New(2, 10); l.maxIdle != time.Minute {
		t.Errorf("maxIdle = %v, want %v", l.maxIdle, time.Minute)
	}
	// 0.1 rps with burst 10 takes 100s, past the floor.
	if l := New(0.1, 10); l.maxIdle != 100*time.Second {
		t.Errorf("maxIdle = %v, want %v", l.maxIdle, 100*time.Second)
	}
}
