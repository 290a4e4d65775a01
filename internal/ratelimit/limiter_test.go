package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryAllowsUpToMax(t *testing.T) {
	l := NewMemory(5, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "203.0.113.1:maria@example.com")
		if err != nil || !ok {
			t.Fatalf("attempt %d: ok=%v err=%v", i+1, ok, err)
		}
	}

	ok, err := l.Allow(ctx, "203.0.113.1:maria@example.com")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Error("6th attempt inside the window must be denied")
	}
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	l := NewMemory(1, 15*time.Minute)
	ctx := context.Background()

	if ok, _ := l.Allow(ctx, "a:x"); !ok {
		t.Fatal("first attempt on a:x denied")
	}
	if ok, _ := l.Allow(ctx, "a:x"); ok {
		t.Error("second attempt on a:x must be denied")
	}
	if ok, _ := l.Allow(ctx, "b:x"); !ok {
		t.Error("a different key must not be affected")
	}
}

func TestMemoryWindowSlides(t *testing.T) {
	now := time.Now()
	l := NewMemory(2, 15*time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	l.Allow(ctx, "k")
	l.Allow(ctx, "k")
	if ok, _ := l.Allow(ctx, "k"); ok {
		t.Fatal("third attempt must be denied")
	}

	// 16 minutes later the old attempts fall out of the window.
	now = now.Add(16 * time.Minute)
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Error("attempts outside the window must not count")
	}
}

func TestMemoryDeniedAttemptNotRecorded(t *testing.T) {
	now := time.Now()
	l := NewMemory(2, 15*time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	l.Allow(ctx, "k")
	l.Allow(ctx, "k")
	for i := 0; i < 10; i++ {
		l.Allow(ctx, "k") // denied, must not extend the lockout
	}

	now = now.Add(16 * time.Minute)
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Error("denied attempts must not keep the key locked")
	}
}

func TestMemoryReset(t *testing.T) {
	l := NewMemory(1, 15*time.Minute)
	ctx := context.Background()

	l.Allow(ctx, "k")
	if ok, _ := l.Allow(ctx, "k"); ok {
		t.Fatal("second attempt must be denied")
	}

	if err := l.Reset(ctx, "k"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Error("reset must clear the counter")
	}
}
