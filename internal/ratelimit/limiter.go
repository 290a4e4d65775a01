package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is the single-instance default limiter: a mutex-guarded sliding
// window per key. Multi-instance deployments should use the redis-backed
// limiter instead, this one fragments across processes.
type Memory struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func NewMemory(max int, window time.Duration) *Memory {
	return &Memory{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// Allow records one attempt for key and reports whether it is within the
// limit. A denied attempt is not recorded, so the window does not extend
// itself while the caller is blocked.
func (m *Memory) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	kept := m.attempts[key][:0]
	for _, t := range m.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= m.max {
		m.attempts[key] = kept
		return false, nil
	}

	m.attempts[key] = append(kept, now)
	return true, nil
}

func (m *Memory) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, key)
	return nil
}
