package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter spaces out consecutive page fetches. Marketplace sites throttle
// aggressively, so back-to-back fetches within one process are delayed a
// little even though each orchestration call is already sequential.
type Limiter interface {
	Wait(ctx context.Context) error
}

type SimpleLimiter struct {
	mu         sync.Mutex
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
	jitter     bool
}

func NewSimpleLimiter(minDelay, maxDelay time.Duration) *SimpleLimiter {
	return &SimpleLimiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		jitter:   true,
	}
}

func (l *SimpleLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.lastAction)
	delay := l.calculateDelay()

	if elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	l.lastAction = time.Now()
	return nil
}

func (l *SimpleLimiter) calculateDelay() time.Duration {
	if !l.jitter || l.maxDelay <= l.minDelay {
		return l.minDelay
	}
	return l.minDelay + time.Duration(rand.Int63n(int64(l.maxDelay-l.minDelay)))
}

// NopLimiter never waits. Used in tests and when politeness delays are off.
type NopLimiter struct{}

func (NopLimiter) Wait(context.Context) error { return nil }
