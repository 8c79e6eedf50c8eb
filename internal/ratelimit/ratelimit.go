// Package ratelimit provides a token bucket limiter for outbound calls to the
// embedding and LLM services. It is constructed once per process and injected
// into the clients that need it; there is no package-level state.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a thread-safe token bucket. Tokens refill at a steady rate up to
// a burst capacity.
type Limiter struct {
	capacity   float64 // maximum tokens (burst capacity)
	refillRate float64 // tokens per second

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// New creates a limiter with the given burst capacity and refill rate in
// tokens per second. The bucket starts full.
func New(capacity int, refillRate float64) *Limiter {
	return &Limiter{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// refill adds tokens for the time elapsed since the last refill. Caller must
// hold mu.
func (l *Limiter) refill(now time.Time) {
	elapsed := now.Sub(l.lastRefill)
	l.tokens = min(l.capacity, l.tokens+elapsed.Seconds()*l.refillRate)
	l.lastRefill = now
}

// Allow consumes a token if one is available and reports whether it did.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill(time.Now())
	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}
	return false
}

// Wait blocks until a token is available or the context is done. A nil
// receiver waits for nothing, so callers can treat the limiter as optional.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	for {
		l.mu.Lock()
		now := time.Now()
		l.refill(now)
		if l.tokens >= 1.0 {
			l.tokens -= 1.0
			l.mu.Unlock()
			return nil
		}
		// Time until one full token accrues.
		needed := (1.0 - l.tokens) / l.refillRate
		l.mu.Unlock()

		timer := time.NewTimer(time.Duration(needed * float64(time.Second)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining returns the number of whole tokens currently available.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill(time.Now())
	return int(l.tokens)
}
