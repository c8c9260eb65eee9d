package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket with a burst of one: at most perSecond
// operations per second, with no saved-up capacity beyond a single token.
type Limiter struct {
	l *rate.Limiter
}

// New creates a Limiter allowing perSecond operations per second.
// A non-positive rate disables limiting.
func New(perSecond float64) *Limiter {
	r := rate.Limit(perSecond)
	if perSecond <= 0 {
		r = rate.Inf
	}
	return &Limiter{l: rate.NewLimiter(r, 1)}
}

// Allow reports whether a token is available now, consuming it if so.
func (lim *Limiter) Allow() bool {
	return lim.l.Allow()
}

// Wait blocks until a token is granted.
// Returns a non-nil error only if ctx is cancelled while waiting.
func (lim *Limiter) Wait(ctx context.Context) error {
	return lim.l.Wait(ctx)
}
