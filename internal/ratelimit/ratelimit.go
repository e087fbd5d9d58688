// Package ratelimit wraps a token bucket shared by the clients that
// call throughput-limited external services. Jobs block on Wait before
// each call instead of sleeping a fixed interval between candidates.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is the waiting contract the generation and social clients
// accept. Tests substitute a no-op implementation.
type Limiter interface {
	Wait(ctx context.Context) error
}

type bucket struct {
	limiter *rate.Limiter
}

// PerMinute builds a token bucket refilling n tokens per minute with a
// burst of one, so calls are spread across the window rather than
// front-loaded.
func PerMinute(n int) Limiter {
	return &bucket{limiter: rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)}
}

func (b *bucket) Wait(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}

// Unlimited never blocks. Used in tests and for operators who disable
// throttling.
func Unlimited() Limiter {
	return unlimited{}
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }
