package igdb

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimiter caps the outbound request rate to the catalog provider.
// IGDB enforces 4 requests per second per client id; exceeding it returns
// 429s, so the client waits locally instead.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a token-bucket limiter with the given per-second
// rate and burst size.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until the limiter allows a call, or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}
