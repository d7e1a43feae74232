// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit enforces minimum spacing between outgoing API requests.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the spacing applied when a caller passes a non-positive
// delay. Both upstream APIs document one request per second for
// unauthenticated access.
const DefaultDelay = 1 * time.Second

// Limiter spaces requests at least delay apart. The first Wait returns
// immediately. Each API client owns one Limiter; a single client issues
// one request at a time, so the limiter sees serialized calls.
type Limiter struct {
	delay time.Duration
	lim   *rate.Limiter
}

// New returns a Limiter that permits one request per delay. A non-positive
// delay falls back to DefaultDelay.
func New(delay time.Duration) *Limiter {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Limiter{
		delay: delay,
		lim:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Wait blocks until the next request is permitted or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Delay returns the configured minimum spacing.
func (l *Limiter) Delay() time.Duration {
	return l.delay
}
