// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstWaitReturnsImmediately(t *testing.T) {
	l := New(500 * time.Millisecond)

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestConsecutiveWaitsAreSpaced(t *testing.T) {
	delay := 120 * time.Millisecond
	l := New(delay)

	require.NoError(t, l.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	elapsed := time.Since(start)

	// Scheduler tolerance: the wait must cover most of the delay.
	assert.GreaterOrEqual(t, elapsed, delay-20*time.Millisecond)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New(5 * time.Second)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
}

func TestNonPositiveDelayUsesDefault(t *testing.T) {
	l := New(0)
	assert.Equal(t, DefaultDelay, l.Delay())
}
