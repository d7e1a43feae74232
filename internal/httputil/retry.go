// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the shared HTTP retry executor for the API clients.
package httputil

import (
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// BackoffUnit is the duration of one backoff step: a retry after attempt n
// (zero-based) waits BackoffFactor**n units, so the first wait is one unit
// regardless of factor. Tests override this to avoid real sleeps.
var BackoffUnit = 1 * time.Second

const (
	// DefaultMaxRetries is the number of additional attempts after the first.
	DefaultMaxRetries = 3

	// DefaultBackoffFactor is the base of the exponential retry wait.
	DefaultBackoffFactor = 2.0
)

// Policy holds the retry schedule for rate-limited responses and transport
// failures.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first.
	// Non-positive values use DefaultMaxRetries.
	MaxRetries int

	// BackoffFactor is the base of the exponential wait between attempts.
	// Values at or below 1 use DefaultBackoffFactor.
	BackoffFactor float64
}

func (p Policy) maxRetries() int {
	if p.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return p.MaxRetries
}

func (p Policy) backoffFactor() float64 {
	if p.BackoffFactor <= 1 {
		return DefaultBackoffFactor
	}
	return p.BackoffFactor
}

// wait returns the backoff before the retry following zero-based attempt.
func (p Policy) wait(attempt int) time.Duration {
	return time.Duration(math.Pow(p.backoffFactor(), float64(attempt)) * float64(BackoffUnit))
}

// DoWithRetry executes an HTTP request, retrying on HTTP 429 (Too Many
// Requests) and on transport failure with exponential backoff.
//
// A 429 after the final attempt is returned as-is so the caller can inspect
// it; it is never converted to an error. Any other status short-circuits the
// loop and is returned as-is without retry. A transport failure is retried
// on the same schedule and returned as an error only once retries are
// exhausted. If the request context is cancelled during a backoff wait the
// context error is returned.
func DoWithRetry(client *http.Client, req *http.Request, policy Policy, log *logrus.Entry) (*http.Response, error) {
	ctx := req.Context()
	maxRetries := policy.maxRetries()

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq.Body = body
		}

		resp, err := client.Do(attemptReq)
		if err != nil {
			if attempt >= maxRetries {
				return nil, err
			}
			log.WithError(err).Debugf("request failed, retrying in %v (attempt %d/%d)",
				policy.wait(attempt), attempt+1, maxRetries)
		} else {
			if resp.StatusCode != http.StatusTooManyRequests {
				return resp, nil
			}
			// Exhausted retries: hand the final 429 back as-is.
			if attempt >= maxRetries {
				log.Debugf("max retries reached, final status %d", resp.StatusCode)
				return resp, nil
			}

			// Drain and close the body before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			log.Debugf("rate limited, retrying in %v (attempt %d/%d)",
				policy.wait(attempt), attempt+1, maxRetries)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.wait(attempt)):
		}
	}
}
