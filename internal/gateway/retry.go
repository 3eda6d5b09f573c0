// Package gateway holds behavior shared by the outbound REST clients.
package gateway

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	domerrors "github.com/leafsw/tipbot-go/internal/errors"
)

// RetryWithBackoff runs fn up to maxRetries+1 times, sleeping with
// exponential backoff and jitter between attempts. Only transient gateway
// failures are retried; anything else is returned immediately.
func RetryWithBackoff(ctx context.Context, maxRetries int, initialDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !Retryable(err) || attempt == maxRetries {
			break
		}

		delay := time.Duration(float64(initialDelay) * math.Pow(2, float64(attempt)))
		// Jitter: scale to 75-125% so synchronized callers spread out.
		delay = delay*3/4 + time.Duration(rand.Int63n(int64(delay)/2+1)) //nolint:gosec // jitter, not crypto

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

// Retryable reports whether the error is a transient gateway failure:
// a network error or a status the upstream may recover from shortly.
func Retryable(err error) bool {
	var gerr *domerrors.GatewayError
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.StatusCode {
	case 0, 429, 502, 503, 504:
		return true
	}
	return false
}
