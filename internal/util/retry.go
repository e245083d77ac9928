// ABOUTME: Backoff schedule for retried OpenAI requests
// ABOUTME: Exponential delay with bounded random jitter, capped at 30 seconds
package util

import (
	"math/rand/v2"
	"time"
)

const (
	// maxBackoff bounds the delay regardless of attempt count
	maxBackoff = 30 * time.Second
	// jitterFraction is the maximum relative deviation applied to a delay
	jitterFraction = 0.25
	// maxShift keeps the exponent small enough that the shift cannot overflow
	maxShift = 30
)

// CalculateBackoff returns the delay before retry number attempt.
// The schedule is base*2^attempt capped at maxBackoff, then spread by
// +/-25% jitter so concurrent clients do not retry in lockstep.
// Attempts at or below zero get no delay.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > maxShift {
		attempt = maxShift
	}

	delay := baseDelay << uint(attempt)
	if delay > maxBackoff || delay < 0 {
		delay = maxBackoff
	}
	return applyJitter(delay)
}

// applyJitter spreads a delay uniformly across [delay*(1-f), delay*(1+f)]
func applyJitter(delay time.Duration) time.Duration {
	offset := (rand.Float64()*2 - 1) * jitterFraction
	return delay + time.Duration(float64(delay)*offset)
}
