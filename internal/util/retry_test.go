// ABOUTME: Tests for the retry backoff schedule
// ABOUTME: Checks exponential growth bounds, the 30s cap, and jitter spread
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoffBounds(t *testing.T) {
	tests := []struct {
		name    string
		base    time.Duration
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		// bounds are base*2^attempt widened by +/-25% jitter
		{"first attempt", 100 * time.Millisecond, 1, 150 * time.Millisecond, 250 * time.Millisecond},
		{"second attempt", 100 * time.Millisecond, 2, 300 * time.Millisecond, 500 * time.Millisecond},
		{"fifth attempt", 100 * time.Millisecond, 5, 2400 * time.Millisecond, 4 * time.Second},
		{"capped at 30s", time.Second, 10, 22500 * time.Millisecond, 37500 * time.Millisecond},
		{"huge attempt does not overflow", time.Millisecond, 100, 0, 37500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBackoff(tt.base, tt.attempt)
			if got < tt.min || got > tt.max {
				t.Errorf("CalculateBackoff(%v, %d) = %v, want within [%v, %v]",
					tt.base, tt.attempt, got, tt.min, tt.max)
			}
		})
	}
}

func TestCalculateBackoffNonPositiveAttempts(t *testing.T) {
	for _, attempt := range []int{0, -1, -100} {
		if got := CalculateBackoff(time.Second, attempt); got != 0 {
			t.Errorf("CalculateBackoff(1s, %d) = %v, want 0", attempt, got)
		}
	}
}

func TestApplyJitterSpread(t *testing.T) {
	const delay = 4 * time.Second

	seen := make(map[time.Duration]bool)
	for i := 0; i < 100; i++ {
		got := applyJitter(delay)
		if got < 3*time.Second || got > 5*time.Second {
			t.Fatalf("sample %d: applyJitter(4s) = %v, want within [3s, 5s]", i, got)
		}
		seen[got] = true
	}

	// a jitterless implementation would return the same value every time
	if len(seen) < 2 {
		t.Errorf("expected varied jitter, got %d distinct values in 100 samples", len(seen))
	}
}
