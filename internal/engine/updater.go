// ABOUTME: User-interest profile updater blending interest vectors with signals
// ABOUTME: Exponential moving average with configurable strength and direction
package engine

import "log"

// Direction controls whether a blend pulls the interest vector toward the
// signal or pushes it away.
type Direction int

const (
	// Toward pulls the interest vector toward the signal (default).
	Toward Direction = iota
	// Away negates the signal before blending, repelling the interest
	// vector from it. The negation applies to the signal, never to alpha,
	// so alpha stays a non-negative learning rate.
	Away
)

// Default blend factors per interaction strength. Viewing is a weak
// signal, commenting medium, liking strong. Dismissing uses the medium
// factor with the Away direction.
const (
	DefaultAlphaView    = 0.02
	DefaultAlphaComment = 0.05
	DefaultAlphaLike    = 0.1
	DefaultAlphaDismiss = 0.05
)

// Blend returns the per-dimension weighted average of the current interest
// vector and a signal vector:
//
//	toward: u'[i] = (1-alpha)*u[i] + alpha*s[i]
//	away:   u'[i] = (1-alpha)*u[i] - alpha*s[i]
//
// A dimension mismatch is a silent no-op returning current unchanged; one
// malformed signal must never corrupt a profile or abort the caller. The
// anomaly is logged so it stays observable.
func Blend(current, signal []float64, alpha float64, dir Direction) []float64 {
	if len(current) != len(signal) {
		log.Printf("engine: blend skipped, dimension mismatch: %d vs %d", len(current), len(signal))
		return current
	}

	updated := make([]float64, len(current))
	for i := range current {
		s := signal[i]
		if dir == Away {
			s = -s
		}
		updated[i] = (1-alpha)*current[i] + alpha*s
	}
	return updated
}
