package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultTukeyFraction is the tapered share of a Tukey window used when
// preparing finite observations for a one-sided transform.
const DefaultTukeyFraction = 0.1

// Tukey returns symmetric Tukey coefficients, matching
// scipy.signal.windows.tukey(size, alpha). alpha is the fraction of the
// window inside the cosine tapers: 0 gives a rectangle, 1 gives Hann.
func Tukey(size int, alpha float64) ([]float64, error) {
	if err := validateTukey(size, alpha); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	den := float64(size - 1)
	for i := range out {
		out[i] = tukeyAt(float64(i)/den, alpha)
	}
	return out, nil
}

// Apply multiplies samples by coeffs in place.
func Apply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// tukeyAt evaluates the window at normalized position x in [0,1].
func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}
