package mcmc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lisa/dsp/spectrum"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultPriorLow is the lower bound of the default flat prior on fdot.
	DefaultPriorLow = -10.0
	// DefaultPriorHigh is the upper bound of the default flat prior on fdot.
	DefaultPriorHigh = 10.0
)

// LogLikelihood returns the Whittle log-likelihood
// -1/2 * sum |observed[k]-proposed[k]|^2 / variance[k].
func LogLikelihood(observed, proposed []complex128, variance []float64) (float64, error) {
	if len(observed) == 0 || len(observed) != len(proposed) || len(observed) != len(variance) {
		return 0, fmt.Errorf("%w: observed %d, proposed %d, variance %d",
			ErrLengthMismatch, len(observed), len(proposed), len(variance))
	}
	if err := ValidateVariance(variance); err != nil {
		return 0, err
	}

	return logLikelihood(observed, proposed, variance), nil
}

// logLikelihood skips validation; lengths and variance must already be checked.
func logLikelihood(observed, proposed []complex128, variance []float64) float64 {
	residual := make([]float64, len(observed))
	spectrum.DifferencePower(residual, observed, proposed)
	floats.Div(residual, variance)

	return -0.5 * floats.Sum(residual)
}

// LogPrior is the flat prior on the closed interval [low, high]: 0 inside,
// -Inf outside. NaN parameters are outside.
func LogPrior(param, low, high float64) float64 {
	if param >= low && param <= high {
		return 0
	}
	return math.Inf(-1)
}

// LogPosterior returns LogPrior + LogLikelihood. When the prior is -Inf the
// likelihood inputs are not inspected and -Inf is returned with a nil error.
func LogPosterior(observed, proposed []complex128, variance []float64, param, low, high float64) (float64, error) {
	lp := LogPrior(param, low, high)
	if math.IsInf(lp, -1) {
		return lp, nil
	}

	ll, err := LogLikelihood(observed, proposed, variance)
	if err != nil {
		return 0, err
	}
	return lp + ll, nil
}
