package mcmc

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrStartOutsidePrior is returned when the chain would start where the
	// prior, or the whole posterior, vanishes.
	ErrStartOutsidePrior = errors.New("mcmc: start value outside prior support")
	// ErrNoiseVariance is returned for zero, negative or non-finite noise variance.
	ErrNoiseVariance = errors.New("mcmc: noise variance must be positive and finite")
	// ErrLengthMismatch is returned when data, template, variance or frequency
	// grid lengths disagree.
	ErrLengthMismatch = errors.New("mcmc: length mismatch")
	// ErrInvalidConfig is returned for unusable sampler settings.
	ErrInvalidConfig = errors.New("mcmc: invalid configuration")
)

// ValidateVariance checks that every entry is positive and finite.
func ValidateVariance(variance []float64) error {
	for i, v := range variance {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: variance[%d] = %v", ErrNoiseVariance, i, v)
		}
	}
	return nil
}
