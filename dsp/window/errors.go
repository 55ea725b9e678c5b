package window

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("samples and coefficients must have same length")

func validateTukey(size int, alpha float64) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	if !(alpha >= 0 && alpha <= 1) {
		return fmt.Errorf("tukey alpha must be in [0,1]: %f", alpha)
	}
	return nil
}
