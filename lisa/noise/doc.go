// Package noise implements the analytic LISA instrument noise model and the
// noise-weighted quantities built on it.
//
// The model combines an optical metrology term and a test-mass acceleration
// term with a long-wavelength correction. It is only defined for positive
// frequencies; callers evaluate it on grids produced by
// [github.com/cwbudde/algo-lisa/dsp/spectrum.Frequencies], which excludes DC.
package noise
