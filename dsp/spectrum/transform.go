package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-lisa/dsp/window"
)

// TransformOption configures a Transformer.
type TransformOption func(*transformConfig)

type transformConfig struct {
	taperFraction float64
}

// WithTaperFraction sets the Tukey taper fraction applied before padding.
// Zero disables tapering. Values outside [0,1], NaN included, make
// NewTransformer fail.
func WithTaperFraction(alpha float64) TransformOption {
	return func(c *transformConfig) {
		c.taperFraction = alpha
	}
}

// Transformer computes the tapered, zero-padded, one-sided spectrum of real
// series of a fixed length. The zero-frequency bin is dropped, so bin k of
// the output corresponds to frequency (k+1)/(PaddedLen*dt).
//
// The FFT plan and taper are built once. A Transformer reuses an internal
// input buffer and is not safe for concurrent use.
type Transformer struct {
	n      int
	padded int
	dt     float64
	taper  []float64
	plan   *algofft.Plan[complex128]
	in     []complex128
	out    []complex128
	work   []float64
}

// NewTransformer builds a Transformer for series of n samples spaced dt apart.
func NewTransformer(n int, dt float64, opts ...TransformOption) (*Transformer, error) {
	if n < 2 {
		return nil, fmt.Errorf("transform length must be >= 2: %d", n)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("transform sample interval must be > 0: %f", dt)
	}

	cfg := transformConfig{taperFraction: window.DefaultTukeyFraction}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	taper, err := window.Tukey(n, cfg.taperFraction)
	if err != nil {
		return nil, err
	}

	padded := NextPowerOfTwo(n)

	plan, err := algofft.NewPlan64(padded)
	if err != nil {
		return nil, fmt.Errorf("transform plan for %d points: %w", padded, err)
	}

	return &Transformer{
		n:      n,
		padded: padded,
		dt:     dt,
		taper:  taper,
		plan:   plan,
		in:     make([]complex128, padded),
		out:    make([]complex128, padded),
		work:   make([]float64, n),
	}, nil
}

// Len returns the expected input length.
func (t *Transformer) Len() int { return t.n }

// PaddedLen returns the FFT length after zero padding.
func (t *Transformer) PaddedLen() int { return t.padded }

// Bins returns the output length, PaddedLen/2.
func (t *Transformer) Bins() int { return t.padded / 2 }

// SampleInterval returns the sample spacing in seconds.
func (t *Transformer) SampleInterval() float64 { return t.dt }

// Frequencies returns the frequency of every output bin.
func (t *Transformer) Frequencies() []float64 {
	return frequencies(t.padded, t.dt)
}

// Transform returns the one-sided spectrum of series without the DC bin.
// The input is not modified and the returned slice is freshly allocated.
func (t *Transformer) Transform(series []float64) ([]complex128, error) {
	if len(series) != t.n {
		return nil, fmt.Errorf("transform input length %d, want %d", len(series), t.n)
	}

	copy(t.work, series)
	if err := window.Apply(t.work, t.taper); err != nil {
		return nil, err
	}

	for i, v := range t.work {
		t.in[i] = complex(v, 0)
	}
	for i := t.n; i < t.padded; i++ {
		t.in[i] = 0
	}

	if err := t.plan.Forward(t.out, t.in); err != nil {
		return nil, fmt.Errorf("transform forward fft: %w", err)
	}

	bins := make([]complex128, t.padded/2)
	copy(bins, t.out[1:t.padded/2+1])
	return bins, nil
}

// Transform is a one-shot helper around NewTransformer for series sampled
// every dt seconds, using the default 0.1 Tukey taper.
func Transform(series []float64, dt float64) ([]complex128, error) {
	tr, err := NewTransformer(len(series), dt)
	if err != nil {
		return nil, err
	}
	return tr.Transform(series)
}

// Frequencies returns the bin frequencies matching Transform for a series of
// n samples spaced dt apart: k/(NextPowerOfTwo(n)*dt) for k = 1..padded/2.
func Frequencies(n int, dt float64) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("frequency grid length must be >= 2: %d", n)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("frequency grid sample interval must be > 0: %f", dt)
	}
	return frequencies(NextPowerOfTwo(n), dt), nil
}

func frequencies(padded int, dt float64) []float64 {
	out := make([]float64, padded/2)
	df := 1 / (float64(padded) * dt)
	for i := range out {
		out[i] = float64(i+1) * df
	}
	return out
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// ZeroPad returns a copy of data extended with zeros to NextPowerOfTwo(len(data)).
func ZeroPad(data []float64) []float64 {
	out := make([]float64, NextPowerOfTwo(len(data)))
	copy(out, data)
	return out
}
