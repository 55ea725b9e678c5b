package mcmc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lisa/dsp/spectrum"
	"github.com/cwbudde/algo-lisa/lisa/waveform"
)

// Model is the fixed observation the posterior is conditioned on.
type Model struct {
	// Data is the measured one-sided spectrum without the DC bin.
	Data []complex128
	// NoiseVariance holds one positive variance per bin of Data.
	NoiseVariance []float64
	// Times is the uniform sampling grid of the time-domain signal.
	Times []float64
	// Experiment supplies the fixed amplitude and base frequency.
	Experiment waveform.Experiment
}

// PosteriorOption configures a Posterior.
type PosteriorOption func(*posteriorConfig)

type posteriorConfig struct {
	eps  float64
	low  float64
	high float64
}

// WithEpsilon sets the phase scaling offset passed to the signal model.
func WithEpsilon(eps float64) PosteriorOption {
	return func(c *posteriorConfig) {
		c.eps = eps
	}
}

// WithPriorBounds sets the closed interval of the flat prior.
func WithPriorBounds(low, high float64) PosteriorOption {
	return func(c *posteriorConfig) {
		c.low = low
		c.high = high
	}
}

// Posterior evaluates the log-posterior of fdot against a fixed Model:
// chirp synthesis, one-sided transform, Whittle likelihood and flat prior.
//
// A Posterior owns scratch buffers and is not safe for concurrent use.
type Posterior struct {
	model Model
	cfg   posteriorConfig
	tr    *spectrum.Transformer
	buf   []float64
}

// NewPosterior validates model and builds an evaluator for it. The model's
// slices are copied, so later changes by the caller have no effect.
func NewPosterior(model Model, opts ...PosteriorOption) (*Posterior, error) {
	cfg := posteriorConfig{low: DefaultPriorLow, high: DefaultPriorHigh}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !(cfg.low <= cfg.high) || math.IsInf(cfg.low, 0) || math.IsInf(cfg.high, 0) {
		return nil, fmt.Errorf("%w: prior bounds [%v, %v]", ErrInvalidConfig, cfg.low, cfg.high)
	}
	if math.IsNaN(cfg.eps) || math.IsInf(cfg.eps, 0) {
		return nil, fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, cfg.eps)
	}
	if err := model.Experiment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	dt, err := waveform.SampleInterval(model.Times)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	tr, err := spectrum.NewTransformer(len(model.Times), dt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if len(model.Data) != tr.Bins() || len(model.NoiseVariance) != tr.Bins() {
		return nil, fmt.Errorf("%w: data %d, variance %d, frequency bins %d",
			ErrLengthMismatch, len(model.Data), len(model.NoiseVariance), tr.Bins())
	}
	if err := ValidateVariance(model.NoiseVariance); err != nil {
		return nil, err
	}

	// The caller keeps its slices; validation only holds for our own copies.
	model.Data = append([]complex128(nil), model.Data...)
	model.NoiseVariance = append([]float64(nil), model.NoiseVariance...)
	model.Times = append([]float64(nil), model.Times...)

	return &Posterior{
		model: model,
		cfg:   cfg,
		tr:    tr,
		buf:   make([]float64, len(model.Times)),
	}, nil
}

// Bounds returns the prior interval.
func (p *Posterior) Bounds() (low, high float64) {
	return p.cfg.low, p.cfg.high
}

// Frequencies returns the frequency grid matching the model data.
func (p *Posterior) Frequencies() []float64 {
	return p.tr.Frequencies()
}

// PaddedLen returns the FFT length used by the transform.
func (p *Posterior) PaddedLen() int {
	return p.tr.PaddedLen()
}

// Template returns the frequency-domain signal for fdot.
func (p *Posterior) Template(fdot float64) ([]complex128, error) {
	p.model.Experiment.ChirpInto(p.buf, fdot, p.model.Times, 0, p.cfg.eps)
	return p.tr.Transform(p.buf)
}

// Evaluate returns the log-posterior of fdot. Values outside the prior return
// -Inf without synthesizing a template.
func (p *Posterior) Evaluate(fdot float64) (float64, error) {
	lp := LogPrior(fdot, p.cfg.low, p.cfg.high)
	if math.IsInf(lp, -1) {
		return lp, nil
	}

	h, err := p.Template(fdot)
	if err != nil {
		return 0, err
	}

	return lp + logLikelihood(p.model.Data, h, p.model.NoiseVariance), nil
}
