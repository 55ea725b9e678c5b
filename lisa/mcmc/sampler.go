package mcmc

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Config holds the Metropolis sampler settings.
type Config struct {
	// Iterations is the total chain length, including the start value.
	Iterations int
	// BurnIn is carried for callers trimming the chain; the sampler ignores it.
	BurnIn int
	// Start is the initial fdot and must lie inside the prior bounds.
	Start float64
	// ProposalVariance is the variance of the Gaussian random-walk step.
	ProposalVariance float64
	// Epsilon is the phase scaling offset passed to the signal model.
	Epsilon float64
	// PrintInterval emits a progress log line every N iterations (0 disables).
	PrintInterval int
	// SaveInterval calls the checkpoint hook every N iterations (0 disables).
	SaveInterval int
	// PriorLow and PriorHigh bound the flat prior. They are used as given;
	// DefaultConfig sets [DefaultPriorLow, DefaultPriorHigh].
	PriorLow  float64
	PriorHigh float64
}

// DefaultConfig returns a configuration with the default prior bounds.
func DefaultConfig() Config {
	return Config{
		Iterations: 1000,
		PriorLow:   DefaultPriorLow,
		PriorHigh:  DefaultPriorHigh,
	}
}

// CheckpointFunc receives the chain recorded so far.
type CheckpointFunc func(Result) error

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCheckpoint sets a hook called every Config.SaveInterval iterations.
func WithCheckpoint(fn CheckpointFunc) Option {
	return func(s *Sampler) {
		s.checkpoint = fn
	}
}

// Sampler is a single-parameter Metropolis sampler with a fixed-variance
// Gaussian random-walk proposal.
type Sampler struct {
	cfg        Config
	post       *Posterior
	logger     *zap.Logger
	checkpoint CheckpointFunc
}

// NewSampler validates cfg and model and returns a ready sampler.
func NewSampler(model Model, cfg Config, opts ...Option) (*Sampler, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	post, err := NewPosterior(model,
		WithEpsilon(cfg.Epsilon),
		WithPriorBounds(cfg.PriorLow, cfg.PriorHigh),
	)
	if err != nil {
		return nil, err
	}

	if math.IsInf(LogPrior(cfg.Start, cfg.PriorLow, cfg.PriorHigh), -1) {
		return nil, fmt.Errorf("%w: start %v not in [%v, %v]",
			ErrStartOutsidePrior, cfg.Start, cfg.PriorLow, cfg.PriorHigh)
	}

	s := &Sampler{
		cfg:    cfg,
		post:   post,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Config returns the sampler configuration.
func (s *Sampler) Config() Config {
	return s.cfg
}

// Posterior returns the evaluator the sampler draws against.
func (s *Sampler) Posterior() *Posterior {
	return s.post
}

// Run draws a chain of Config.Iterations values. rng is consumed in order,
// exactly two draws per transition: the proposal step, then the acceptance
// uniform. The same seed and inputs reproduce the chain bit for bit.
func (s *Sampler) Run(rng *rand.Rand) (Result, error) {
	if rng == nil {
		return Result{}, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	n := s.cfg.Iterations
	res := Result{
		Chain:        make([]float64, n),
		LogPosterior: make([]float64, n),
		Accepted:     make([]bool, n),
	}

	current := s.cfg.Start
	lp, err := s.post.Evaluate(current)
	if err != nil {
		return Result{}, err
	}
	if math.IsInf(lp, 0) || math.IsNaN(lp) {
		return Result{}, fmt.Errorf("%w: log posterior %v at start %v", ErrStartOutsidePrior, lp, current)
	}

	res.Chain[0] = current
	res.LogPosterior[0] = lp
	res.Accepted[0] = true

	sigma := math.Sqrt(s.cfg.ProposalVariance)
	accepted := 0

	s.logger.Debug("mcmc start",
		zap.Int("iterations", n),
		zap.Float64("start", current),
		zap.Float64("log_posterior", lp),
		zap.Float64("proposal_sigma", sigma),
	)

	for i := 1; i < n; i++ {
		proposal := current + sigma*rng.NormFloat64()

		lpProp, err := s.post.Evaluate(proposal)
		if err != nil {
			return Result{}, fmt.Errorf("iteration %d: %w", i, err)
		}

		if accept(lpProp, lp, rng.Float64()) {
			current = proposal
			lp = lpProp
			res.Accepted[i] = true
			accepted++
		}

		res.Chain[i] = current
		res.LogPosterior[i] = lp

		if s.cfg.PrintInterval > 0 && i%s.cfg.PrintInterval == 0 {
			s.logger.Info("mcmc progress",
				zap.Int("iteration", i),
				zap.Float64("fdot", current),
				zap.Float64("log_posterior", lp),
				zap.Float64("acceptance_ratio", float64(accepted)/float64(i)),
			)
		}

		if s.checkpoint != nil && s.cfg.SaveInterval > 0 && i%s.cfg.SaveInterval == 0 {
			if err := s.checkpoint(res.prefix(i + 1)); err != nil {
				return res.prefix(i + 1), fmt.Errorf("checkpoint at iteration %d: %w", i, err)
			}
		}
	}

	s.logger.Debug("mcmc done",
		zap.Int("iterations", n),
		zap.Float64("acceptance_ratio", res.AcceptanceRatio()),
	)

	return res, nil
}

// accept is the Metropolis rule in log space: accept iff
// log(u) < min(0, lpProp-lpCur). Proposals at least as probable as the
// current state are always accepted for u in [0,1) unless u is exactly 0.
func accept(lpProp, lpCur, u float64) bool {
	logAlpha := math.Min(0, lpProp-lpCur)
	return math.Log(u) < logAlpha
}

func validateConfig(cfg Config) error {
	switch {
	case cfg.Iterations < 1:
		return fmt.Errorf("%w: iterations must be >= 1: %d", ErrInvalidConfig, cfg.Iterations)
	case cfg.BurnIn < 0 || cfg.BurnIn > cfg.Iterations:
		return fmt.Errorf("%w: burn-in must be in [0, %d]: %d", ErrInvalidConfig, cfg.Iterations, cfg.BurnIn)
	case !(cfg.ProposalVariance >= 0) || math.IsInf(cfg.ProposalVariance, 0):
		return fmt.Errorf("%w: proposal variance must be finite and >= 0: %v", ErrInvalidConfig, cfg.ProposalVariance)
	case cfg.PrintInterval < 0 || cfg.SaveInterval < 0:
		return fmt.Errorf("%w: intervals must be >= 0: print %d, save %d", ErrInvalidConfig, cfg.PrintInterval, cfg.SaveInterval)
	case math.IsNaN(cfg.Start) || math.IsInf(cfg.Start, 0):
		return fmt.Errorf("%w: start %v", ErrStartOutsidePrior, cfg.Start)
	}
	return nil
}
