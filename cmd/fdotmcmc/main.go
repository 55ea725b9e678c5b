// Command fdotmcmc estimates the frequency derivative of a simulated LISA
// chirp with a Metropolis sampler.
//
// Usage:
//
//	fdotmcmc [flags]
//
// The data are the tapered, zero-padded spectrum of a chirp with -true-fdot,
// optionally plus one colored-noise realization. The chain starts at -start
// and is summarized after dropping -burnin iterations.
//
// Examples:
//
//	fdotmcmc
//	fdotmcmc -n 5000 -burnin 500 -noise -seed 7
//	fdotmcmc -samples 4096 -dt 5 -proposal-var 1e-18 -out chain.parquet
//	fdotmcmc -log-json -log-level debug
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-lisa/dsp/spectrum"
	"github.com/cwbudde/algo-lisa/internal/chainio"
	"github.com/cwbudde/algo-lisa/lisa/mcmc"
	"github.com/cwbudde/algo-lisa/lisa/noise"
	"github.com/cwbudde/algo-lisa/lisa/waveform"
	"go.uber.org/zap"
)

type options struct {
	iterations   int
	burnIn       int
	start        float64
	trueFdot     float64
	proposalVar  float64
	samples      int
	dt           float64
	eps          float64
	seed         uint64
	addNoise     bool
	printEvery   int
	saveEvery    int
	out          string
	logLevel     string
	logJSON      bool
	amplitude    float64
	frequency    float64
	priorLow     float64
	priorHigh    float64
	proposalStep float64
}

func main() {
	var o options
	flag.IntVar(&o.iterations, "n", 1000, "total chain length including the start value")
	flag.IntVar(&o.burnIn, "burnin", 100, "iterations discarded before summarizing")
	flag.Float64Var(&o.start, "start", 0, "initial fdot [Hz/s]")
	flag.Float64Var(&o.trueFdot, "true-fdot", 1e-8, "fdot used to simulate the data [Hz/s]")
	flag.Float64Var(&o.proposalVar, "proposal-var", 0, "random-walk proposal variance (0 derives it from the Fisher information)")
	flag.Float64Var(&o.proposalStep, "proposal-scale", 1, "multiplier on the Fisher standard deviation when -proposal-var is 0")
	flag.IntVar(&o.samples, "samples", 1000, "number of time samples")
	flag.Float64Var(&o.dt, "dt", 1, "sample interval [s]")
	flag.Float64Var(&o.eps, "eps", 0, "phase scaling offset")
	flag.Uint64Var(&o.seed, "seed", 1, "random seed")
	flag.BoolVar(&o.addNoise, "noise", false, "add one LISA noise realization to the data")
	flag.IntVar(&o.printEvery, "print-every", 100, "log progress every N iterations (0 disables)")
	flag.IntVar(&o.saveEvery, "save-every", 0, "checkpoint the chain to -out every N iterations (0 disables)")
	flag.StringVar(&o.out, "out", "", "write the chain to this Parquet file")
	flag.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.BoolVar(&o.logJSON, "log-json", false, "emit JSON logs")
	flag.Float64Var(&o.amplitude, "amplitude", waveform.DefaultAmplitude, "chirp amplitude [strain]")
	flag.Float64Var(&o.frequency, "f0", waveform.DefaultFrequency, "chirp start frequency [Hz]")
	flag.Float64Var(&o.priorLow, "prior-low", mcmc.DefaultPriorLow, "lower prior bound on fdot")
	flag.Float64Var(&o.priorHigh, "prior-high", mcmc.DefaultPriorHigh, "upper prior bound on fdot")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fdotmcmc [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Estimates the frequency derivative of a simulated LISA chirp with a Metropolis sampler.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fdotmcmc\n")
		fmt.Fprintf(os.Stderr, "  fdotmcmc -n 5000 -burnin 500 -noise -seed 7\n")
		fmt.Fprintf(os.Stderr, "  fdotmcmc -samples 4096 -dt 5 -out chain.parquet\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(o.logLevel, o.logJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(o, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// experiment holds the simulated measurement.
type experiment struct {
	times    []float64
	freqs    []float64
	psd      []float64
	variance []float64
	signal   []complex128
	data     []complex128
	padded   int
	exp      waveform.Experiment
}

func simulate(o options, noiseRNG *rand.Rand) (*experiment, error) {
	exp := waveform.Experiment{Amplitude: o.amplitude, Frequency: o.frequency}
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	times, err := waveform.TimeGrid(o.samples, o.dt)
	if err != nil {
		return nil, err
	}

	tr, err := spectrum.NewTransformer(o.samples, o.dt)
	if err != nil {
		return nil, err
	}

	signal, err := tr.Transform(exp.Chirp(o.trueFdot, times, o.eps))
	if err != nil {
		return nil, err
	}

	freqs := tr.Frequencies()
	psd := noise.PSDs(freqs)
	variance, err := noise.Variance(psd, tr.PaddedLen(), o.dt)
	if err != nil {
		return nil, err
	}

	data := append([]complex128(nil), signal...)
	if o.addNoise {
		for i, n := range noise.Realization(variance, noiseRNG) {
			data[i] += n
		}
	}

	return &experiment{
		times:    times,
		freqs:    freqs,
		psd:      psd,
		variance: variance,
		signal:   signal,
		data:     data,
		padded:   tr.PaddedLen(),
		exp:      exp,
	}, nil
}

func run(o options, logger *zap.Logger) error {
	x, err := simulate(o, rand.New(rand.NewPCG(o.seed, o.seed+1)))
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	snr, err := noise.SNR(x.signal, x.psd, o.dt, x.padded)
	if err != nil {
		return err
	}
	peak := spectrum.PeakBin(spectrum.Power(x.data))
	logger.Info("data ready",
		zap.Int("samples", o.samples),
		zap.Int("padded", x.padded),
		zap.Int("bins", len(x.data)),
		zap.Float64("snr", snr),
		zap.Float64("peak_hz", x.freqs[peak]),
		zap.Bool("noise", o.addNoise),
	)

	model := mcmc.Model{
		Data:          x.data,
		NoiseVariance: x.variance,
		Times:         x.times,
		Experiment:    x.exp,
	}

	cfg := mcmc.Config{
		Iterations:       o.iterations,
		BurnIn:           o.burnIn,
		Start:            o.start,
		ProposalVariance: o.proposalVar,
		Epsilon:          o.eps,
		PrintInterval:    o.printEvery,
		PriorLow:         o.priorLow,
		PriorHigh:        o.priorHigh,
	}

	opts := []mcmc.Option{mcmc.WithLogger(logger.Named("mcmc"))}
	if o.out != "" && o.saveEvery > 0 {
		cfg.SaveInterval = o.saveEvery
		opts = append(opts, mcmc.WithCheckpoint(chainio.Checkpoint(o.out)))
	}

	sampler, err := mcmc.NewSampler(model, cfg, opts...)
	if err != nil {
		return err
	}

	fisherSigma, err := sampler.Posterior().FisherSigma(o.start)
	if err != nil {
		logger.Warn("fisher information unavailable", zap.Error(err))
		fisherSigma = math.NaN()
	}

	if o.proposalVar == 0 {
		if math.IsNaN(fisherSigma) {
			return errors.New("cannot derive a proposal variance; set -proposal-var")
		}
		cfg.ProposalVariance = math.Pow(o.proposalStep*fisherSigma, 2)
		if sampler, err = mcmc.NewSampler(model, cfg, opts...); err != nil {
			return err
		}
		logger.Info("proposal variance from fisher information",
			zap.Float64("sigma", fisherSigma),
			zap.Float64("proposal_variance", cfg.ProposalVariance),
		)
	}

	res, err := sampler.Run(rand.New(rand.NewPCG(o.seed, o.seed)))
	if err != nil {
		return err
	}

	if o.out != "" {
		if err := chainio.WriteFile(o.out, res); err != nil {
			return err
		}
		logger.Info("chain written", zap.String("path", o.out), zap.Int("rows", res.Len()))
	}

	summary, err := res.Summarize(o.burnIn)
	if err != nil {
		return err
	}
	return printSummary(o, res, summary, snr, fisherSigma)
}

func printSummary(o options, res mcmc.Result, s mcmc.Summary, snr, fisherSigma float64) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value string
	}{
		{"true fdot", fmt.Sprintf("%.6e", o.trueFdot)},
		{"posterior mean", fmt.Sprintf("%.6e", s.Mean)},
		{"posterior median", fmt.Sprintf("%.6e", s.Median)},
		{"posterior std", fmt.Sprintf("%.6e", s.StdDev)},
		{"90% interval", fmt.Sprintf("[%.6e, %.6e]", s.Lower, s.Upper)},
		{"fisher sigma", fmt.Sprintf("%.6e", fisherSigma)},
		{"snr", fmt.Sprintf("%.3f", snr)},
		{"acceptance ratio", fmt.Sprintf("%.4f", res.AcceptanceRatio())},
		{"samples kept", fmt.Sprintf("%d of %d", s.N, res.Len())},
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.name, r.value); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}
	return nil
}
