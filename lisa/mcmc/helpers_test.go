package mcmc

import (
	"testing"

	"github.com/cwbudde/algo-lisa/dsp/spectrum"
	"github.com/cwbudde/algo-lisa/lisa/noise"
	"github.com/cwbudde/algo-lisa/lisa/waveform"
	"github.com/stretchr/testify/require"
)

// lisaModel builds noise-free data for the reference experiment on an
// n-sample grid with the LISA noise variance.
func lisaModel(t *testing.T, n int, dt, trueFdot float64) Model {
	t.Helper()

	times, err := waveform.TimeGrid(n, dt)
	require.NoError(t, err)

	exp := waveform.DefaultExperiment()
	data, err := spectrum.Transform(exp.Chirp(trueFdot, times, 0), dt)
	require.NoError(t, err)

	freqs, err := spectrum.Frequencies(n, dt)
	require.NoError(t, err)

	variance, err := noise.Variance(noise.PSDs(freqs), spectrum.NextPowerOfTwo(n), dt)
	require.NoError(t, err)

	return Model{
		Data:          data,
		NoiseVariance: variance,
		Times:         times,
		Experiment:    exp,
	}
}

// unitModel uses a unit-amplitude chirp and unit noise variance, which keeps
// derivatives well scaled for finite-difference checks.
func unitModel(t *testing.T, n int, trueFdot float64) Model {
	t.Helper()

	times, err := waveform.TimeGrid(n, 1)
	require.NoError(t, err)

	exp := waveform.Experiment{Amplitude: 1, Frequency: 0.05}
	data, err := spectrum.Transform(exp.Chirp(trueFdot, times, 0), 1)
	require.NoError(t, err)

	variance := make([]float64, len(data))
	for i := range variance {
		variance[i] = 1
	}

	return Model{
		Data:          data,
		NoiseVariance: variance,
		Times:         times,
		Experiment:    exp,
	}
}
