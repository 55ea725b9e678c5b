package waveform

import (
	"fmt"
	"math"
)

const (
	// DefaultAmplitude is the strain amplitude of the simulated source.
	DefaultAmplitude = 5e-21
	// DefaultFrequency is the initial gravitational-wave frequency in Hz.
	DefaultFrequency = 1e-3
)

// Experiment holds the fixed, non-sampled source parameters.
type Experiment struct {
	Amplitude float64
	Frequency float64
}

// DefaultExperiment returns the reference source used by the fdot study.
func DefaultExperiment() Experiment {
	return Experiment{
		Amplitude: DefaultAmplitude,
		Frequency: DefaultFrequency,
	}
}

// Validate reports whether the experiment parameters are usable.
func (e Experiment) Validate() error {
	if math.IsNaN(e.Amplitude) || math.IsInf(e.Amplitude, 0) {
		return fmt.Errorf("waveform amplitude must be finite: %v", e.Amplitude)
	}
	if !(e.Frequency > 0) || math.IsInf(e.Frequency, 0) {
		return fmt.Errorf("waveform frequency must be > 0: %v", e.Frequency)
	}
	return nil
}

// Chirp returns A*sin(2*pi*(f0*t + fdot*t^2/2)*(1-eps)) sampled at t.
func (e Experiment) Chirp(fdot float64, t []float64, eps float64) []float64 {
	return e.ChirpWithPhase(fdot, t, 0, eps)
}

// ChirpWithPhase is Chirp with an additional constant phase phi added inside
// the sine after the (1-eps) scaling.
func (e Experiment) ChirpWithPhase(fdot float64, t []float64, phi, eps float64) []float64 {
	out := make([]float64, len(t))
	e.ChirpInto(out, fdot, t, phi, eps)
	return out
}

// ChirpInto writes ChirpWithPhase into dst, which must have len(t) elements.
func (e Experiment) ChirpInto(dst []float64, fdot float64, t []float64, phi, eps float64) {
	scale := 2 * math.Pi * (1 - eps)
	for i, ti := range t {
		dst[i] = e.Amplitude * math.Sin(scale*(e.Frequency*ti+0.5*fdot*ti*ti)+phi)
	}
}

// TimeGrid returns n timestamps t_i = i*dt.
func TimeGrid(n int, dt float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("time grid samples must be > 0: %d", n)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("time grid sample interval must be > 0: %f", dt)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out, nil
}

// SampleInterval returns the spacing of a uniform time grid.
func SampleInterval(t []float64) (float64, error) {
	if len(t) < 2 {
		return 0, fmt.Errorf("time grid needs at least 2 samples: %d", len(t))
	}

	dt := t[1] - t[0]
	if !(dt > 0) {
		return 0, fmt.Errorf("time grid must be increasing: %v, %v", t[0], t[1])
	}
	return dt, nil
}
