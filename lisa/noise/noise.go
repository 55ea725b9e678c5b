package noise

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
)

const (
	// ArmLength is the LISA arm length in metres.
	ArmLength = 2.5e9
	// TransferFrequency is the arm transfer frequency c/(2*pi*L) in Hz.
	TransferFrequency = 19.09e-3

	// Optical metrology noise in m/sqrt(Hz) and test-mass acceleration
	// noise in m/s^2/sqrt(Hz), with their knee frequencies in Hz.
	omsAmplitude = 1.5e-11
	omsKnee      = 2e-3
	accAmplitude = 3e-15
	accLowKnee   = 0.4e-3
	accHighKnee  = 8e-3
)

// PSD returns the one-sided LISA instrument noise power spectral density at
// frequency f (Hz), without galactic confusion noise (arXiv:1803.01944).
// f must be positive; the expression is singular at zero.
func PSD(f float64) float64 {
	oms := omsAmplitude * omsAmplitude * (1 + math.Pow(omsKnee/f, 4))

	lowAcc := accLowKnee / f
	acc := accAmplitude * accAmplitude * (1 + lowAcc*lowAcc) * (1 + math.Pow(f/accHighKnee, 4))

	w := 2 * math.Pi * f
	r := f / TransferFrequency

	return 10 / (3 * ArmLength * ArmLength) * (oms + 4*acc/(w*w*w*w)) * (1 + 0.6*r*r)
}

// PSDs evaluates PSD for every frequency in freqs.
func PSDs(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = PSD(f)
	}
	return out
}

// Variance converts a PSD sampled on the one-sided FFT grid of a
// paddedLen-point transform with sample interval dt into per-bin noise
// variance paddedLen*S/(4*dt). With this scaling sum |d-h|^2/variance equals
// the noise-weighted inner product (d-h|d-h).
func Variance(psd []float64, paddedLen int, dt float64) ([]float64, error) {
	if paddedLen <= 0 {
		return nil, fmt.Errorf("noise variance padded length must be > 0: %d", paddedLen)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("noise variance sample interval must be > 0: %f", dt)
	}

	scale := float64(paddedLen) / (4 * dt)
	out := make([]float64, len(psd))
	for i, s := range psd {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("noise psd[%d] must be positive and finite: %v", i, s)
		}
		out[i] = scale * s
	}
	return out, nil
}

// InnerProduct returns the noise-weighted inner product
// (a|b) = 4*dt/paddedLen * Re sum conj(a[k])*b[k]/psd[k].
func InnerProduct(a, b []complex128, psd []float64, dt float64, paddedLen int) (float64, error) {
	if len(a) != len(b) || len(a) != len(psd) {
		return 0, fmt.Errorf("inner product length mismatch: %d, %d, %d", len(a), len(b), len(psd))
	}
	if paddedLen <= 0 || !(dt > 0) {
		return 0, fmt.Errorf("inner product needs paddedLen > 0 and dt > 0: %d, %f", paddedLen, dt)
	}

	sum := 0.0
	for i := range a {
		if !(psd[i] > 0) {
			return 0, fmt.Errorf("noise psd[%d] must be positive: %v", i, psd[i])
		}
		sum += real(cmplx.Conj(a[i])*b[i]) / psd[i]
	}

	return 4 * dt / float64(paddedLen) * sum, nil
}

// SNR returns the optimal signal-to-noise ratio sqrt((h|h)).
func SNR(h []complex128, psd []float64, dt float64, paddedLen int) (float64, error) {
	hh, err := InnerProduct(h, h, psd, dt, paddedLen)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(hh), nil
}

// Realization draws one frequency-domain noise vector with independent
// circular Gaussian bins, E|n[k]|^2 = variance[k]. Two draws are taken from
// rng per bin, real part first.
func Realization(variance []float64, rng *rand.Rand) []complex128 {
	out := make([]complex128, len(variance))
	for i, v := range variance {
		sigma := math.Sqrt(v / 2)
		re := rng.NormFloat64() * sigma
		im := rng.NormFloat64() * sigma
		out[i] = complex(re, im)
	}
	return out
}
