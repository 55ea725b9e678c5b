package mcmc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lisa/dsp/spectrum"
)

// derivative returns dh/dfdot in the frequency domain. The time-domain
// derivative of A*sin(phase) is pi*(1-eps)*t^2 times the chirp shifted by
// pi/2, and the transform is linear.
func (p *Posterior) derivative(fdot float64) ([]complex128, error) {
	m := p.model
	m.Experiment.ChirpInto(p.buf, fdot, m.Times, math.Pi/2, p.cfg.eps)

	scale := math.Pi * (1 - p.cfg.eps)
	for i, t := range m.Times {
		p.buf[i] *= scale * t * t
	}

	return p.tr.Transform(p.buf)
}

// LogLikelihoodGradient returns d(log L)/d(fdot) at fdot,
// sum Re(conj(d-h) * dh) / variance.
func (p *Posterior) LogLikelihoodGradient(fdot float64) (float64, error) {
	h, err := p.Template(fdot)
	if err != nil {
		return 0, err
	}
	dh, err := p.derivative(fdot)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i, d := range p.model.Data {
		r := d - h[i]
		sum += (real(r)*real(dh[i]) + imag(r)*imag(dh[i])) / p.model.NoiseVariance[i]
	}
	return sum, nil
}

// FisherInformation returns sum |dh/dfdot|^2 / variance at fdot, the Fisher
// information of the single parameter under the Whittle likelihood.
func (p *Posterior) FisherInformation(fdot float64) (float64, error) {
	dh, err := p.derivative(fdot)
	if err != nil {
		return 0, err
	}

	power := spectrum.Power(dh)
	info := 0.0
	for i, v := range power {
		info += v / p.model.NoiseVariance[i]
	}
	return info, nil
}

// FisherSigma returns the Cramer-Rao 1-sigma bound 1/sqrt(FisherInformation).
func (p *Posterior) FisherSigma(fdot float64) (float64, error) {
	info, err := p.FisherInformation(fdot)
	if err != nil {
		return 0, err
	}
	if !(info > 0) || math.IsInf(info, 0) {
		return 0, fmt.Errorf("fisher information not positive at fdot=%v: %v", fdot, info)
	}
	return 1 / math.Sqrt(info), nil
}
