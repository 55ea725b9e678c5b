package mcmc

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Result holds the sampler output, one entry per iteration.
//
// Chain[i] is the fdot value after iteration i and LogPosterior[i] its
// log-posterior. On rejection both repeat the previous entry. Accepted[0]
// marks the start value and is always true.
type Result struct {
	Chain        []float64
	LogPosterior []float64
	Accepted     []bool
}

// Len returns the number of recorded iterations.
func (r Result) Len() int {
	return len(r.Chain)
}

// AcceptanceRatio returns the accepted share of transitions, excluding the
// start value. It is 0 for chains without transitions.
func (r Result) AcceptanceRatio() float64 {
	if len(r.Accepted) < 2 {
		return 0
	}

	n := 0
	for _, a := range r.Accepted[1:] {
		if a {
			n++
		}
	}
	return float64(n) / float64(len(r.Accepted)-1)
}

// PostBurnIn returns the chain without its first burnIn values. The slice
// aliases the chain.
func (r Result) PostBurnIn(burnIn int) []float64 {
	if burnIn < 0 {
		burnIn = 0
	}
	if burnIn > len(r.Chain) {
		burnIn = len(r.Chain)
	}
	return r.Chain[burnIn:]
}

// Summarize describes the chain after discarding burnIn values.
func (r Result) Summarize(burnIn int) (Summary, error) {
	return Summarize(r.PostBurnIn(burnIn))
}

func (r Result) prefix(n int) Result {
	return Result{
		Chain:        r.Chain[:n],
		LogPosterior: r.LogPosterior[:n],
		Accepted:     r.Accepted[:n],
	}
}

// Summary describes a set of posterior samples.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Median float64
	// Lower and Upper are the 5% and 95% empirical quantiles.
	Lower float64
	Upper float64
}

// Summarize computes sample statistics of samples.
func Summarize(samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, fmt.Errorf("summarize: no samples")
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	s := Summary{
		N:      len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Lower:  stat.Quantile(0.05, stat.Empirical, sorted, nil),
		Upper:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s, nil
}
