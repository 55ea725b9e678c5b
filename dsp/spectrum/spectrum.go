package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// DifferencePower writes |a[k]-b[k]|^2 into dst. All slices must have the
// same length.
func DifferencePower(dst []float64, a, b []complex128) {
	re, im, buf := getScratch(len(dst))
	for i := range dst {
		d := a[i] - b[i]
		re[i] = real(d)
		im[i] = imag(d)
	}

	vecmath.Power(dst, re, im)
	putScratch(buf)
}

// PeakBin returns the index of the largest value in power, or -1 when empty.
func PeakBin(power []float64) int {
	best := -1
	bestVal := 0.0
	for i, v := range power {
		if best < 0 || v > bestVal {
			best = i
			bestVal = v
		}
	}
	return best
}
