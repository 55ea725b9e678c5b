package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-lisa/dsp/window"
	"github.com/cwbudde/algo-lisa/internal/testutil"
	"github.com/mjibson/go-dsp/fft"
)

func TestPower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	pow := Power(bins)
	if len(pow) != len(bins) {
		t.Fatalf("Power length mismatch: got=%d want=%d", len(pow), len(bins))
	}

	if math.Abs(pow[0]-25) > 1e-12 || math.Abs(pow[1]-2) > 1e-12 || pow[2] != 0 {
		t.Fatalf("unexpected Power output: %v", pow)
	}

	if Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestDifferencePower(t *testing.T) {
	a := []complex128{1 + 1i, 2, 5i}
	b := []complex128{1 + 1i, -1, 1i}
	dst := make([]float64, 3)

	DifferencePower(dst, a, b)
	testutil.RequireSliceNearlyEqual(t, dst, []float64{0, 9, 16}, 1e-12)
}

func TestPeakBin(t *testing.T) {
	if got := PeakBin(nil); got != -1 {
		t.Fatalf("PeakBin(nil)=%d, want -1", got)
	}
	if got := PeakBin([]float64{0, 3, 7, 2}); got != 2 {
		t.Fatalf("PeakBin=%d, want 2", got)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Fatalf("NextPowerOfTwo(%d)=%d, want %d", in, got, want)
		}
	}
}

func TestZeroPad(t *testing.T) {
	out := ZeroPad([]float64{1, 2, 3})
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 2, 3, 0}, 0)

	already := []float64{1, 2, 3, 4}
	padded := ZeroPad(already)
	testutil.RequireSliceNearlyEqual(t, padded, already, 0)
}

func TestTransformOutputLength(t *testing.T) {
	for _, n := range []int{2, 3, 100, 1000, 1024, 1500} {
		x := testutil.DeterministicNoise(int64(n), 1, n)

		got, err := Transform(x, 1)
		if err != nil {
			t.Fatalf("n=%d: Transform error: %v", n, err)
		}

		if want := NextPowerOfTwo(n) / 2; len(got) != want {
			t.Fatalf("n=%d: len=%d, want %d", n, len(got), want)
		}

		freqs, err := Frequencies(n, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(freqs) != len(got) {
			t.Fatalf("n=%d: frequency grid len=%d, spectrum len=%d", n, len(freqs), len(got))
		}
	}
}

func TestTransformPowerOfTwoInputIsNotPadded(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 512)

	tr, err := NewTransformer(len(x), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if tr.PaddedLen() != 512 || tr.Bins() != 256 {
		t.Fatalf("padded=%d bins=%d, want 512/256", tr.PaddedLen(), tr.Bins())
	}

	// Applying the taper and padding by hand must not change anything.
	taper, err := window.Tukey(len(x), window.DefaultTukeyFraction)
	if err != nil {
		t.Fatal(err)
	}
	tapered := append([]float64(nil), x...)
	if err := window.Apply(tapered, taper); err != nil {
		t.Fatal(err)
	}

	plain, err := NewTransformer(len(x), 0.5, WithTaperFraction(0))
	if err != nil {
		t.Fatal(err)
	}

	a, err := tr.Transform(x)
	if err != nil {
		t.Fatal(err)
	}
	b, err := plain.Transform(ZeroPad(tapered))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireBinsNearlyEqual(t, a, b, 1e-9)
}

func TestTransformMatchesReferenceFFT(t *testing.T) {
	const n = 1000
	x := testutil.DeterministicSine(0.013, 1, 1, n)

	got, err := Transform(x, 1)
	if err != nil {
		t.Fatal(err)
	}

	taper, err := window.Tukey(n, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	tapered := append([]float64(nil), x...)
	if err := window.Apply(tapered, taper); err != nil {
		t.Fatal(err)
	}
	ref := fft.FFTReal(ZeroPad(tapered))

	testutil.RequireBinsNearlyEqual(t, got, ref[1:len(ref)/2+1], 1e-8)
}

func TestTransformDropsDCBin(t *testing.T) {
	// Untapered constant series of power-of-two length carry energy only at DC.
	tr, err := NewTransformer(64, 1, WithTaperFraction(0))
	if err != nil {
		t.Fatal(err)
	}

	got, err := tr.Transform(testutil.Ones(64))
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range got {
		if cmplx.Abs(v) > 1e-9 {
			t.Fatalf("bin %d=%v, want 0", i, v)
		}
	}
}

func TestTransformDoesNotModifyInput(t *testing.T) {
	x := testutil.Ones(100)
	if _, err := Transform(x, 1); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, testutil.Ones(100), 0)
}

func TestTransformDeterministic(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 300)
	tr, err := NewTransformer(len(x), 2)
	if err != nil {
		t.Fatal(err)
	}

	a, err := tr.Transform(x)
	if err != nil {
		t.Fatal(err)
	}
	b, err := tr.Transform(x)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bin %d differs between calls: %v != %v", i, a[i], b[i])
		}
	}
}

func TestFrequencies(t *testing.T) {
	got, err := Frequencies(1000, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 512 {
		t.Fatalf("len=%d, want 512", len(got))
	}
	if math.Abs(got[0]-1.0/1024) > 1e-15 {
		t.Fatalf("first frequency=%v, want 1/1024", got[0])
	}
	if math.Abs(got[len(got)-1]-0.5) > 1e-15 {
		t.Fatalf("last frequency=%v, want Nyquist 0.5", got[len(got)-1])
	}
	for i, f := range got {
		if f <= 0 {
			t.Fatalf("frequency[%d]=%v must be positive", i, f)
		}
	}
}

func TestTransformValidation(t *testing.T) {
	if _, err := Transform(nil, 1); err == nil {
		t.Fatal("expected error for empty series")
	}
	if _, err := Transform([]float64{1}, 1); err == nil {
		t.Fatal("expected error for single sample")
	}
	if _, err := Transform([]float64{1, 2}, 0); err == nil {
		t.Fatal("expected error for zero sample interval")
	}
	for _, alpha := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := NewTransformer(8, 1, WithTaperFraction(alpha)); err == nil {
			t.Fatalf("expected error for taper fraction %v", alpha)
		}
	}
	if _, err := Frequencies(8, -1); err == nil {
		t.Fatal("expected error for negative sample interval")
	}

	tr, err := NewTransformer(8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Transform(make([]float64, 9)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
