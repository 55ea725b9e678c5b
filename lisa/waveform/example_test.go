package waveform_test

import (
	"fmt"

	"github.com/cwbudde/algo-lisa/lisa/waveform"
)

func ExampleExperiment_Chirp() {
	e := waveform.Experiment{Amplitude: 1, Frequency: 0.25}
	grid, err := waveform.TimeGrid(4, 1)
	if err != nil {
		panic(err)
	}

	h := e.Chirp(0, grid, 0)
	fmt.Printf("%.0f %.0f %.0f %.0f\n", h[0], h[1], h[2], h[3])
	// Output:
	// 0 1 0 -1
}
