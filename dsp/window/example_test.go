package window

import "fmt"

func ExampleTukey() {
	w, err := Tukey(6, 0.4)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3], w[4], w[5])
	// Output:
	// 0.00 1.00 1.00 1.00 1.00 0.00
}

func ExampleApply() {
	samples := []float64{3, 3, 3, 3}
	w, _ := Tukey(len(samples), 1)
	_ = Apply(samples, w)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", samples[0], samples[1], samples[2], samples[3])
	// Output:
	// 0.00 2.25 2.25 0.00
}
