package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-flowfeat/dsp/stft"
)

func ExampleTransform() {
	signal := make([]float64, 300)
	for i := range signal {
		signal[i] = 2
	}

	spec, err := stft.Transform(signal)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(spec.Bins(), spec.Frames())
	fmt.Printf("%.2f\n", spec.Frame(1)[0])
	// Output:
	// 129 4
	// 2.00
}
