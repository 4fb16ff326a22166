package wavelet_test

import (
	"fmt"

	"github.com/cwbudde/algo-flowfeat/dsp/wavelet"
)

func ExampleWaveDec() {
	w, err := wavelet.Lookup("haar")
	if err != nil {
		fmt.Println(err)
		return
	}

	coeffs, err := wavelet.WaveDec([]float64{4, 4, 4, 4, 8, 8, 8, 8}, w, 2, wavelet.ModeSymmetric)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, c := range coeffs {
		fmt.Printf("%.2f\n", c)
	}
	// Output:
	// [8.00 16.00]
	// [0.00 0.00]
	// [0.00 0.00 0.00 0.00]
}

func ExampleMaxLevel() {
	w, _ := wavelet.Lookup("coif6")
	fmt.Println(w.Len(), wavelet.MaxLevel(1000, w.Len()))
	// Output:
	// 36 4
}
