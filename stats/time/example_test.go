package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-flowfeat/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f median=%.1f range=%.1f\n", s.RMS, s.Median, s.Range)

	// Output:
	// rms=1.0 median=0.0 range=2.0
}

func ExampleMedian() {
	fmt.Println(timestats.Median([]float64{7, 1, 3, 5}))

	// Output:
	// 4
}
