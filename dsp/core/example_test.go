package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
)

func ExampleZeroPad() {
	fmt.Println(core.ZeroPad([]float64{1, 2, 3}, 2, 1))
	// Output:
	// [0 0 1 2 3 0]
}

func ExampleFloorMod() {
	fmt.Println(core.FloorMod(-1, 12), core.FloorModInt(-3, 8))
	// Output:
	// 11 5
}
