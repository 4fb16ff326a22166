package time

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-flowfeat/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{64, 1024, 16384} {
		x := testutil.DeterministicNoise(1, 1, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Calculate(x)
			}
		})
	}
}
