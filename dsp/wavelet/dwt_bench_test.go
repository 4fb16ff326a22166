package wavelet

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-flowfeat/internal/testutil"
)

func BenchmarkWaveDec(b *testing.B) {
	w := mustLookup(b, "coif6")

	for _, n := range []int{300, 2000, 10000} {
		x := testutil.Floats(testutil.PacketSizes(1, n))
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = WaveDec(x, w, 4, ModeSymmetric)
			}
		})
	}
}
