package wavelet

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-flowfeat/internal/polyroot"
)

// daubechies returns the analysis low-pass filter of dbN (length 2N).
//
// The filter is H(z) = sqrt(2) * ((1+z^-1)/2)^N * Q(z^-1), where Q is the
// minimum-phase spectral factor of P(y) = sum_k C(N-1+k, k) y^k with
// y = (1-cos w)/2. Each root y of P maps to the pair z, 1/z solving
// z^2 - (2-4y)z + 1 = 0; the root inside the unit circle is kept.
func daubechies(order int) ([]float64, error) {
	q := []complex128{1}

	if order > 1 {
		// P in descending powers for the root finder.
		p := make([]complex128, order)
		for k := range order {
			p[order-1-k] = complex(binomial(order-1+k, k), 0)
		}

		roots, err := polyroot.DurandKerner(p)
		if err != nil {
			return nil, err
		}

		for _, y := range roots {
			b := 2 - 4*y
			disc := cmplx.Sqrt(b*b - 4)
			z := (b + disc) / 2
			if z2 := (b - disc) / 2; cmplx.Abs(z2) < cmplx.Abs(z) {
				z = z2
			}
			q = polyroot.Multiply(q, []complex128{1, -z})
		}

		var sum complex128
		for _, c := range q {
			sum += c
		}
		for i := range q {
			q[i] /= sum
		}
	}

	h := []complex128{1}
	for range order {
		h = polyroot.Multiply(h, []complex128{0.5, 0.5})
	}
	h = polyroot.Multiply(h, q)

	rec, err := polyroot.RealParts(h)
	if err != nil {
		return nil, err
	}

	for i := range rec {
		rec[i] *= math.Sqrt2
	}

	// rec is the reconstruction low-pass; analysis runs it time-reversed.
	slices.Reverse(rec)

	return rec, nil
}

func binomial(n, k int) float64 {
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}
