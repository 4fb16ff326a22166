package wavelet

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
)

// Mode selects how the signal is extended beyond its edges.
type Mode int

const (
	// ModeSymmetric mirrors with edge repetition: ... x1 x0 | x0 x1 ...
	ModeSymmetric Mode = iota
	// ModeReflect mirrors without repetition: ... x2 x1 | x0 x1 x2 ...
	ModeReflect
	// ModeZero pads with zeros.
	ModeZero
	// ModePeriodic wraps around.
	ModePeriodic
)

func (m Mode) String() string {
	switch m {
	case ModeSymmetric:
		return "symmetric"
	case ModeReflect:
		return "reflect"
	case ModeZero:
		return "zero"
	case ModePeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// minInput returns the shortest stage input mode supports for a filter of
// length f. Mirroring modes extend by at most one reflection.
func (m Mode) minInput(f int) int {
	switch m {
	case ModeSymmetric, ModeReflect:
		return max(f-1, 1)
	default:
		return 1
	}
}

// sample returns x at index i under the extension mode.
func (m Mode) sample(x []float64, i int) float64 {
	n := len(x)
	if i >= 0 && i < n {
		return x[i]
	}

	switch m {
	case ModeSymmetric:
		j := core.FloorModInt(i, 2*n)
		if j >= n {
			j = 2*n - 1 - j
		}
		return x[j]
	case ModeReflect:
		if n == 1 {
			return x[0]
		}
		j := core.FloorModInt(i, 2*n-2)
		if j >= n {
			j = 2*n - 2 - j
		}
		return x[j]
	case ModePeriodic:
		return x[core.FloorModInt(i, n)]
	default:
		return 0
	}
}

// OutputLength returns the coefficient count of one stage for an input of
// n samples and a filter of length f.
func OutputLength(n, f int) int {
	return (n + f - 1) / 2
}

// MaxLevel returns the deepest useful decomposition level for a signal of
// n samples and a filter of length f: floor(log2(n/(f-1))).
func MaxLevel(n, f int) int {
	if f <= 1 || n < f-1 {
		return 0
	}
	return int(math.Floor(math.Log2(float64(n) / float64(f-1))))
}

// DWT performs one analysis stage and returns the approximation and detail
// coefficients, each of length OutputLength(len(x), w.Len()).
func DWT(x []float64, w *Wavelet, mode Mode) (approx, detail []float64, err error) {
	if need := mode.minInput(w.Len()); len(x) < need {
		return nil, nil, &LengthError{Wavelet: w.Name, Level: 1, Length: len(x), Min: need}
	}

	approx = downsampleConvolve(x, w.DecLo, mode)
	detail = downsampleConvolve(x, w.DecHi, mode)

	return approx, detail, nil
}

// downsampleConvolve computes out[k] = sum_j f[j] * x[2k+1-j] over the
// extended signal.
func downsampleConvolve(x, f []float64, mode Mode) []float64 {
	out := make([]float64, OutputLength(len(x), len(f)))
	n := len(x)

	for k := range out {
		pos := 2*k + 1
		sum := 0.0

		// Interior taps read x directly; only the edges pay for extension.
		if pos-len(f)+1 >= 0 && pos < n {
			for j, c := range f {
				sum += c * x[pos-j]
			}
		} else {
			for j, c := range f {
				sum += c * mode.sample(x, pos-j)
			}
		}

		out[k] = sum
	}

	return out
}

// WaveDec decomposes x to the given level and returns
// [cA_level, cD_level, ..., cD_1]. Level 0 returns a copy of x. The input is
// not modified.
func WaveDec(x []float64, w *Wavelet, level int, mode Mode) ([][]float64, error) {
	if level < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	out := make([][]float64, level+1)
	a := x

	for l := 1; l <= level; l++ {
		if need := mode.minInput(w.Len()); len(a) < need {
			return nil, &LengthError{Wavelet: w.Name, Level: l, Length: len(a), Min: need}
		}

		approx, detail, err := DWT(a, w, mode)
		if err != nil {
			return nil, err
		}

		out[level-l+1] = detail
		a = approx
	}

	out[0] = append([]float64(nil), a...)

	return out, nil
}

// IDWT performs one synthesis stage. The result has 2*len(approx)-F+2
// samples; for odd-length originals the final sample is surplus.
func IDWT(approx, detail []float64, w *Wavelet) ([]float64, error) {
	if len(approx) != len(detail) {
		return nil, fmt.Errorf("wavelet %s: coefficient length mismatch: %d != %d", w.Name, len(approx), len(detail))
	}

	f := w.Len()
	n := len(approx)
	outLen := 2*n - f + 2
	if outLen <= 0 {
		return nil, &LengthError{Wavelet: w.Name, Level: 1, Length: n, Min: f / 2}
	}

	full := make([]float64, 2*n+f-1)
	for k := range n {
		a, d := approx[k], detail[k]
		for j := range f {
			full[2*k+j] += a*w.RecLo[j] + d*w.RecHi[j]
		}
	}

	return full[f-2 : f-2+outLen], nil
}

// WaveRec reconstructs a signal from WaveDec output.
func WaveRec(coeffs [][]float64, w *Wavelet) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("wavelet %s: no coefficients", w.Name)
	}

	a := coeffs[0]
	for _, d := range coeffs[1:] {
		if len(a) == len(d)+1 {
			a = a[:len(a)-1]
		}

		var err error
		if a, err = IDWT(a, d, w); err != nil {
			return nil, err
		}
	}

	return append([]float64(nil), a...), nil
}
