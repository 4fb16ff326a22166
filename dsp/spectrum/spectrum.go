package spectrum

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func unpack(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto writes |X[k]| into dst. dst must be at least len(in) long.
func MagnitudeInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}

	re, im, buf := unpack(in)
	vecmath.Magnitude(dst[:len(in)], re, im)
	putScratch(buf)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := unpack(in)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromMagnitude returns mag[k]^2 as a new slice.
func PowerFromMagnitude(mag []float64) []float64 {
	if len(mag) == 0 {
		return nil
	}

	out := make([]float64, len(mag))
	vecmath.MulBlock(out, mag, mag)
	return out
}

// BinCount returns the number of one-sided bins of a real FFT of size nfft.
func BinCount(nfft int) int {
	return nfft/2 + 1
}

// FFTFrequencies returns the centre frequency of each one-sided bin of a
// real FFT of size nfft at sampleRate: k*sampleRate/nfft for k = 0..nfft/2.
func FFTFrequencies(sampleRate float64, nfft int) ([]float64, error) {
	if nfft <= 0 {
		return nil, fmt.Errorf("fft size must be > 0: %d", nfft)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}

	out := make([]float64, BinCount(nfft))
	step := sampleRate / float64(nfft)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out, nil
}
