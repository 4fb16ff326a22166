package stft

import "gonum.org/v1/gonum/mat"

// Spectrogram is a magnitude time-frequency representation laid out as
// bins × frames.
type Spectrogram struct {
	Magnitude   *mat.Dense
	Frequencies []float64
	SampleRate  float64
	NFFT        int
}

// Bins returns the number of frequency rows.
func (s *Spectrogram) Bins() int {
	r, _ := s.Magnitude.Dims()
	return r
}

// Frames returns the number of time columns.
func (s *Spectrogram) Frames() int {
	_, c := s.Magnitude.Dims()
	return c
}

// Frame returns a copy of the magnitudes of frame j.
func (s *Spectrogram) Frame(j int) []float64 {
	return mat.Col(nil, j, s.Magnitude)
}

// Bin returns a copy of the magnitudes of bin k across frames.
func (s *Spectrogram) Bin(k int) []float64 {
	return mat.Row(nil, k, s.Magnitude)
}

// Power returns the element-wise squared magnitude as a new matrix.
func (s *Spectrogram) Power() *mat.Dense {
	var p mat.Dense
	p.MulElem(s.Magnitude, s.Magnitude)
	return &p
}
