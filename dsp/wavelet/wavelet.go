// Package wavelet implements discrete wavelet decomposition with orthogonal
// Daubechies and Coiflet bases, following the PyWavelets conventions for
// filter orientation, signal extension and output lengths.
package wavelet

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Wavelet is an orthogonal filter bank. DecLo is the analysis low-pass
// filter; the other three filters are derived from it.
type Wavelet struct {
	Name   string
	Family string
	DecLo  []float64
	DecHi  []float64
	RecLo  []float64
	RecHi  []float64
}

// Len returns the filter length.
func (w *Wavelet) Len() int {
	return len(w.DecLo)
}

// newOrthogonal derives the quadrature mirror filters from decLo:
// decHi[k] = (-1)^(k+1) * decLo[F-1-k], reconstruction filters are the
// time-reversed analysis filters.
func newOrthogonal(name, family string, decLo []float64) *Wavelet {
	n := len(decLo)
	decHi := make([]float64, n)
	for k := range n {
		v := decLo[n-1-k]
		if k%2 == 0 {
			v = -v
		}
		decHi[k] = v
	}

	recLo := slices.Clone(decLo)
	slices.Reverse(recLo)
	recHi := slices.Clone(decHi)
	slices.Reverse(recHi)

	return &Wavelet{
		Name:   name,
		Family: family,
		DecLo:  slices.Clone(decLo),
		DecHi:  decHi,
		RecLo:  recLo,
		RecHi:  recHi,
	}
}

const (
	maxDaubechies = 10
	maxCoiflet    = 6
)

var (
	registryMu sync.Mutex
	registry   = map[string]*Wavelet{}
)

// Lookup returns the wavelet for a PyWavelets-style name: "haar", "db1".."db10",
// "coif1".."coif6". The returned filters are shared and must not be modified.
func Lookup(name string) (*Wavelet, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	registryMu.Lock()
	defer registryMu.Unlock()

	if w, ok := registry[key]; ok {
		return w, nil
	}

	w, err := build(key)
	if err != nil {
		return nil, err
	}

	registry[key] = w

	return w, nil
}

func build(key string) (*Wavelet, error) {
	switch {
	case key == "haar":
		w, err := daubechies(1)
		if err != nil {
			return nil, err
		}
		return newOrthogonal("haar", "haar", w), nil

	case strings.HasPrefix(key, "db"):
		order, ok := parseOrder(key[2:], maxDaubechies)
		if !ok {
			break
		}
		h, err := daubechies(order)
		if err != nil {
			return nil, fmt.Errorf("wavelet %s: %w", key, err)
		}
		return newOrthogonal(key, "db", h), nil

	case strings.HasPrefix(key, "coif"):
		order, ok := parseOrder(key[4:], maxCoiflet)
		if !ok {
			break
		}
		return newOrthogonal(key, "coif", coifletDecLo[order-1]), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownWavelet, key)
}

func parseOrder(s string, limit int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > limit {
		return 0, false
	}
	return n, true
}

// Names lists the supported wavelet names.
func Names() []string {
	names := []string{"haar"}
	for i := 1; i <= maxDaubechies; i++ {
		names = append(names, "db"+strconv.Itoa(i))
	}
	for i := 1; i <= maxCoiflet; i++ {
		names = append(names, "coif"+strconv.Itoa(i))
	}
	return names
}
