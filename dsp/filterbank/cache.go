package filterbank

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/mat"
)

// CacheSize bounds the number of distinct filter banks kept in memory.
const CacheSize = 64

type bankKind int

const (
	kindMel bankKind = iota
	kindChroma
)

type cacheKey struct {
	kind       bankKind
	sampleRate float64
	nfft       int
	n          int
	fmin       float64
	fmax       float64
	tuning     float64
	htk        bool
}

var bankCache = mustCache()

func mustCache() *lru.Cache[cacheKey, *mat.Dense] {
	c, err := lru.New[cacheKey, *mat.Dense](CacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// cached returns the bank for key, building it on a miss. Concurrent misses
// may build the same bank twice; the results are identical.
func cached(key cacheKey, build func() (*mat.Dense, error)) (*mat.Dense, error) {
	if w, ok := bankCache.Get(key); ok {
		return w, nil
	}

	w, err := build()
	if err != nil {
		return nil, err
	}

	bankCache.Add(key, w)

	return w, nil
}

// Purge drops all cached filter banks.
func Purge() {
	bankCache.Purge()
}
