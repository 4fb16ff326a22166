// Package features turns flow sequences (packet sizes, byte counts) into
// fixed-length feature vectors.
//
// Two extractors are provided. SpectrogramExtractor summarises the
// short-time Fourier magnitude of a sequence; WaveletExtractor summarises
// each level of a discrete wavelet decomposition. Both take a Spec, an
// ordered list of statistics, and concatenate the per-statistic segments in
// that order. An empty Spec selects the extractor's default vocabulary.
//
// Statistics are a closed enumeration. Names are only resolved at the
// boundary by ParseSpec, which drops names it does not know.
package features
