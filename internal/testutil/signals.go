// Package testutil holds deterministic signal generators and assertion
// helpers shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// PacketSizes returns a reproducible packet-size sequence in the Ethernet
// range [40, 1500]: mostly small ACK-like packets with bursts of full frames.
func PacketSizes(seed int64, length int) []int {
	out := make([]int, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		switch r := rng.Float64(); {
		case r < 0.45:
			out[i] = 40 + rng.Intn(26)
		case r < 0.8:
			out[i] = 1500
		default:
			out[i] = 40 + rng.Intn(1461)
		}
	}
	return out
}

// Floats converts an integer sequence to float64.
func Floats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
