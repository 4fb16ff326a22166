// Command flowfeat extracts spectral and wavelet feature vectors from flow
// sequences such as per-packet sizes.
//
// Usage:
//
//	flowfeat [--config file] <command> [flags]
//
// Examples:
//
//	echo "60 1500 1500 52 60" | flowfeat extract --method dwt --wavelet haar --level 2
//	flowfeat extract --features mean,std < sequences.txt
//	flowfeat apply --columns sizes flows.csv > flows_features.csv
//	flowfeat wavelets --length 300
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
