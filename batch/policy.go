package batch

import (
	"fmt"
	"strings"
)

// Policy decides what happens to a row whose extraction fails.
type Policy int

const (
	// FailBatch aborts on the first failing row. No feature columns are
	// added for the input column being processed.
	FailBatch Policy = iota
	// SkipRow stores an empty cell for failing rows and reports the errors
	// in a *RowErrors.
	SkipRow
	// FillSentinel stores a vector of the expected length filled with the
	// sentinel value and reports the errors in a *RowErrors.
	FillSentinel
)

func (p Policy) String() string {
	switch p {
	case FailBatch:
		return "fail"
	case SkipRow:
		return "skip"
	case FillSentinel:
		return "fill"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy resolves "fail", "skip" or "fill".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fail", "":
		return FailBatch, nil
	case "skip":
		return SkipRow, nil
	case "fill", "sentinel":
		return FillSentinel, nil
	default:
		return 0, fmt.Errorf("batch: unknown policy %q", name)
	}
}
