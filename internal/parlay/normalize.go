package parlay

import (
	"fmt"
	"math"

	"github.com/xtding233/payout-engine/internal/contract"
)

// Normalize maps an observed value onto [0,1] relative to p's threshold.
// Values on the wrong side of the threshold score 0; values a full range or
// more past it saturate at 1.
func Normalize(p contract.ParlayParameter, observed float64) (float64, error) {
	if err := validateObserved(observed); err != nil {
		return 0, err
	}
	if !(p.Range > 0) || math.IsInf(p.Range, 0) {
		return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("range must be positive, got %v", p.Range)}
	}

	var dist float64
	switch p.Direction {
	case contract.Above:
		dist = observed - p.Threshold
	case contract.Below:
		dist = p.Threshold - observed
	default:
		return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("unknown direction %q", p.Direction)}
	}
	if dist <= 0 {
		return 0, nil
	}
	return math.Min(dist/p.Range, 1), nil
}

func validateObserved(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("observed value must be finite, got %v", v)}
	}
	return nil
}
