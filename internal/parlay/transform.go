package parlay

import (
	"fmt"
	"math"

	"github.com/xtding233/payout-engine/internal/contract"
)

// Transform reshapes a normalized score. Exponential is unbounded above 1.
func Transform(x float64, kind contract.Transformation) (float64, error) {
	switch kind {
	case contract.Linear:
		return x, nil
	case contract.Quadratic:
		return x * x, nil
	case contract.Sqrt:
		if x < 0 {
			return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("sqrt of negative score %v", x)}
		}
		return math.Sqrt(x), nil
	case contract.Exponential:
		// e^x - 1
		return math.Expm1(x), nil
	case contract.Logarithmic:
		if x <= -1 {
			return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("log of score %v", x)}
		}
		// ln(x+1)
		return math.Log1p(x), nil
	default:
		return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("unknown transformation %q", kind)}
	}
}
