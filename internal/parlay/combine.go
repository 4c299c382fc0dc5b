package parlay

import (
	"fmt"
	"math"

	"github.com/xtding233/payout-engine/internal/contract"
)

// geometricFloor keeps a single zero score from collapsing the geometric mean.
const geometricFloor = 1e-5

// Combine folds per-parameter scores into one value. weights must line up
// with scores and be positive; only weightedAverage reads them.
func Combine(scores, weights []float64, method contract.CombinationMethod) (float64, error) {
	if !method.Valid() {
		return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("unknown combination method %q", method)}
	}
	if len(scores) != len(weights) {
		return 0, &contract.InvalidParameterError{
			Index:  -1,
			Reason: fmt.Sprintf("%d scores but %d weights", len(scores), len(weights)),
		}
	}
	for i, w := range weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return 0, &contract.InvalidParameterError{Index: i, Reason: fmt.Sprintf("weight must be positive, got %v", w)}
		}
	}
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, &contract.InvalidParameterError{Index: i, Reason: fmt.Sprintf("score must be finite, got %v", s)}
		}
	}
	if len(scores) == 0 {
		if method == contract.Multiply {
			return 1, nil
		}
		return 0, &contract.InvalidParameterError{Index: -1, Reason: fmt.Sprintf("%s needs at least one score", method)}
	}

	switch method {
	case contract.Multiply:
		p := 1.0
		for _, s := range scores {
			p *= s
		}
		return p, nil
	case contract.WeightedAverage:
		var num, den float64
		for i, s := range scores {
			num += s * weights[i]
			den += weights[i]
		}
		return num / den, nil
	case contract.GeometricMean:
		// exp of the mean log
		var logSum float64
		for _, s := range scores {
			logSum += math.Log(math.Max(s, geometricFloor))
		}
		return math.Exp(logSum / float64(len(scores))), nil
	case contract.Min:
		m := scores[0]
		for _, s := range scores[1:] {
			m = math.Min(m, s)
		}
		return m, nil
	default: // contract.Max
		m := scores[0]
		for _, s := range scores[1:] {
			m = math.Max(m, s)
		}
		return m, nil
	}
}
