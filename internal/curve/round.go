package curve

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xtding233/payout-engine/internal/contract"
)

// RoundedPayout evaluates c at outcome and snaps the result to the rounding
// modulus in effect there (ties round up), clamped to [0, totalCollateral].
// A value that already exceeds the collateral before snapping is an error,
// not something to clamp.
func RoundedPayout(c contract.PayoutCurve, outcome int64, ri contract.RoundingIntervals, totalCollateral int64) (int64, error) {
	if totalCollateral <= 0 {
		return 0, &contract.ConstructionError{
			Field:  "totalCollateral",
			Reason: fmt.Sprintf("must be > 0, got %d", totalCollateral),
		}
	}
	return roundedPayout(c, outcome, ri, decimal.NewFromInt(totalCollateral))
}

func roundedPayout(c contract.PayoutCurve, outcome int64, ri contract.RoundingIntervals, total decimal.Decimal) (int64, error) {
	r, err := evaluateExact(c, outcome)
	if err != nil {
		return 0, err
	}
	if roundRatio(r, 1).GreaterThan(total) {
		return 0, &contract.EvaluationError{
			Outcome: outcome,
			Reason:  fmt.Sprintf("payout %s exceeds total collateral %s", r.decimal().String(), total.String()),
		}
	}
	rounded := roundRatio(r, ri.ModulusAt(outcome))
	switch {
	case rounded.IsNegative():
		rounded = decimal.Zero
	case rounded.GreaterThan(total):
		rounded = total
	}
	return rounded.IntPart(), nil
}

// RoundToModulus rounds a non-negative v to the nearest multiple of mod,
// ties up. mod must be positive.
func RoundToModulus(v decimal.Decimal, mod int64) decimal.Decimal {
	return roundRatio(ratio{num: v, den: one}, mod)
}

// roundRatio decides the tie from the exact remainder of num / (den*mod).
func roundRatio(r ratio, mod int64) decimal.Decimal {
	m := decimal.NewFromInt(mod)
	step := r.den.Mul(m)
	q, rem := r.num.QuoRem(step, 0)
	if rem.Add(rem).GreaterThanOrEqual(step) {
		q = q.Add(one)
	}
	return q.Mul(m)
}
