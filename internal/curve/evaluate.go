package curve

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xtding233/payout-engine/internal/contract"
)

var (
	one                 = decimal.NewFromInt(1)
	extraPrecisionScale = decimal.NewFromInt(contract.ExtraPrecisionScale)
)

// ratio is an exact payout num/den over integers, with den > 0.
type ratio struct {
	num, den decimal.Decimal
}

func newRatio(num, den decimal.Decimal) ratio {
	if den.IsNegative() {
		return ratio{num: num.Neg(), den: den.Neg()}
	}
	return ratio{num: num, den: den}
}

// decimal divides once, at the package's display precision.
func (r ratio) decimal() decimal.Decimal {
	if r.den.Equal(one) {
		return r.num
	}
	return r.num.DivRound(r.den, int32(decimal.DivisionPrecision))
}

// scaledValue is the point's payout in units of 1/ExtraPrecisionScale.
func scaledValue(p contract.PayoutPoint) decimal.Decimal {
	return decimal.NewFromInt(p.Payout).Mul(extraPrecisionScale).Add(decimal.NewFromInt(int64(p.ExtraPrecision)))
}

// Evaluate returns the payout of c at outcome.
// Outcomes outside the curve continue along the first or last piece.
// A negative result is an EvaluationError.
func Evaluate(c contract.PayoutCurve, outcome int64) (decimal.Decimal, error) {
	r, err := evaluateExact(c, outcome)
	if err != nil {
		return decimal.Zero, err
	}
	return r.decimal(), nil
}

// EvaluatePoints evaluates a single piece given as raw points.
// The points are validated like any curve piece.
func EvaluatePoints(points []contract.PayoutPoint, outcome int64) (decimal.Decimal, error) {
	c, err := contract.NewPayoutCurve(points)
	if err != nil {
		return decimal.Zero, err
	}
	return Evaluate(c, outcome)
}

func evaluateExact(c contract.PayoutCurve, outcome int64) (ratio, error) {
	piece := c.PieceFor(outcome)
	if piece == nil {
		return ratio{}, &contract.ConstructionError{Field: "points", Reason: "payout curve is empty"}
	}
	r := evaluatePiece(piece, outcome)
	if r.num.IsNegative() {
		return ratio{}, &contract.EvaluationError{
			Outcome: outcome,
			Reason:  fmt.Sprintf("payout %s is negative", r.decimal().String()),
		}
	}
	return r, nil
}

func evaluatePiece(points []contract.PayoutPoint, outcome int64) ratio {
	if len(points) == 2 {
		return linear(points[0], points[1], outcome)
	}
	return lagrange(points, outcome)
}

// linear follows the line through left and right; equal payouts short-circuit.
func linear(left, right contract.PayoutPoint, outcome int64) ratio {
	lv, rv := scaledValue(left), scaledValue(right)
	if lv.Equal(rv) {
		return ratio{num: rv, den: extraPrecisionScale}
	}
	dx := decimal.NewFromInt(outcome - left.Outcome)
	span := decimal.NewFromInt(right.Outcome - left.Outcome)
	return newRatio(lv.Mul(span).Add(rv.Sub(lv).Mul(dx)), span.Mul(extraPrecisionScale))
}

// lagrange evaluates the interpolating polynomial through points.
// Terms are summed over a common denominator so the result stays exact.
func lagrange(points []contract.PayoutPoint, outcome int64) ratio {
	num, den := decimal.Zero, one
	for i, pi := range points {
		n := scaledValue(pi)
		d := one
		for j, pj := range points {
			if i == j {
				continue
			}
			n = n.Mul(decimal.NewFromInt(outcome - pj.Outcome))
			d = d.Mul(decimal.NewFromInt(pi.Outcome - pj.Outcome))
		}
		num = num.Mul(d).Add(n.Mul(den))
		den = den.Mul(d)
	}
	return newRatio(num, den.Mul(extraPrecisionScale))
}
