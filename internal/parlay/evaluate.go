package parlay

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/curve"
)

// Result is one parlay evaluation.
type Result struct {
	Score        float64 `json:"score"`        // combined score before clamping
	Fraction     float64 `json:"fraction"`     // Score clamped to [0,1]
	Payout       float64 `json:"payout"`       // Fraction * total collateral, unrounded
	PayoutAmount int64   `json:"payoutAmount"` // settlement amount in sats
}

// Evaluate scores one observed value per parameter of d and splits
// totalCollateral accordingly.
func Evaluate(d contract.ParlayDescriptor, values []float64, totalCollateral int64) (Result, error) {
	if totalCollateral <= 0 {
		return Result{}, &contract.InvalidParameterError{
			Index:  -1,
			Reason: fmt.Sprintf("total collateral must be > 0, got %d", totalCollateral),
		}
	}
	score, err := Score(d, values)
	if err != nil {
		return Result{}, err
	}
	fraction := clamp01(score)
	return Result{
		Score:        score,
		Fraction:     fraction,
		Payout:       fraction * float64(totalCollateral),
		PayoutAmount: settle(d, fraction, totalCollateral),
	}, nil
}

// Score returns the combined, unclamped score of values under d.
func Score(d contract.ParlayDescriptor, values []float64) (float64, error) {
	n := d.NumParameters()
	if len(values) != n {
		return 0, &contract.InvalidParameterError{
			Index:  -1,
			Reason: fmt.Sprintf("expected %d observed values, got %d", n, len(values)),
		}
	}
	scores := make([]float64, n)
	for i, v := range values {
		s, err := scoreParameter(d.Parameter(i), v)
		if err != nil {
			return 0, withIndex(err, i)
		}
		scores[i] = s
	}
	return Combine(scores, d.Weights(), d.Method())
}

func scoreParameter(p contract.ParlayParameter, v float64) (float64, error) {
	x, err := Normalize(p, v)
	if err != nil {
		return 0, err
	}
	return Transform(x, p.Transformation)
}

// withIndex attaches the parameter position to a general InvalidParameterError.
func withIndex(err error, i int) error {
	var ipe *contract.InvalidParameterError
	if errors.As(err, &ipe) && ipe.Index < 0 {
		return &contract.InvalidParameterError{Index: i, Reason: ipe.Reason}
	}
	return err
}

// OracleOutcome is the integer outcome an oracle attests for fraction.
func OracleOutcome(fraction float64, maxNormalized int64) int64 {
	return int64(math.Round(clamp01(fraction) * float64(maxNormalized)))
}

// settle rounds fraction*total to whole sats, or to the descriptor's rounding
// modulus at the matching oracle outcome when it declares intervals.
func settle(d contract.ParlayDescriptor, fraction float64, totalCollateral int64) int64 {
	total := decimal.NewFromInt(totalCollateral)
	amount := decimal.NewFromFloat(fraction).Mul(total)
	mod := int64(1)
	if d.Rounding().Len() > 0 {
		mod = d.Rounding().ModulusAt(OracleOutcome(fraction, d.MaxNormalizedValue()))
	}
	rounded := curve.RoundToModulus(amount, mod)
	switch {
	case rounded.IsNegative():
		return 0
	case rounded.GreaterThan(total):
		return totalCollateral
	}
	return rounded.IntPart()
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
