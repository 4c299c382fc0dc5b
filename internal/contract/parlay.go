package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// DefaultMaxNormalizedValue is the oracle outcome that represents a combined
// score of 1 when a parlay contract does not set one.
const DefaultMaxNormalizedValue = 10_000

// ParlayDescriptor is a validated multi-parameter payout description.
type ParlayDescriptor struct {
	parameters         []ParlayParameter
	method             CombinationMethod
	rounding           RoundingIntervals
	maxNormalizedValue int64
}

// ParlaySpec is the unvalidated wire form of a ParlayDescriptor.
type ParlaySpec struct {
	Parameters         []ParlayParameter `json:"parameters" yaml:"parameters"`
	CombinationMethod  CombinationMethod `json:"combinationMethod" yaml:"combination_method"`
	RoundingIntervals  []RoundingInterval `json:"roundingIntervals,omitempty" yaml:"rounding_intervals,omitempty"`
	MaxNormalizedValue int64             `json:"maxNormalizedValue,omitempty" yaml:"max_normalized_value,omitempty"`
}

// NewParlayDescriptor validates s. A zero MaxNormalizedValue selects
// DefaultMaxNormalizedValue.
func NewParlayDescriptor(s ParlaySpec) (ParlayDescriptor, error) {
	var errs []error
	if len(s.Parameters) == 0 {
		errs = append(errs, constructionf("parameters", "at least one parameter is required"))
	}
	for i, p := range s.Parameters {
		errs = append(errs, validateParameter(fmt.Sprintf("parameters[%d]", i), p)...)
	}
	if !s.CombinationMethod.Valid() {
		errs = append(errs, constructionf("combinationMethod", "unknown method %q", s.CombinationMethod))
	}
	maxNorm := s.MaxNormalizedValue
	if maxNorm == 0 {
		maxNorm = DefaultMaxNormalizedValue
	}
	if maxNorm < 0 || maxNorm >= MaxDomain {
		errs = append(errs, constructionf("maxNormalizedValue", "must be in [1, %d), got %d", MaxDomain, maxNorm))
	}
	rounding, err := NewRoundingIntervals(s.RoundingIntervals...)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return ParlayDescriptor{}, err
	}
	return ParlayDescriptor{
		parameters:         append([]ParlayParameter(nil), s.Parameters...),
		method:             s.CombinationMethod,
		rounding:           rounding,
		maxNormalizedValue: maxNorm,
	}, nil
}

func validateParameter(field string, p ParlayParameter) []error {
	var errs []error
	if !p.DataType.Valid() {
		errs = append(errs, constructionf(field+".dataType", "unknown data type %q", p.DataType))
	}
	if !isFinite(p.Threshold) {
		errs = append(errs, constructionf(field+".threshold", "must be finite"))
	}
	if !(p.Range > 0) || math.IsInf(p.Range, 0) {
		errs = append(errs, constructionf(field+".range", "must be a positive finite number, got %v", p.Range))
	}
	if !p.Direction.Valid() {
		errs = append(errs, constructionf(field+".direction", "must be %q or %q, got %q", Above, Below, p.Direction))
	}
	if !p.Transformation.Valid() {
		errs = append(errs, constructionf(field+".transformation", "unknown transformation %q", p.Transformation))
	}
	if !(p.Weight > 0) || math.IsInf(p.Weight, 0) {
		errs = append(errs, constructionf(field+".weight", "must be a positive finite number, got %v", p.Weight))
	}
	return errs
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (d ParlayDescriptor) Parameters() []ParlayParameter {
	return append([]ParlayParameter(nil), d.parameters...)
}

func (d ParlayDescriptor) NumParameters() int { return len(d.parameters) }

func (d ParlayDescriptor) Parameter(i int) ParlayParameter { return d.parameters[i] }

func (d ParlayDescriptor) Method() CombinationMethod { return d.method }

func (d ParlayDescriptor) Rounding() RoundingIntervals { return d.rounding }

func (d ParlayDescriptor) MaxNormalizedValue() int64 { return d.maxNormalizedValue }

// Weights returns the parameter weights in declaration order.
func (d ParlayDescriptor) Weights() []float64 {
	w := make([]float64, len(d.parameters))
	for i, p := range d.parameters {
		w[i] = p.Weight
	}
	return w
}

// Spec returns the wire form of d.
func (d ParlayDescriptor) Spec() ParlaySpec {
	return ParlaySpec{
		Parameters:         d.Parameters(),
		CombinationMethod:  d.method,
		RoundingIntervals:  d.rounding.Intervals(),
		MaxNormalizedValue: d.maxNormalizedValue,
	}
}

func (d ParlayDescriptor) MarshalJSON() ([]byte, error) { return json.Marshal(d.Spec()) }

func (d *ParlayDescriptor) UnmarshalJSON(b []byte) error {
	var s ParlaySpec
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	built, err := NewParlayDescriptor(s)
	if err != nil {
		return err
	}
	*d = built
	return nil
}

// OracleParameters returns the number of base-2 digits an oracle needs to
// attest maxNormalized, and the largest value those digits can carry.
func OracleParameters(maxNormalized int64) (nbDigits int, maxOracleValue int64) {
	if maxNormalized <= 0 {
		return 1, 1
	}
	nbDigits = bits.Len64(uint64(maxNormalized))
	return nbDigits, int64(1)<<nbDigits - 1
}

// ParlayPayoutCurve builds the curve a parlay contract settles on: payout
// grows linearly from 0 at outcome 0 to totalCollateral at maxNormalized, then
// stays flat up to the oracle's largest value. Rounding is to whole sats.
func ParlayPayoutCurve(totalCollateral, maxNormalized int64) (PayoutCurve, RoundingIntervals, error) {
	if totalCollateral <= 0 {
		return PayoutCurve{}, RoundingIntervals{}, constructionf("totalCollateral", "must be > 0, got %d", totalCollateral)
	}
	_, maxOracle := OracleParameters(maxNormalized)
	pieces := [][]PayoutPoint{{
		{Outcome: 0, Payout: 0},
		{Outcome: maxNormalized, Payout: totalCollateral},
	}}
	if maxOracle > maxNormalized {
		pieces = append(pieces, []PayoutPoint{
			{Outcome: maxNormalized, Payout: totalCollateral},
			{Outcome: maxOracle, Payout: totalCollateral},
		})
	}
	c, err := NewPayoutCurve(pieces...)
	if err != nil {
		return PayoutCurve{}, RoundingIntervals{}, err
	}
	ri, err := NewRoundingIntervals(RoundingInterval{BeginOutcome: 0, RoundingModulus: 1})
	if err != nil {
		return PayoutCurve{}, RoundingIntervals{}, err
	}
	return c, ri, nil
}
