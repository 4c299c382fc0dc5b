// types.go
package contract

const (
	// ExtraPrecisionScale is the denominator of PayoutPoint.ExtraPrecision.
	ExtraPrecisionScale = 1 << 16
	// MaxDomain bounds outcome scans: outcomes live in [0, MaxDomain),
	// matching a 20-digit base-2 oracle.
	MaxDomain = 1 << 20
)

// PayoutPoint is one knot of a payout piece.
// ExtraPrecision adds ExtraPrecision/65536 to Payout, keeping Payout integral.
type PayoutPoint struct {
	Outcome        int64  `json:"outcome" yaml:"outcome"`
	Payout         int64  `json:"payout" yaml:"payout"`
	ExtraPrecision uint16 `json:"extraPrecision" yaml:"extra_precision,omitempty"`
}

// RoundingInterval snaps payouts to multiples of RoundingModulus from BeginOutcome on.
type RoundingInterval struct {
	BeginOutcome    int64 `json:"beginOutcome" yaml:"begin_outcome"`
	RoundingModulus int64 `json:"roundingModulus" yaml:"rounding_modulus"`
}

// RangePayout covers Count consecutive outcomes starting at Start that share
// the same split. OfferAmount + AcceptAmount always equals total collateral.
type RangePayout struct {
	Start        int64 `json:"start"`
	Count        int64 `json:"count"`
	OfferAmount  int64 `json:"offerAmount"`
	AcceptAmount int64 `json:"acceptAmount"`
}

// End returns the last outcome covered by the range.
func (r RangePayout) End() int64 { return r.Start + r.Count - 1 }

// Direction selects which side of the threshold scores.
type Direction string

const (
	Above Direction = "above"
	Below Direction = "below"
)

func (d Direction) Valid() bool {
	switch d {
	case Above, Below:
		return true
	}
	return false
}

// Transformation is the per-parameter curve applied after normalization.
type Transformation string

const (
	Linear      Transformation = "linear"
	Quadratic   Transformation = "quadratic"
	Sqrt        Transformation = "sqrt"
	Exponential Transformation = "exponential"
	Logarithmic Transformation = "logarithmic"
)

func (t Transformation) Valid() bool {
	switch t {
	case Linear, Quadratic, Sqrt, Exponential, Logarithmic:
		return true
	}
	return false
}

// CombinationMethod folds per-parameter scores into one fraction.
type CombinationMethod string

const (
	Multiply        CombinationMethod = "multiply"
	WeightedAverage CombinationMethod = "weightedAverage"
	GeometricMean   CombinationMethod = "geometricMean"
	Min             CombinationMethod = "min"
	Max             CombinationMethod = "max"
)

func (m CombinationMethod) Valid() bool {
	switch m {
	case Multiply, WeightedAverage, GeometricMean, Min, Max:
		return true
	}
	return false
}

// DataType names the observable a parlay parameter tracks.
type DataType string

const (
	Price      DataType = "price"
	Hashrate   DataType = "hashrate"
	Difficulty DataType = "difficulty"
)

func (d DataType) Valid() bool {
	switch d {
	case Price, Hashrate, Difficulty:
		return true
	}
	return false
}

// ParlayParameter is one observable condition contributing to a combined score.
type ParlayParameter struct {
	DataType       DataType       `json:"dataType" yaml:"data_type"`
	Threshold      float64        `json:"threshold" yaml:"threshold"`
	Range          float64        `json:"range" yaml:"range"`
	Direction      Direction      `json:"direction" yaml:"direction"`
	Transformation Transformation `json:"transformation" yaml:"transformation"`
	Weight         float64        `json:"weight" yaml:"weight"`
}
