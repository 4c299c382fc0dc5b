package contract

import (
	"errors"
	"fmt"
)

// Builder accumulates a contract while the user edits it. Every With method
// returns a new Builder and leaves the receiver untouched, so edit steps can
// be passed around by value. Nothing is validated until Commit.
type Builder struct {
	pieces   [][]PayoutPoint
	rounding []RoundingInterval
	oracle   *OracleInput
	numeric  OracleNumericInfo
	offer    int64
	accept   int64
	feeRate  int64
}

// NewBuilder starts an empty contract with the default oracle encoding.
func NewBuilder() Builder {
	return Builder{numeric: DefaultOracleNumericInfo()}
}

// WithPiece appends one piece to the payout function.
func (b Builder) WithPiece(points ...PayoutPoint) Builder {
	b.pieces = append(clonePieces(b.pieces), append([]PayoutPoint(nil), points...))
	return b
}

// WithPieces replaces the whole payout function.
func (b Builder) WithPieces(pieces ...[]PayoutPoint) Builder {
	b.pieces = clonePieces(pieces)
	return b
}

// WithRounding replaces the rounding intervals.
func (b Builder) WithRounding(intervals ...RoundingInterval) Builder {
	b.rounding = append([]RoundingInterval(nil), intervals...)
	return b
}

func (b Builder) WithOracle(o OracleInput) Builder {
	o.PublicKeys = append([]string(nil), o.PublicKeys...)
	b.oracle = &o
	return b
}

func (b Builder) WithOracleNumericInfo(info OracleNumericInfo) Builder {
	info.NbDigits = append([]int(nil), info.NbDigits...)
	b.numeric = info
	return b
}

func (b Builder) WithCollateral(offer, accept int64) Builder {
	b.offer, b.accept = offer, accept
	return b
}

func (b Builder) WithFeeRate(rate int64) Builder {
	b.feeRate = rate
	return b
}

// Pieces returns a copy of the pieces collected so far.
func (b Builder) Pieces() [][]PayoutPoint { return clonePieces(b.pieces) }

// Rounding returns a copy of the rounding intervals collected so far.
func (b Builder) Rounding() []RoundingInterval {
	return append([]RoundingInterval(nil), b.rounding...)
}

// Collateral returns the offer and accept collateral as currently set.
func (b Builder) Collateral() (offer, accept int64) { return b.offer, b.accept }

// TotalCollateral is offer + accept collateral as currently set.
func (b Builder) TotalCollateral() int64 { return b.offer + b.accept }

// Commit validates the accumulated state and produces the contract input.
// All problems are reported together; the error wraps ErrConstruction.
func (b Builder) Commit() (ContractInput, error) {
	var errs []error

	curve, err := NewPayoutCurve(b.pieces...)
	if err != nil {
		errs = append(errs, err)
	}
	rounding, err := NewRoundingIntervals(b.rounding...)
	if err != nil {
		errs = append(errs, err)
	}

	if b.offer < 0 {
		errs = append(errs, constructionf("offerCollateral", "must be >= 0, got %d", b.offer))
	}
	if b.accept < 0 {
		errs = append(errs, constructionf("acceptCollateral", "must be >= 0, got %d", b.accept))
	}
	total := b.offer + b.accept
	if total <= 0 {
		errs = append(errs, constructionf("collateral", "total collateral must be > 0, got %d", total))
	}
	if b.feeRate < 0 {
		errs = append(errs, constructionf("feeRate", "must be >= 0, got %d", b.feeRate))
	}

	errs = append(errs, validateOracle(b.oracle)...)
	errs = append(errs, validateNumericInfo(b.numeric)...)

	if !curve.IsZero() {
		if m := curve.MaxPointPayout(); total > 0 && m > total {
			errs = append(errs, constructionf("points", "point payout %d exceeds total collateral %d", m, total))
		}
		if limit := b.numeric.MaxOutcome(); limit > 0 && curve.LastOutcome() > limit {
			errs = append(errs, constructionf("points", "last outcome %d exceeds oracle maximum %d", curve.LastOutcome(), limit))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return ContractInput{}, fmt.Errorf("commit contract: %w", err)
	}

	oracle := *b.oracle
	oracle.PublicKeys = append([]string(nil), oracle.PublicKeys...)
	numeric := b.numeric
	numeric.NbDigits = append([]int(nil), numeric.NbDigits...)

	return ContractInput{
		OfferCollateral:  b.offer,
		AcceptCollateral: b.accept,
		FeeRate:          b.feeRate,
		ContractInfos: []ContractInfo{{
			Oracle: oracle,
			Descriptor: NumericalDescriptor{
				PayoutCurve:       curve,
				RoundingIntervals: rounding,
				OracleNumericInfo: numeric,
			},
		}},
	}, nil
}

func validateOracle(o *OracleInput) []error {
	if o == nil {
		return []error{constructionf("oracleInput", "oracle input is not set")}
	}
	var errs []error
	if o.EventID == "" {
		errs = append(errs, constructionf("oracleInput.eventId", "is required"))
	}
	if o.Threshold < 1 {
		errs = append(errs, constructionf("oracleInput.threshold", "must be >= 1, got %d", o.Threshold))
	}
	if len(o.PublicKeys) < o.Threshold {
		errs = append(errs, constructionf("oracleInput.publicKeys", "need at least threshold (%d) keys, got %d", o.Threshold, len(o.PublicKeys)))
	}
	return errs
}

func validateNumericInfo(n OracleNumericInfo) []error {
	var errs []error
	if n.Base < 2 {
		errs = append(errs, constructionf("oracleNumericInfo.base", "must be >= 2, got %d", n.Base))
	}
	if len(n.NbDigits) == 0 {
		errs = append(errs, constructionf("oracleNumericInfo.nbDigits", "at least one entry is required"))
	}
	for i, d := range n.NbDigits {
		if d <= 0 {
			errs = append(errs, constructionf(fmt.Sprintf("oracleNumericInfo.nbDigits[%d]", i), "must be > 0, got %d", d))
		}
	}
	return errs
}
