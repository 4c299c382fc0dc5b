package curve

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xtding233/payout-engine/internal/contract"
)

// ctxCheckEvery is how many outcomes a scan evaluates between context checks.
const ctxCheckEvery = 1 << 12

// ComputeRanges compresses outcomes 0..lastOutcome into maximal runs with the
// same rounded offer payout. The accept side is always total - offer.
// Any evaluation error aborts the pass; partial ranges are never returned.
func ComputeRanges(c contract.PayoutCurve, ri contract.RoundingIntervals, totalCollateral, lastOutcome int64) ([]contract.RangePayout, error) {
	if err := validateScan(c, totalCollateral, lastOutcome); err != nil {
		return nil, err
	}
	return computeSpan(context.Background(), c, ri, totalCollateral, 0, lastOutcome)
}

func validateScan(c contract.PayoutCurve, totalCollateral, lastOutcome int64) error {
	switch {
	case c.IsZero():
		return &contract.ConstructionError{Field: "points", Reason: "payout curve is empty"}
	case totalCollateral <= 0:
		return &contract.ConstructionError{
			Field:  "totalCollateral",
			Reason: fmt.Sprintf("must be > 0, got %d", totalCollateral),
		}
	case lastOutcome < 0 || lastOutcome >= contract.MaxDomain:
		return &contract.ConstructionError{
			Field:  "lastOutcome",
			Reason: fmt.Sprintf("must be in [0, %d), got %d", contract.MaxDomain, lastOutcome),
		}
	}
	return nil
}

// computeSpan scans first..last inclusive.
func computeSpan(ctx context.Context, c contract.PayoutCurve, ri contract.RoundingIntervals, totalCollateral, first, last int64) ([]contract.RangePayout, error) {
	total := decimal.NewFromInt(totalCollateral)
	var (
		ranges []contract.RangePayout
		cur    contract.RangePayout
	)
	for outcome := first; outcome <= last; outcome++ {
		if (outcome-first)%ctxCheckEvery == ctxCheckEvery-1 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		payout, err := roundedPayout(c, outcome, ri, total)
		if err != nil {
			return nil, err
		}
		if outcome != first {
			if payout == cur.OfferAmount {
				cur.Count++
				continue
			}
			ranges = append(ranges, cur)
		}
		cur = contract.RangePayout{
			Start:        outcome,
			Count:        1,
			OfferAmount:  payout,
			AcceptAmount: totalCollateral - payout,
		}
	}
	return append(ranges, cur), nil
}

// mergeRanges concatenates per-span results in order, joining neighbours
// that carry the same payout.
func mergeRanges(spans [][]contract.RangePayout) []contract.RangePayout {
	n := 0
	for _, s := range spans {
		n += len(s)
	}
	out := make([]contract.RangePayout, 0, n)
	for _, s := range spans {
		for _, r := range s {
			if k := len(out); k > 0 && out[k-1].OfferAmount == r.OfferAmount && out[k-1].End()+1 == r.Start {
				out[k-1].Count += r.Count
				continue
			}
			out = append(out, r)
		}
	}
	return out
}
