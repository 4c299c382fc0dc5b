package curve

import (
	"math"
	"sort"

	"github.com/xtding233/payout-engine/internal/contract"
)

// Stats summarizes the offer payout over every outcome covered by a set of
// ranges, each outcome weighted equally.
type Stats struct {
	Outcomes int64   `json:"outcomes"`
	Min      int64   `json:"min"`
	Max      int64   `json:"max"`
	Mean     float64 `json:"mean"`
	Var      float64 `json:"var"`
	StdDev   float64 `json:"stdDev"`
	P50      float64 `json:"p50"`
	P90      float64 `json:"p90"`
	P99      float64 `json:"p99"`
}

// Summarize computes mean/variance/percentiles of the offer payout without
// expanding ranges into individual outcomes.
func Summarize(ranges []contract.RangePayout) Stats {
	var (
		n  int64
		cp []contract.RangePayout
	)
	for _, r := range ranges {
		if r.Count <= 0 {
			continue
		}
		n += r.Count
		cp = append(cp, r)
	}
	if n == 0 {
		return Stats{}
	}

	// mean
	var sum float64
	for _, r := range cp {
		sum += float64(r.OfferAmount) * float64(r.Count)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, r := range cp {
		d := float64(r.OfferAmount) - mean
		acc += d * d * float64(r.Count)
	}
	variance := acc / float64(n)

	// percentiles over the sorted, run-length encoded distribution
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].OfferAmount < cp[j].OfferAmount })
	valueAt := func(k int64) float64 {
		for _, r := range cp {
			if k < r.Count {
				return float64(r.OfferAmount)
			}
			k -= r.Count
		}
		return float64(cp[len(cp)-1].OfferAmount)
	}
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return valueAt(0)
		}
		if p >= 1 {
			return valueAt(n - 1)
		}
		pos := p * float64(n-1)
		i := int64(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return valueAt(i)
		}
		return valueAt(i)*(1-f) + valueAt(i+1)*f
	}

	return Stats{
		Outcomes: n,
		Min:      cp[0].OfferAmount,
		Max:      cp[len(cp)-1].OfferAmount,
		Mean:     mean,
		Var:      variance,
		StdDev:   math.Sqrt(variance),
		P50:      percentile(0.50),
		P90:      percentile(0.90),
		P99:      percentile(0.99),
	}
}
