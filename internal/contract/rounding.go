package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// RoundingIntervals is a validated, ascending list of rounding rules.
// The zero value has no rules: payouts round to the nearest integer.
type RoundingIntervals struct {
	intervals []RoundingInterval
}

// NewRoundingIntervals validates intervals: BeginOutcome >= 0 and strictly
// ascending, RoundingModulus > 0. An empty list is valid.
func NewRoundingIntervals(intervals ...RoundingInterval) (RoundingIntervals, error) {
	var errs []error
	for i, ri := range intervals {
		field := fmt.Sprintf("roundingIntervals[%d]", i)
		if ri.BeginOutcome < 0 {
			errs = append(errs, constructionf(field+".beginOutcome", "must be >= 0, got %d", ri.BeginOutcome))
		}
		if ri.RoundingModulus <= 0 {
			errs = append(errs, constructionf(field+".roundingModulus", "must be > 0, got %d", ri.RoundingModulus))
		}
		if i > 0 && ri.BeginOutcome <= intervals[i-1].BeginOutcome {
			errs = append(errs, constructionf(field+".beginOutcome", "must be strictly ascending (%d after %d)", ri.BeginOutcome, intervals[i-1].BeginOutcome))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return RoundingIntervals{}, err
	}
	return RoundingIntervals{intervals: append([]RoundingInterval(nil), intervals...)}, nil
}

// Intervals returns a copy of the rules.
func (r RoundingIntervals) Intervals() []RoundingInterval {
	return append([]RoundingInterval(nil), r.intervals...)
}

func (r RoundingIntervals) Len() int { return len(r.intervals) }

// ModulusAt returns the modulus of the last interval with BeginOutcome <= outcome,
// or 1 when no interval applies.
func (r RoundingIntervals) ModulusAt(outcome int64) int64 {
	// first interval starting after outcome; the one before it applies
	i := sort.Search(len(r.intervals), func(i int) bool {
		return r.intervals[i].BeginOutcome > outcome
	})
	if i == 0 {
		return 1
	}
	return r.intervals[i-1].RoundingModulus
}

func (r RoundingIntervals) MarshalJSON() ([]byte, error) {
	if r.intervals == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.intervals)
}

func (r *RoundingIntervals) UnmarshalJSON(b []byte) error {
	var intervals []RoundingInterval
	if err := json.Unmarshal(b, &intervals); err != nil {
		return err
	}
	built, err := NewRoundingIntervals(intervals...)
	if err != nil {
		return err
	}
	*r = built
	return nil
}
