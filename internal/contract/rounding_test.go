package contract

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestModulusAtLastApplicableWins(t *testing.T) {
	ri, err := NewRoundingIntervals(
		RoundingInterval{BeginOutcome: 100, RoundingModulus: 50},
		RoundingInterval{BeginOutcome: 1000, RoundingModulus: 10},
		RoundingInterval{BeginOutcome: 5000, RoundingModulus: 500},
	)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[int64]int64{0: 1, 99: 1, 100: 50, 999: 50, 1000: 10, 4999: 10, 5000: 500, 1 << 19: 500}
	for outcome, want := range cases {
		if got := ri.ModulusAt(outcome); got != want {
			t.Errorf("ModulusAt(%d) = %d, want %d", outcome, got, want)
		}
	}
	if (RoundingIntervals{}).ModulusAt(7) != 1 {
		t.Fatal("empty intervals should use modulus 1")
	}
}

func TestNewRoundingIntervalsRejects(t *testing.T) {
	cases := map[string][]RoundingInterval{
		"zero modulus":     {{BeginOutcome: 0, RoundingModulus: 0}},
		"negative begin":   {{BeginOutcome: -1, RoundingModulus: 10}},
		"unsorted":         {{BeginOutcome: 10, RoundingModulus: 1}, {BeginOutcome: 5, RoundingModulus: 1}},
		"duplicate begins": {{BeginOutcome: 10, RoundingModulus: 1}, {BeginOutcome: 10, RoundingModulus: 2}},
	}
	for name, intervals := range cases {
		if _, err := NewRoundingIntervals(intervals...); !errors.Is(err, ErrConstruction) {
			t.Errorf("%s: expected construction error, got %v", name, err)
		}
	}
}

func TestRoundingIntervalsJSON(t *testing.T) {
	var ri RoundingIntervals
	if err := json.Unmarshal([]byte(`[{"beginOutcome":0,"roundingModulus":100}]`), &ri); err != nil {
		t.Fatal(err)
	}
	if ri.Len() != 1 || ri.ModulusAt(5) != 100 {
		t.Fatalf("unexpected intervals %+v", ri.Intervals())
	}
	if err := json.Unmarshal([]byte(`[{"beginOutcome":0,"roundingModulus":-3}]`), &ri); !errors.Is(err, ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
}
