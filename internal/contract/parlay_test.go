package contract

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func validParameter() ParlayParameter {
	return ParlayParameter{
		DataType:       Price,
		Threshold:      50_000,
		Range:          10_000,
		Direction:      Above,
		Transformation: Sqrt,
		Weight:         2,
	}
}

func TestNewParlayDescriptorDefaults(t *testing.T) {
	d, err := NewParlayDescriptor(ParlaySpec{
		Parameters:        []ParlayParameter{validParameter()},
		CombinationMethod: WeightedAverage,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.MaxNormalizedValue() != DefaultMaxNormalizedValue {
		t.Fatalf("expected default max normalized value, got %d", d.MaxNormalizedValue())
	}
	if w := d.Weights(); len(w) != 1 || w[0] != 2 {
		t.Fatalf("unexpected weights %v", w)
	}
	if d.Rounding().Len() != 0 {
		t.Fatal("expected no rounding intervals")
	}
}

func TestNewParlayDescriptorRejects(t *testing.T) {
	bad := validParameter()
	bad.Range = 0
	bad.Weight = math.Inf(1)
	bad.Transformation = "cubic"
	bad.Direction = "sideways"
	bad.DataType = "temperature"
	bad.Threshold = math.NaN()

	_, err := NewParlayDescriptor(ParlaySpec{
		Parameters:         []ParlayParameter{validParameter(), bad},
		CombinationMethod:  "median",
		MaxNormalizedValue: MaxDomain,
	})
	if !errors.Is(err, ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
	msg := err.Error()
	for _, field := range []string{
		"parameters[1].range",
		"parameters[1].weight",
		"parameters[1].transformation",
		"parameters[1].direction",
		"parameters[1].dataType",
		"parameters[1].threshold",
		"combinationMethod",
		"maxNormalizedValue",
	} {
		if !strings.Contains(msg, field) {
			t.Errorf("error does not mention %s: %s", field, msg)
		}
	}
	if strings.Contains(msg, "parameters[0]") {
		t.Errorf("valid parameter reported: %s", msg)
	}
}

func TestNewParlayDescriptorNeedsParameters(t *testing.T) {
	if _, err := NewParlayDescriptor(ParlaySpec{CombinationMethod: Multiply}); !errors.Is(err, ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
}

func TestParlayDescriptorJSON(t *testing.T) {
	in := `{"parameters":[{"dataType":"hashrate","threshold":300,"range":100,"direction":"below","transformation":"linear","weight":1}],"combinationMethod":"min","maxNormalizedValue":1000}`
	var d ParlayDescriptor
	if err := json.Unmarshal([]byte(in), &d); err != nil {
		t.Fatal(err)
	}
	if d.Method() != Min || d.MaxNormalizedValue() != 1000 || d.Parameter(0).Direction != Below {
		t.Fatalf("unexpected descriptor %+v", d.Spec())
	}
	if err := json.Unmarshal([]byte(`{"parameters":[],"combinationMethod":"min"}`), &d); !errors.Is(err, ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
}

func TestOracleParameters(t *testing.T) {
	cases := []struct {
		in     int64
		digits int
		max    int64
	}{
		{10_000, 14, 16383},
		{16383, 14, 16383},
		{16384, 15, 32767},
		{1, 1, 1},
		{0, 1, 1},
	}
	for _, tc := range cases {
		d, m := OracleParameters(tc.in)
		if d != tc.digits || m != tc.max {
			t.Errorf("OracleParameters(%d) = (%d, %d), want (%d, %d)", tc.in, d, m, tc.digits, tc.max)
		}
	}
}

func TestParlayPayoutCurve(t *testing.T) {
	c, ri, err := ParlayPayoutCurve(100_000, 10_000)
	if err != nil {
		t.Fatal(err)
	}
	pieces := c.Pieces()
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}
	if pieces[0][1] != (PayoutPoint{Outcome: 10_000, Payout: 100_000}) {
		t.Fatalf("unexpected ramp end %+v", pieces[0][1])
	}
	if pieces[1][1] != (PayoutPoint{Outcome: 16383, Payout: 100_000}) {
		t.Fatalf("unexpected flat end %+v", pieces[1][1])
	}
	if ri.Len() != 1 || ri.ModulusAt(0) != 1 {
		t.Fatalf("unexpected rounding %+v", ri.Intervals())
	}

	// already at the oracle maximum: no flat tail
	c, _, err = ParlayPayoutCurve(500, 16383)
	if err != nil {
		t.Fatal(err)
	}
	if c.NumPieces() != 1 {
		t.Fatalf("expected a single piece, got %d", c.NumPieces())
	}

	if _, _, err := ParlayPayoutCurve(0, 10_000); !errors.Is(err, ErrConstruction) {
		t.Fatalf("expected construction error, got %v", err)
	}
}
