package preset

import "github.com/xtding233/payout-engine/internal/contract"

// Kind selects which payout description a preset carries.
type Kind string

const (
	KindCurve  Kind = "curve"
	KindParlay Kind = "parlay"
)

// RawPreset is a contract template as written in YAML.
type RawPreset struct {
	Version    string               `yaml:"version"`
	Kind       Kind                 `yaml:"kind"`
	Collateral CollateralConfig     `yaml:"collateral"`
	FeeRate    *int64               `yaml:"fee_rate,omitempty"`
	Curve      *CurveConfig         `yaml:"curve,omitempty"`
	Parlay     *contract.ParlaySpec `yaml:"parlay,omitempty"`
	Oracle     *OracleConfig        `yaml:"oracle,omitempty"`
	Notes      string               `yaml:"notes,omitempty"`
}

type CollateralConfig struct {
	Offer  *int64 `yaml:"offer"`
	Accept *int64 `yaml:"accept"`
}

type CurveConfig struct {
	Pieces      [][]contract.PayoutPoint    `yaml:"pieces"`
	Rounding    []contract.RoundingInterval `yaml:"rounding_intervals,omitempty"`
	LastOutcome *int64                      `yaml:"last_outcome"`
}

type OracleConfig struct {
	Input   *contract.OracleInput       `yaml:"input,omitempty"`
	Numeric *contract.OracleNumericInfo `yaml:"numeric,omitempty"`
}

// Preset is a validated template ready for the engine. Parlay presets carry
// the settlement curve built from their descriptor.
type Preset struct {
	Name             string
	Version          string
	Kind             Kind
	OfferCollateral  int64
	AcceptCollateral int64
	FeeRate          int64
	Curve            contract.PayoutCurve
	Rounding         contract.RoundingIntervals
	LastOutcome      int64
	Parlay           *contract.ParlayDescriptor
	Oracle           *contract.OracleInput
	Numeric          contract.OracleNumericInfo
}

// TotalCollateral is offer + accept collateral.
func (p Preset) TotalCollateral() int64 { return p.OfferCollateral + p.AcceptCollateral }

// Builder seeds a contract builder with everything the preset defines.
func (p Preset) Builder() contract.Builder {
	b := contract.NewBuilder().
		WithPieces(p.Curve.Pieces()...).
		WithRounding(p.Rounding.Intervals()...).
		WithCollateral(p.OfferCollateral, p.AcceptCollateral).
		WithFeeRate(p.FeeRate).
		WithOracleNumericInfo(p.Numeric)
	if p.Oracle != nil {
		b = b.WithOracle(*p.Oracle)
	}
	return b
}

// Resolver turns a preset name into a validated Preset.
type Resolver interface {
	Resolve(name string) (Preset, error)
}
