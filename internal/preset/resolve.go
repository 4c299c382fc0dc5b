package preset

import (
	"fmt"

	"github.com/xtding233/payout-engine/internal/contract"
)

// Resolve loads, merges and validates the named preset and converts it into
// engine types.
func (l *Loader) Resolve(name string) (Preset, error) {
	raw, err := l.LoadMerged(name)
	if err != nil {
		return Preset{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Preset{}, fmt.Errorf("preset %q: %w", name, err)
	}
	p, err := normalize(name, raw)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %q: %w: %w", name, ErrInvalidPreset, err)
	}
	return p, nil
}

// normalize expects a RawPreset that passed ValidateRaw.
func normalize(name string, raw RawPreset) (Preset, error) {
	p := Preset{
		Name:             name,
		Version:          raw.Version,
		Kind:             raw.Kind,
		OfferCollateral:  *raw.Collateral.Offer,
		AcceptCollateral: *raw.Collateral.Accept,
		Numeric:          contract.DefaultOracleNumericInfo(),
	}
	if raw.FeeRate != nil {
		p.FeeRate = *raw.FeeRate
	}

	switch raw.Kind {
	case KindCurve:
		c, err := contract.NewPayoutCurve(raw.Curve.Pieces...)
		if err != nil {
			return Preset{}, err
		}
		ri, err := contract.NewRoundingIntervals(raw.Curve.Rounding...)
		if err != nil {
			return Preset{}, err
		}
		p.Curve, p.Rounding, p.LastOutcome = c, ri, *raw.Curve.LastOutcome
	case KindParlay:
		d, err := contract.NewParlayDescriptor(*raw.Parlay)
		if err != nil {
			return Preset{}, err
		}
		c, ri, err := contract.ParlayPayoutCurve(p.TotalCollateral(), d.MaxNormalizedValue())
		if err != nil {
			return Preset{}, err
		}
		if d.Rounding().Len() > 0 {
			ri = d.Rounding()
		}
		nbDigits, maxOracle := contract.OracleParameters(d.MaxNormalizedValue())
		p.Parlay = &d
		p.Curve, p.Rounding, p.LastOutcome = c, ri, maxOracle
		p.Numeric = contract.OracleNumericInfo{Base: 2, NbDigits: []int{nbDigits}}
	}

	if raw.Oracle != nil {
		if raw.Oracle.Input != nil {
			o := *raw.Oracle.Input
			p.Oracle = &o
		}
		if raw.Oracle.Numeric != nil {
			p.Numeric = *raw.Oracle.Numeric
		}
	}
	return p, nil
}
