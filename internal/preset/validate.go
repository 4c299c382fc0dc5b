package preset

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPreset = errors.New("preset validation failed")

// ValidateRaw checks the structural constraints of a merged RawPreset.
// Payout semantics are checked when the preset is resolved.
func ValidateRaw(cfg RawPreset) error {
	var errs []string

	// collateral
	if cfg.Collateral.Offer == nil {
		errs = append(errs, "collateral.offer is required")
	} else if *cfg.Collateral.Offer < 0 {
		errs = append(errs, "collateral.offer must be >= 0")
	}
	if cfg.Collateral.Accept == nil {
		errs = append(errs, "collateral.accept is required")
	} else if *cfg.Collateral.Accept < 0 {
		errs = append(errs, "collateral.accept must be >= 0")
	}
	if cfg.Collateral.Offer != nil && cfg.Collateral.Accept != nil && *cfg.Collateral.Offer+*cfg.Collateral.Accept <= 0 {
		errs = append(errs, "collateral.offer + collateral.accept must be > 0")
	}
	if cfg.FeeRate != nil && *cfg.FeeRate < 0 {
		errs = append(errs, "fee_rate must be >= 0")
	}

	switch cfg.Kind {
	case KindCurve:
		switch {
		case cfg.Curve == nil:
			errs = append(errs, "curve is required for kind=curve")
		default:
			if len(cfg.Curve.Pieces) == 0 {
				errs = append(errs, "curve.pieces must not be empty")
			}
			if cfg.Curve.LastOutcome == nil {
				errs = append(errs, "curve.last_outcome is required")
			} else if *cfg.Curve.LastOutcome < 0 {
				errs = append(errs, "curve.last_outcome must be >= 0")
			}
		}
	case KindParlay:
		if cfg.Parlay == nil {
			errs = append(errs, "parlay is required for kind=parlay")
		} else if len(cfg.Parlay.Parameters) == 0 {
			errs = append(errs, "parlay.parameters must not be empty")
		}
	default:
		errs = append(errs, fmt.Sprintf("kind must be one of: %s, %s (got %q)", KindCurve, KindParlay, cfg.Kind))
	}

	if cfg.Oracle != nil && cfg.Oracle.Input != nil {
		if cfg.Oracle.Input.EventID == "" {
			errs = append(errs, "oracle.input.event_id is required")
		}
		if cfg.Oracle.Input.Threshold < 1 {
			errs = append(errs, "oracle.input.threshold must be >= 1")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPreset, strings.Join(errs, "; "))
	}
	return nil
}
