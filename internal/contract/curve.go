package contract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PayoutCurve is a validated piecewise payout function. Pieces are ordered,
// each holds two or more points with strictly increasing outcomes, and
// consecutive pieces share their boundary outcome.
type PayoutCurve struct {
	pieces [][]PayoutPoint
}

// NewPayoutCurve validates pieces and returns an immutable curve.
// Every problem found is reported; the returned error wraps ErrConstruction.
func NewPayoutCurve(pieces ...[]PayoutPoint) (PayoutCurve, error) {
	if err := validatePieces(pieces); err != nil {
		return PayoutCurve{}, err
	}
	return PayoutCurve{pieces: clonePieces(pieces)}, nil
}

func validatePieces(pieces [][]PayoutPoint) error {
	if len(pieces) == 0 {
		return constructionf("points", "at least one piece is required")
	}
	var errs []error
	for i, piece := range pieces {
		if len(piece) < 2 {
			errs = append(errs, constructionf(fmt.Sprintf("points[%d]", i), "a piece needs at least 2 points, got %d", len(piece)))
			continue
		}
		for j, p := range piece {
			field := fmt.Sprintf("points[%d][%d]", i, j)
			if p.Outcome < 0 {
				errs = append(errs, constructionf(field+".outcome", "must be >= 0, got %d", p.Outcome))
			}
			if p.Payout < 0 {
				errs = append(errs, constructionf(field+".payout", "must be >= 0, got %d", p.Payout))
			}
			if j > 0 && p.Outcome <= piece[j-1].Outcome {
				errs = append(errs, constructionf(field+".outcome", "outcomes must be strictly increasing (%d after %d)", p.Outcome, piece[j-1].Outcome))
			}
		}
		if i > 0 && len(pieces[i-1]) >= 2 {
			prevEnd := pieces[i-1][len(pieces[i-1])-1].Outcome
			if piece[0].Outcome != prevEnd {
				errs = append(errs, constructionf(fmt.Sprintf("points[%d][0].outcome", i), "must equal previous piece end %d, got %d", prevEnd, piece[0].Outcome))
			}
		}
	}
	return errors.Join(errs...)
}

func clonePieces(pieces [][]PayoutPoint) [][]PayoutPoint {
	out := make([][]PayoutPoint, len(pieces))
	for i, p := range pieces {
		out[i] = append([]PayoutPoint(nil), p...)
	}
	return out
}

// Pieces returns a copy of the curve's pieces.
func (c PayoutCurve) Pieces() [][]PayoutPoint { return clonePieces(c.pieces) }

// NumPieces reports how many pieces the curve has.
func (c PayoutCurve) NumPieces() int { return len(c.pieces) }

// IsZero reports whether c is the zero value (never built by NewPayoutCurve).
func (c PayoutCurve) IsZero() bool { return len(c.pieces) == 0 }

// PieceFor returns the piece governing outcome: the first piece whose
// [first, last] contains it, the first piece for outcomes before the curve
// and the last piece for outcomes after it. The slice must not be modified.
func (c PayoutCurve) PieceFor(outcome int64) []PayoutPoint {
	if len(c.pieces) == 0 {
		return nil
	}
	if outcome < c.pieces[0][0].Outcome {
		return c.pieces[0]
	}
	for _, piece := range c.pieces {
		if outcome <= piece[len(piece)-1].Outcome {
			return piece
		}
	}
	return c.pieces[len(c.pieces)-1]
}

// FirstOutcome and LastOutcome bound the defined part of the curve.
func (c PayoutCurve) FirstOutcome() int64 {
	if len(c.pieces) == 0 {
		return 0
	}
	return c.pieces[0][0].Outcome
}

func (c PayoutCurve) LastOutcome() int64 {
	if len(c.pieces) == 0 {
		return 0
	}
	last := c.pieces[len(c.pieces)-1]
	return last[len(last)-1].Outcome
}

// MaxPointPayout returns the largest integral payout among all points.
func (c PayoutCurve) MaxPointPayout() int64 {
	var m int64
	for _, piece := range c.pieces {
		for _, p := range piece {
			if p.Payout > m {
				m = p.Payout
			}
		}
	}
	return m
}

func (c PayoutCurve) MarshalJSON() ([]byte, error) {
	if c.pieces == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.pieces)
}

// UnmarshalJSON decodes [[PayoutPoint]] and validates it like NewPayoutCurve.
func (c *PayoutCurve) UnmarshalJSON(b []byte) error {
	var pieces [][]PayoutPoint
	if err := json.Unmarshal(b, &pieces); err != nil {
		return err
	}
	built, err := NewPayoutCurve(pieces...)
	if err != nil {
		return err
	}
	*c = built
	return nil
}
