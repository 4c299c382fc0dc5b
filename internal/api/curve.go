package api

import (
	"fmt"
	"net/http"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/curve"
)

const maxEvaluateOutcomes = 10_000

type curveRequest struct {
	Points            [][]contract.PayoutPoint    `json:"points"`
	RoundingIntervals []contract.RoundingInterval `json:"roundingIntervals"`
	TotalCollateral   int64                       `json:"totalCollateral"`
}

func (req curveRequest) build() (contract.PayoutCurve, contract.RoundingIntervals, error) {
	c, err := contract.NewPayoutCurve(req.Points...)
	if err != nil {
		return contract.PayoutCurve{}, contract.RoundingIntervals{}, err
	}
	ri, err := contract.NewRoundingIntervals(req.RoundingIntervals...)
	if err != nil {
		return contract.PayoutCurve{}, contract.RoundingIntervals{}, err
	}
	return c, ri, nil
}

type evaluateCurveRequest struct {
	curveRequest
	Outcomes []int64 `json:"outcomes"`
}

type evaluatedOutcome struct {
	Outcome       int64  `json:"outcome"`
	Payout        string `json:"payout"`
	RoundedPayout *int64 `json:"roundedPayout,omitempty"`
}

type evaluateCurveResponse struct {
	Results []evaluatedOutcome `json:"results"`
}

// EvaluateCurve returns the exact payout at each requested outcome, plus the
// rounded settlement amount when totalCollateral is set.
func (h *Handler) EvaluateCurve(w http.ResponseWriter, r *http.Request) {
	req, err := decode[evaluateCurveRequest](w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(req.Outcomes) == 0 || len(req.Outcomes) > maxEvaluateOutcomes {
		h.writeError(w, r, fmt.Errorf("%w: outcomes must hold 1 to %d values", errBadRequest, maxEvaluateOutcomes))
		return
	}
	c, ri, err := req.build()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := make([]evaluatedOutcome, len(req.Outcomes))
	for i, outcome := range req.Outcomes {
		v, err := curve.Evaluate(c, outcome)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		results[i] = evaluatedOutcome{Outcome: outcome, Payout: v.String()}
		if req.TotalCollateral > 0 {
			rounded, err := curve.RoundedPayout(c, outcome, ri, req.TotalCollateral)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			results[i].RoundedPayout = &rounded
		}
	}
	writeJSON(w, http.StatusOK, evaluateCurveResponse{Results: results})
}

type rangesRequest struct {
	curveRequest
	LastOutcome int64 `json:"lastOutcome"`
	Parallel    bool  `json:"parallel"`
}

type rangesResponse struct {
	rangeResult
	Cached bool `json:"cached"`
}

// CurveRanges compresses the outcome domain [0, lastOutcome] into payout ranges.
func (h *Handler) CurveRanges(w http.ResponseWriter, r *http.Request) {
	req, err := decode[rangesRequest](w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, ri, err := req.build()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, cached, err := h.computeRanges(r.Context(), c, ri, req.TotalCollateral, req.LastOutcome, req.Parallel)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rangesResponse{rangeResult: res, Cached: cached})
}
