package api

import (
	"net/http"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/parlay"
)

type parlayEvaluateRequest struct {
	contract.ParlaySpec
	Values          []float64 `json:"values"`
	TotalCollateral int64     `json:"totalCollateral"`
}

type parlayEvaluateResponse struct {
	parlay.Result
	OracleOutcome int64 `json:"oracleOutcome"`
}

func (h *Handler) EvaluateParlay(w http.ResponseWriter, r *http.Request) {
	req, err := decode[parlayEvaluateRequest](w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	d, err := contract.NewParlayDescriptor(req.ParlaySpec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := parlay.Evaluate(d, req.Values, req.TotalCollateral)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, parlayEvaluateResponse{
		Result:        res,
		OracleOutcome: parlay.OracleOutcome(res.Fraction, d.MaxNormalizedValue()),
	})
}

type heatmapRequest struct {
	contract.ParlaySpec
	TotalCollateral int64           `json:"totalCollateral"`
	Grid            parlay.GridSpec `json:"grid"`
}

func (h *Handler) ParlayHeatmap(w http.ResponseWriter, r *http.Request) {
	req, err := decode[heatmapRequest](w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	d, err := contract.NewParlayDescriptor(req.ParlaySpec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	grid, err := parlay.Heatmap(r.Context(), d, req.TotalCollateral, req.Grid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (h *Handler) DataTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, parlay.DataTypes())
}
