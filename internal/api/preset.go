package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/preset"
)

type presetResponse struct {
	Name             string               `json:"name"`
	Version          string               `json:"version,omitempty"`
	Kind             preset.Kind          `json:"kind"`
	OfferCollateral  int64                `json:"offerCollateral"`
	AcceptCollateral int64                `json:"acceptCollateral"`
	LastOutcome      int64                `json:"lastOutcome"`
	Parlay           *contract.ParlaySpec `json:"parlay,omitempty"`
	rangeResult
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	names, err := h.presets.Names()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"presets": names})
}

// GetPreset resolves a preset and returns it with its payout ranges.
func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := h.presets.Resolve(chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, _, err := h.computeRanges(r.Context(), p.Curve, p.Rounding, p.TotalCollateral(), p.LastOutcome, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := presetResponse{
		Name:             p.Name,
		Version:          p.Version,
		Kind:             p.Kind,
		OfferCollateral:  p.OfferCollateral,
		AcceptCollateral: p.AcceptCollateral,
		LastOutcome:      p.LastOutcome,
		rangeResult:      res,
	}
	if p.Parlay != nil {
		spec := p.Parlay.Spec()
		resp.Parlay = &spec
	}
	writeJSON(w, http.StatusOK, resp)
}
