package api

import (
	"net/http"

	"github.com/xtding233/payout-engine/internal/contract"
)

// contractInputRequest either starts from a named preset or from scratch;
// every field that is set replaces what the preset provided.
type contractInputRequest struct {
	Preset            string                      `json:"preset,omitempty"`
	Points            [][]contract.PayoutPoint    `json:"points,omitempty"`
	RoundingIntervals []contract.RoundingInterval `json:"roundingIntervals,omitempty"`
	Oracle            *contract.OracleInput       `json:"oracleInput,omitempty"`
	OracleNumericInfo *contract.OracleNumericInfo `json:"oracleNumericInfo,omitempty"`
	OfferCollateral   *int64                      `json:"offerCollateral,omitempty"`
	AcceptCollateral  *int64                      `json:"acceptCollateral,omitempty"`
	FeeRate           *int64                      `json:"feeRate,omitempty"`
}

func (h *Handler) ContractInput(w http.ResponseWriter, r *http.Request) {
	req, err := decode[contractInputRequest](w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	b := contract.NewBuilder()
	if req.Preset != "" {
		p, err := h.presets.Resolve(req.Preset)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		b = p.Builder()
	}
	if len(req.Points) > 0 {
		b = b.WithPieces(req.Points...)
	}
	if req.RoundingIntervals != nil {
		b = b.WithRounding(req.RoundingIntervals...)
	}
	if req.Oracle != nil {
		b = b.WithOracle(*req.Oracle)
	}
	if req.OracleNumericInfo != nil {
		b = b.WithOracleNumericInfo(*req.OracleNumericInfo)
	}
	if req.OfferCollateral != nil || req.AcceptCollateral != nil {
		offer, accept := b.Collateral()
		if req.OfferCollateral != nil {
			offer = *req.OfferCollateral
		}
		if req.AcceptCollateral != nil {
			accept = *req.AcceptCollateral
		}
		b = b.WithCollateral(offer, accept)
	}
	if req.FeeRate != nil {
		b = b.WithFeeRate(*req.FeeRate)
	}

	in, err := b.Commit()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}
