package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xtding233/payout-engine/internal/config"
	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/curve"
	"github.com/xtding233/payout-engine/internal/preset"
)

// PresetSource resolves and lists contract presets.
type PresetSource interface {
	preset.Resolver
	Names() ([]string, error)
}

type HandlerDeps struct {
	Presets PresetSource
	Engine  config.EngineConfig
	Logger  *slog.Logger
}

type Handler struct {
	presets PresetSource
	engine  config.EngineConfig
	logger  *slog.Logger
	cache   *rangeCache
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		presets: deps.Presets,
		engine:  deps.Engine,
		logger:  logger,
		cache:   newRangeCache(deps.Engine.RangeCacheSize()),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// computeRanges runs (or reuses) a range scan bounded by the configured
// outcome limit.
func (h *Handler) computeRanges(ctx context.Context, c contract.PayoutCurve, ri contract.RoundingIntervals, total, lastOutcome int64, parallel bool) (rangeResult, bool, error) {
	if limit := h.engine.MaxLastOutcome(); lastOutcome > limit {
		return rangeResult{}, false, &contract.ConstructionError{
			Field:  "lastOutcome",
			Reason: fmt.Sprintf("must be <= %d, got %d", limit, lastOutcome),
		}
	}
	key, err := rangeKey{Curve: c, Rounding: ri, Total: total, LastOutcome: lastOutcome}.canonical()
	if err != nil {
		return rangeResult{}, false, err
	}
	if res, ok := h.cache.get(key); ok {
		return res, true, nil
	}

	var ranges []contract.RangePayout
	if parallel {
		ranges, err = curve.ComputeRangesParallel(ctx, c, ri, total, lastOutcome, h.engine.RangeWorkers())
	} else {
		ranges, err = curve.ComputeRanges(c, ri, total, lastOutcome)
	}
	if err != nil {
		return rangeResult{}, false, err
	}
	res := rangeResult{Ranges: ranges, Stats: curve.Summarize(ranges)}
	h.cache.put(key, res)
	return res, false, nil
}
