package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/xtding233/payout-engine/internal/config"
	"github.com/xtding233/payout-engine/internal/contract"
)

const (
	maxLastOutcomeEnvName = "MAX_LAST_OUTCOME"
	rangeWorkersEnvName   = "RANGE_WORKERS"
	rangeCacheSizeEnvName = "RANGE_CACHE_SIZE"

	defaultRangeCacheSize = 256
)

type engineConfig struct {
	maxLastOutcome int64
	rangeWorkers   int
	rangeCacheSize int
}

func NewEngineConfig() (config.EngineConfig, error) {
	cfg := &engineConfig{
		maxLastOutcome: contract.MaxDomain - 1,
		rangeCacheSize: defaultRangeCacheSize,
	}

	if raw := os.Getenv(maxLastOutcomeEnvName); len(raw) > 0 {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid max last outcome: %w", err)
		}
		if v < 0 || v >= contract.MaxDomain {
			return nil, fmt.Errorf("max last outcome must be in [0, %d), got %d", contract.MaxDomain, v)
		}
		cfg.maxLastOutcome = v
	}

	if raw := os.Getenv(rangeWorkersEnvName); len(raw) > 0 {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid range workers: %w", err)
		}
		if v < 0 {
			return nil, fmt.Errorf("range workers must be >= 0, got %d", v)
		}
		cfg.rangeWorkers = v
	}

	if raw := os.Getenv(rangeCacheSizeEnvName); len(raw) > 0 {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid range cache size: %w", err)
		}
		if v < 0 {
			return nil, fmt.Errorf("range cache size must be >= 0, got %d", v)
		}
		cfg.rangeCacheSize = v
	}

	return cfg, nil
}

func (cfg *engineConfig) MaxLastOutcome() int64 {
	return cfg.maxLastOutcome
}

func (cfg *engineConfig) RangeWorkers() int {
	return cfg.rangeWorkers
}

func (cfg *engineConfig) RangeCacheSize() int {
	return cfg.rangeCacheSize
}
