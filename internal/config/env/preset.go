package env

import (
	"fmt"
	"os"
	"time"

	"github.com/xtding233/payout-engine/internal/config"
)

const (
	presetDirEnvName          = "PRESET_DIR"
	presetPollIntervalEnvName = "PRESET_POLL_INTERVAL"

	defaultPresetDir          = "presets"
	defaultPresetPollInterval = 2 * time.Second
)

type presetConfig struct {
	dir          string
	pollInterval time.Duration
}

func NewPresetConfig() (config.PresetConfig, error) {
	dir := os.Getenv(presetDirEnvName)
	if len(dir) == 0 {
		dir = defaultPresetDir
	}

	interval := defaultPresetPollInterval
	if raw := os.Getenv(presetPollIntervalEnvName); len(raw) > 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid preset poll interval: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("preset poll interval must be positive, got %s", parsed)
		}
		interval = parsed
	}

	return &presetConfig{dir: dir, pollInterval: interval}, nil
}

func (cfg *presetConfig) Dir() string {
	return cfg.dir
}

func (cfg *presetConfig) PollInterval() time.Duration {
	return cfg.pollInterval
}
