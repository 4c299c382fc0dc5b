package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
)

// Load reads KEY=VALUE pairs from path into the process environment.
// Variables already set are not overridden.
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PresetConfig interface {
	Dir() string
	PollInterval() time.Duration
}

type EngineConfig interface {
	// MaxLastOutcome caps the outcome domain a single request may scan.
	MaxLastOutcome() int64
	// RangeWorkers is the parallel scan width; 0 means GOMAXPROCS.
	RangeWorkers() int
	RangeCacheSize() int
}

type LogConfig interface {
	Level() slog.Level
}
