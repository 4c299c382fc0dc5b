package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultName is the preset every other preset is layered on.
const DefaultName = "default"

var (
	ErrNotFound    = errors.New("preset not found")
	ErrInvalidName = errors.New("invalid preset name")
)

// Paths locates preset files under a base directory.
type Paths struct {
	BaseDir string // e.g. ./presets
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, DefaultName+".yaml")
}

func (p Paths) PresetPath(name string) string {
	return filepath.Join(p.BaseDir, name+".yaml")
}

// Loader reads preset YAML files and merges default → named preset.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawPreset // key: preset name
}

// NewLoader creates a preset loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawPreset),
	}
}

// Dir is the directory the loader reads from.
func (l *Loader) Dir() string { return l.paths.BaseDir }

// LoadMerged returns the default preset overlaid with the named one.
// The result is not validated.
func (l *Loader) LoadMerged(name string) (RawPreset, error) {
	if err := checkName(name); err != nil {
		return RawPreset{}, err
	}
	l.mu.RLock()
	if cfg, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, found, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawPreset{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if name != DefaultName {
		named, ok, err := readYAML(l.paths.PresetPath(name))
		if err != nil {
			return RawPreset{}, fmt.Errorf("read preset %q: %w", name, err)
		}
		if !ok {
			return RawPreset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		merged = mergeRaw(defCfg, named)
	} else if !found {
		return RawPreset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	l.mu.Lock()
	l.cache[name] = merged
	l.mu.Unlock()

	return merged, nil
}

// Names lists the presets available on disk, sorted.
func (l *Loader) Names() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(l.paths.BaseDir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(filepath.Base(f), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate clears the loader's cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawPreset)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// readYAML loads a YAML file into RawPreset. A missing file is not an error;
// found reports whether it existed.
func readYAML(path string) (cfg RawPreset, found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawPreset{}, false, nil
		}
		return RawPreset{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawPreset{}, true, err
	}
	return cfg, true, nil
}

// mergeRaw overlays b on a: scalars and pointers set in b win, slices in b
// replace those in a, and a parlay block in b replaces a's entirely.
func mergeRaw(a, b RawPreset) RawPreset {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Kind != "" {
		out.Kind = b.Kind
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.FeeRate != nil {
		out.FeeRate = b.FeeRate
	}

	// collateral
	if b.Collateral.Offer != nil {
		out.Collateral.Offer = b.Collateral.Offer
	}
	if b.Collateral.Accept != nil {
		out.Collateral.Accept = b.Collateral.Accept
	}

	// curve
	switch {
	case out.Curve == nil && b.Curve != nil:
		c := *b.Curve
		out.Curve = &c
	case out.Curve != nil && b.Curve != nil:
		c := *out.Curve
		if len(b.Curve.Pieces) > 0 {
			c.Pieces = b.Curve.Pieces
		}
		if len(b.Curve.Rounding) > 0 {
			c.Rounding = b.Curve.Rounding
		}
		if b.Curve.LastOutcome != nil {
			c.LastOutcome = b.Curve.LastOutcome
		}
		out.Curve = &c
	}

	// parlay
	if b.Parlay != nil {
		p := *b.Parlay
		out.Parlay = &p
	}

	// oracle
	switch {
	case out.Oracle == nil && b.Oracle != nil:
		o := *b.Oracle
		out.Oracle = &o
	case out.Oracle != nil && b.Oracle != nil:
		o := *out.Oracle
		if b.Oracle.Input != nil {
			o.Input = b.Oracle.Input
		}
		if b.Oracle.Numeric != nil {
			o.Numeric = b.Oracle.Numeric
		}
		out.Oracle = &o
	}

	return out
}
