package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/gem-gacha/internal/token"
)

//go:embed default.yaml
var defaultYAML []byte

// Loader reads the embedded defaults and merges an optional override file on top.
type Loader struct {
	overridePath string

	mu    sync.RWMutex
	cache *RawConfig
}

// NewLoader creates a catalog loader. overridePath may be empty.
func NewLoader(overridePath string) *Loader {
	return &Loader{overridePath: overridePath}
}

// OverridePath returns the file merged over the defaults, if any.
func (l *Loader) OverridePath() string { return l.overridePath }

// Default parses the embedded default catalog.
func Default() (RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse embedded default: %w", err)
	}
	return cfg, nil
}

// LoadMerged returns defaults <- override, from cache when possible.
func (l *Loader) LoadMerged() (RawConfig, error) {
	l.mu.RLock()
	if l.cache != nil {
		cfg := *l.cache
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := Default()
	if err != nil {
		return RawConfig{}, err
	}
	merged := defCfg
	if l.overridePath != "" {
		over, err := readYAML(l.overridePath)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read override %s: %w", l.overridePath, err)
		}
		merged = mergeRaw(defCfg, over)
	}

	l.mu.Lock()
	l.cache = &merged
	l.mu.Unlock()
	return merged, nil
}

// Load merges, validates and resolves the catalog.
func (l *Loader) Load() (*Catalog, error) {
	raw, err := l.LoadMerged()
	if err != nil {
		return nil, err
	}
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}
	return Resolve(raw)
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: set scalars win, map entries replace per key,
// lists replace wholesale.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// start
	switch {
	case out.Start == nil && b.Start != nil:
		c := *b.Start
		out.Start = &c
	case out.Start != nil && b.Start != nil:
		c := *out.Start
		if b.Start.Points != nil {
			c.Points = b.Start.Points
		}
		if b.Start.Prisms != nil {
			c.Prisms = b.Start.Prisms
		}
		out.Start = &c
	}

	// earn
	switch {
	case out.Earn == nil && b.Earn != nil:
		c := *b.Earn
		out.Earn = &c
	case out.Earn != nil && b.Earn != nil:
		c := *out.Earn
		if b.Earn.Min != nil {
			c.Min = b.Earn.Min
		}
		if b.Earn.Max != nil {
			c.Max = b.Earn.Max
		}
		if b.Earn.PrismChance != nil {
			c.PrismChance = b.Earn.PrismChance
		}
		if b.Earn.PrismAmount != nil {
			c.PrismAmount = b.Earn.PrismAmount
		}
		out.Earn = &c
	}

	if len(b.Draws) > 0 {
		m := make(map[string]DrawConfig, len(a.Draws)+len(b.Draws))
		for k, v := range a.Draws {
			m[k] = v
		}
		for k, v := range b.Draws {
			m[k] = v
		}
		out.Draws = m
	}
	if len(b.Grades) > 0 {
		m := make(map[string]GradeConfig, len(a.Grades)+len(b.Grades))
		for k, v := range a.Grades {
			m[k] = v
		}
		for k, v := range b.Grades {
			m[k] = GradeConfig{Gems: append([]int(nil), v.Gems...)}
		}
		out.Grades = m
	}
	if len(b.Volumes) > 0 {
		m := make(map[string]token.Price, len(a.Volumes)+len(b.Volumes))
		for k, v := range a.Volumes {
			m[k] = v
		}
		for k, v := range b.Volumes {
			m[k] = v
		}
		out.Volumes = m
	}
	if len(b.Gems) > 0 {
		out.Gems = append([]GemConfig(nil), b.Gems...)
	}
	if len(b.Extract) > 0 {
		out.Extract = append([]ExtractTier(nil), b.Extract...)
	}
	if b.EquipSlots != nil {
		v := *b.EquipSlots
		out.EquipSlots = &v
	}
	return out
}
