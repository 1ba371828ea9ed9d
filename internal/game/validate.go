package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xtding233/gem-gacha/internal/gacha"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// start
	if cfg.Start == nil || cfg.Start.Points == nil || cfg.Start.Prisms == nil {
		errs = append(errs, "start.points and start.prisms are required")
	} else if *cfg.Start.Points < 0 || *cfg.Start.Prisms < 0 {
		errs = append(errs, "start balances must be >= 0")
	}

	// earn
	if cfg.Earn == nil || cfg.Earn.Min == nil || cfg.Earn.Max == nil || cfg.Earn.PrismChance == nil {
		errs = append(errs, "earn.min, earn.max and earn.prism_chance are required")
	} else {
		if *cfg.Earn.Min < 0 || *cfg.Earn.Max < *cfg.Earn.Min {
			errs = append(errs, "earn must satisfy 0 <= min <= max")
		}
		if p := *cfg.Earn.PrismChance; p < 0 || p > 1 {
			errs = append(errs, "earn.prism_chance must be in [0,1]")
		}
		if cfg.Earn.PrismAmount != nil && *cfg.Earn.PrismAmount < 0 {
			errs = append(errs, "earn.prism_amount must be >= 0")
		}
	}

	// gems
	gemIDs := make(map[int]bool, len(cfg.Gems))
	if len(cfg.Gems) == 0 {
		errs = append(errs, "gems must not be empty")
	}
	for i, g := range cfg.Gems {
		if g.ID <= 0 {
			errs = append(errs, fmt.Sprintf("gems[%d].id must be >= 1", i))
		}
		if gemIDs[g.ID] {
			errs = append(errs, fmt.Sprintf("gems[%d].id %d is duplicated", i, g.ID))
		}
		gemIDs[g.ID] = true
	}

	// grades
	for _, g := range gacha.AllGrades() {
		gc, ok := cfg.Grades[string(g)]
		if !ok || len(gc.Gems) == 0 {
			errs = append(errs, fmt.Sprintf("grades.%s.gems must not be empty", g))
			continue
		}
		for _, id := range gc.Gems {
			if !gemIDs[id] {
				errs = append(errs, fmt.Sprintf("grades.%s lists unknown gem %d", g, id))
			}
		}
	}
	for name := range cfg.Grades {
		if !gacha.Grade(name).Valid() {
			errs = append(errs, fmt.Sprintf("grades.%s is not a known grade", name))
		}
	}

	// draws
	if len(cfg.Draws) == 0 {
		errs = append(errs, "draws must not be empty")
	}
	for _, name := range sortedKeys(cfg.Draws) {
		d := cfg.Draws[name]
		if !d.Cost.Single() || d.Cost.Points < 0 || d.Cost.Prisms < 0 {
			errs = append(errs, fmt.Sprintf("draws.%s.cost must charge exactly one currency", name))
		}
		if err := gacha.ValidateWeights(d.Weights); err != nil {
			errs = append(errs, fmt.Sprintf("draws.%s.weights: %v", name, err))
		}
	}

	// volumes
	for _, name := range sortedKeys(cfg.Volumes) {
		p := cfg.Volumes[name]
		if !p.Single() || p.Points < 0 || p.Prisms < 0 {
			errs = append(errs, fmt.Sprintf("volumes.%s must charge exactly one currency", name))
		}
	}

	// extract
	if len(cfg.Extract) == 0 {
		errs = append(errs, "extract tiers must not be empty")
	}
	for i, t := range cfg.Extract {
		if t.Prisms < 0 {
			errs = append(errs, fmt.Sprintf("extract[%d].prisms must be >= 0", i))
		}
	}

	if cfg.EquipSlots == nil || *cfg.EquipSlots < 1 {
		errs = append(errs, "equip_slots must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
