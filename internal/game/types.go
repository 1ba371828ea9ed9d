// types.go
package game

import (
	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/token"
)

// Raw config loaded from YAML. Pointers distinguish "unset" from zero so an
// override file only needs the keys it changes.
type RawConfig struct {
	Version    string                 `yaml:"version"`
	Start      *StartConfig           `yaml:"start,omitempty"`
	Earn       *EarnConfig            `yaml:"earn,omitempty"`
	Draws      map[string]DrawConfig  `yaml:"draws,omitempty"`
	Grades     map[string]GradeConfig `yaml:"grades,omitempty"`
	Gems       []GemConfig            `yaml:"gems,omitempty"`
	Volumes    map[string]token.Price `yaml:"volumes,omitempty"`
	Extract    []ExtractTier          `yaml:"extract,omitempty"`
	EquipSlots *int                   `yaml:"equip_slots,omitempty"`
	Notes      string                 `yaml:"notes,omitempty"`
}

type StartConfig struct {
	Points *int64 `yaml:"points"`
	Prisms *int64 `yaml:"prisms"`
}

type EarnConfig struct {
	Min         *int64   `yaml:"min"`
	Max         *int64   `yaml:"max"`
	PrismChance *float64 `yaml:"prism_chance"`
	PrismAmount *int64   `yaml:"prism_amount"`
}

type DrawConfig struct {
	Cost    token.Price   `yaml:"cost"`
	Weights gacha.Weights `yaml:"weights"`
}

type GradeConfig struct {
	Gems []int `yaml:"gems"`
}

type GemConfig struct {
	ID         int     `yaml:"id"`
	Name       string  `yaml:"name"`
	Glyph      string  `yaml:"glyph"`
	Chorus     int     `yaml:"chorus"`
	Multiplier float64 `yaml:"multiplier"`
	Lux        int     `yaml:"lux"`
}

// ExtractTier grants Prisms for extracting any gem with id >= MinID.
type ExtractTier struct {
	MinID  int   `yaml:"min_id"`
	Prisms int64 `yaml:"prisms"`
}
