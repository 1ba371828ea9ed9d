package game

import (
	"sort"

	"github.com/xtding233/gem-gacha/internal/gacha"
)

// Gem is a static catalog entry. Chorus, Multiplier and Lux feed the
// presentation layer only; draw and ledger math never read them.
type Gem struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	Glyph      string      `json:"glyph"`
	Grade      gacha.Grade `json:"grade"`
	Chorus     int         `json:"chorus"`
	Multiplier float64     `json:"multiplier"`
	Lux        int         `json:"lux"`
}

// Gem looks up a catalog entry by id.
func (c *Catalog) Gem(id int) (Gem, bool) {
	g, ok := c.gems[id]
	return g, ok
}

// Gems returns every catalog entry ordered by id.
func (c *Catalog) Gems() []Gem {
	out := make([]Gem, 0, len(c.gems))
	for _, g := range c.gems {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
