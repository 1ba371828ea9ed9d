// resolve.go
package game

import (
	"fmt"
	"sort"

	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/pricing"
	"github.com/xtding233/gem-gacha/internal/token"
)

// EarnRule describes the reward of one earn-points call.
type EarnRule struct {
	Min, Max    int64   // points, inclusive
	PrismChance float64 // probability of a prism bonus
	PrismAmount int64
}

// Catalog is the validated, immutable game tuning the ledger runs on.
type Catalog struct {
	Version    string
	Engine     *gacha.Engine
	Shop       pricing.Catalog
	Start      token.Price
	Earn       EarnRule
	EquipSlots int

	drawCosts map[string]token.Price
	gems      map[int]Gem
	extract   []ExtractTier // sorted by MinID, highest first
}

// Resolve turns a validated RawConfig into a Catalog.
func Resolve(raw RawConfig) (*Catalog, error) {
	rates := make(map[string]gacha.Weights, len(raw.Draws))
	costs := make(map[string]token.Price, len(raw.Draws))
	for name, d := range raw.Draws {
		rates[name] = d.Weights
		costs[name] = d.Cost
	}
	pool := make(map[gacha.Grade][]int, len(raw.Grades))
	for name, g := range raw.Grades {
		pool[gacha.Grade(name)] = g.Gems
	}
	engine, err := gacha.NewEngine(rates, pool)
	if err != nil {
		return nil, fmt.Errorf("build draw engine: %w", err)
	}

	offers := make([]pricing.Offer, 0, len(raw.Volumes))
	for name, p := range raw.Volumes {
		offers = append(offers, pricing.Offer{Volume: name, Price: p})
	}

	gems := make(map[int]Gem, len(raw.Gems))
	for _, g := range raw.Gems {
		gems[g.ID] = Gem{
			ID:         g.ID,
			Name:       g.Name,
			Glyph:      g.Glyph,
			Chorus:     g.Chorus,
			Multiplier: g.Multiplier,
			Lux:        g.Lux,
		}
	}
	for grade, ids := range pool {
		for _, id := range ids {
			if g, ok := gems[id]; ok {
				g.Grade = grade
				gems[id] = g
			}
		}
	}

	extract := append([]ExtractTier(nil), raw.Extract...)
	sort.SliceStable(extract, func(i, j int) bool { return extract[i].MinID > extract[j].MinID })

	c := &Catalog{
		Version:   raw.Version,
		Engine:    engine,
		Shop:      pricing.NewCatalog(offers...),
		drawCosts: costs,
		gems:      gems,
		extract:   extract,
	}
	if raw.Start != nil && raw.Start.Points != nil && raw.Start.Prisms != nil {
		c.Start = token.Price{Points: *raw.Start.Points, Prisms: *raw.Start.Prisms}
	}
	if raw.Earn != nil && raw.Earn.Min != nil && raw.Earn.Max != nil && raw.Earn.PrismChance != nil {
		c.Earn = EarnRule{Min: *raw.Earn.Min, Max: *raw.Earn.Max, PrismChance: *raw.Earn.PrismChance, PrismAmount: 1}
		if raw.Earn.PrismAmount != nil {
			c.Earn.PrismAmount = *raw.Earn.PrismAmount
		}
	}
	c.EquipSlots = 1
	if raw.EquipSlots != nil {
		c.EquipSlots = *raw.EquipSlots
	}
	return c, nil
}

// DrawCost returns the per-draw price of drawType.
func (c *Catalog) DrawCost(drawType string) (token.Price, bool) {
	p, ok := c.drawCosts[drawType]
	return p, ok
}

// DrawTypes returns the configured draw type names, sorted.
func (c *Catalog) DrawTypes() []string {
	return sortedKeys(c.drawCosts)
}

// ExtractReward returns the prisms granted for extracting gemID. Ids below
// every tier get the lowest tier's reward.
func (c *Catalog) ExtractReward(gemID int) int64 {
	if len(c.extract) == 0 {
		return 0
	}
	for _, t := range c.extract {
		if gemID >= t.MinID {
			return t.Prisms
		}
	}
	return c.extract[len(c.extract)-1].Prisms
}
