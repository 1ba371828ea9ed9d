package pricing

import (
	"sort"

	"github.com/xtding233/gem-gacha/internal/token"
)

// Volume names sold in the shop.
const (
	VolumeMulti  = "multi"
	VolumeChorus = "chorus"
	VolumeLux    = "lux"
)

// Offer is a one-time purchasable account upgrade.
type Offer struct {
	Volume string      // e.g., "multi"
	Price  token.Price // exactly one currency is charged
}

// Catalog lists the volumes on sale.
type Catalog struct {
	offers map[string]Offer
}

// NewCatalog indexes offers by volume name; later duplicates win.
func NewCatalog(offers ...Offer) Catalog {
	c := Catalog{offers: make(map[string]Offer, len(offers))}
	for _, o := range offers {
		c.offers[o.Volume] = o
	}
	return c
}

// Lookup returns the offer for a volume.
func (c Catalog) Lookup(volume string) (Offer, bool) {
	o, ok := c.offers[volume]
	return o, ok
}

// Names returns the volume names in sorted order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.offers))
	for name := range c.offers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Quote summarizes whether a balance can pay for an offer.
type Quote struct {
	Offer     Offer
	CanAfford bool
	Shortfall token.Price
}

// Quote prices volume against balance.
func (c Catalog) Quote(volume string, balance token.Price) (Quote, bool) {
	o, ok := c.Lookup(volume)
	if !ok {
		return Quote{}, false
	}
	return Quote{
		Offer:     o,
		CanAfford: o.Price.CoveredBy(balance),
		Shortfall: o.Price.Shortfall(balance),
	}, true
}
