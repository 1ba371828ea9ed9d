package token

import "fmt"

// Price is an amount in both currencies. Game prices use exactly one of them;
// balances use both.

type Price struct {
	Points int64 `json:"points" yaml:"points"`
	Prisms int64 `json:"prisms" yaml:"prisms"`
}

// ForDraws returns the price of n units.
func (p Price) ForDraws(n int) Price {
	if n <= 0 {
		return Price{}
	}
	return Price{Points: p.Points * int64(n), Prisms: p.Prisms * int64(n)}
}

// CoveredBy reports whether balance pays for p in both currencies.
func (p Price) CoveredBy(balance Price) bool {
	return balance.Points >= p.Points && balance.Prisms >= p.Prisms
}

// Shortfall returns how much of each currency balance lacks to pay p.
func (p Price) Shortfall(balance Price) Price {
	var s Price
	if d := p.Points - balance.Points; d > 0 {
		s.Points = d
	}
	if d := p.Prisms - balance.Prisms; d > 0 {
		s.Prisms = d
	}
	return s
}

// Single reports whether exactly one currency is charged.
func (p Price) Single() bool {
	return (p.Points > 0) != (p.Prisms > 0)
}

// IsZero reports whether nothing is charged.
func (p Price) IsZero() bool { return p.Points == 0 && p.Prisms == 0 }

func (p Price) String() string {
	switch {
	case p.Points > 0 && p.Prisms > 0:
		return fmt.Sprintf("%d points + %d prisms", p.Points, p.Prisms)
	case p.Prisms > 0:
		return fmt.Sprintf("%d prisms", p.Prisms)
	default:
		return fmt.Sprintf("%d points", p.Points)
	}
}
