package gacha

import (
	"errors"
	"math"
)

var ErrInvalidWeights = errors.New("invalid grade weights; must be finite, >= 0, positive sum")

func validateWeights(w Weights) error {
	for _, g := range AllGrades() {
		p := w.Of(g)
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return ErrInvalidWeights
		}
	}
	if w.Total() <= 0 {
		return ErrInvalidWeights
	}
	return nil
}

// ValidateWeights checks a weight table without building an Engine.
func ValidateWeights(w Weights) error { return validateWeights(w) }
