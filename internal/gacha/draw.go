package gacha

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDrawType = errors.New("unknown draw type")
	ErrEmptyGrade      = errors.New("grade has no candidate gems")
)

// Weights holds the relative chance of each grade for one draw type.
// The stock tables sum to 100 but any positive sum works.
type Weights struct {
	Unique    float64 `json:"unique"`
	Legendary float64 `json:"legendary"`
	Epic      float64 `json:"epic"`
	Rare      float64 `json:"rare"`
	Common    float64 `json:"common"`
}

// Of returns the weight for g.
func (w Weights) Of(g Grade) float64 {
	switch g {
	case GradeUnique:
		return w.Unique
	case GradeLegendary:
		return w.Legendary
	case GradeEpic:
		return w.Epic
	case GradeRare:
		return w.Rare
	case GradeCommon:
		return w.Common
	}
	return 0
}

// Total returns the sum of all five weights.
func (w Weights) Total() float64 {
	return w.Unique + w.Legendary + w.Epic + w.Rare + w.Common
}

// PickGrade maps r in [0, w.Total()) to a grade. Thresholds accumulate
// unique -> legendary -> epic -> rare -> common and the first cumulative sum
// exceeding r wins; anything left over (float drift) lands on common.
func PickGrade(w Weights, r float64) Grade {
	var acc float64
	for _, g := range drawOrder {
		acc += w.Of(g)
		if r < acc {
			return g
		}
	}
	return GradeCommon
}

// DrawGrade samples one grade from w.
func DrawGrade(w Weights, rng RandomSource) Grade {
	if rng == nil {
		rng = DefaultRNG()
	}
	return PickGrade(w, rng.Float64()*w.Total())
}

// Result is one gem pulled from a draw.
type Result struct {
	GemID int   `json:"gemId"`
	Grade Grade `json:"grade"`
}

// Engine samples gems for named draw types. It is immutable once built.
type Engine struct {
	rates map[string]Weights
	pool  map[Grade][]int
}

// NewEngine validates the tables and builds an Engine.
// pool maps each grade to its candidate gem ids.
func NewEngine(rates map[string]Weights, pool map[Grade][]int) (*Engine, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no draw types", ErrInvalidWeights)
	}
	for name, w := range rates {
		if err := validateWeights(w); err != nil {
			return nil, fmt.Errorf("draw type %q: %w", name, err)
		}
	}
	for _, g := range AllGrades() {
		if len(pool[g]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyGrade, g)
		}
	}
	e := &Engine{
		rates: make(map[string]Weights, len(rates)),
		pool:  make(map[Grade][]int, len(pool)),
	}
	for k, v := range rates {
		e.rates[k] = v
	}
	for g, ids := range pool {
		e.pool[g] = append([]int(nil), ids...)
	}
	return e, nil
}

// Weights returns the table for drawType.
func (e *Engine) Weights(drawType string) (Weights, bool) {
	w, ok := e.rates[drawType]
	return w, ok
}

// Candidates returns the gem ids a grade can yield.
func (e *Engine) Candidates(g Grade) []int {
	return append([]int(nil), e.pool[g]...)
}

// Draw samples a grade for drawType then picks uniformly among its gems.
func (e *Engine) Draw(drawType string, rng RandomSource) (Result, error) {
	w, ok := e.rates[drawType]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownDrawType, drawType)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	g := DrawGrade(w, rng)
	ids := e.pool[g]
	return Result{GemID: ids[rng.IntN(len(ids))], Grade: g}, nil
}
