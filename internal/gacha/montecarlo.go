package gacha

import (
	"math"
	"sort"
)

// Distribution summarizes how often each grade came up over a run.
type Distribution struct {
	DrawType string            `json:"drawType"`
	Trials   int               `json:"trials"`
	Counts   map[Grade]int     `json:"counts"`
	Observed map[Grade]float64 `json:"observed"` // percent of trials
	Expected map[Grade]float64 `json:"expected"` // percent from the weight table
}

// Stats summarizes integer samples.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// Simulate runs trials draws of drawType and tallies grades.
func Simulate(e *Engine, drawType string, trials int, rng RandomSource) (Distribution, error) {
	w, ok := e.Weights(drawType)
	if !ok {
		return Distribution{}, ErrUnknownDrawType
	}
	d := Distribution{
		DrawType: drawType,
		Trials:   trials,
		Counts:   make(map[Grade]int, 5),
		Observed: make(map[Grade]float64, 5),
		Expected: make(map[Grade]float64, 5),
	}
	total := w.Total()
	for _, g := range AllGrades() {
		d.Counts[g] = 0
		d.Expected[g] = w.Of(g) / total * 100
	}
	if trials <= 0 {
		return d, nil
	}
	for i := 0; i < trials; i++ {
		r, err := e.Draw(drawType, rng)
		if err != nil {
			return Distribution{}, err
		}
		d.Counts[r.Grade]++
	}
	for g, c := range d.Counts {
		d.Observed[g] = float64(c) / float64(trials) * 100
	}
	return d, nil
}

// DrawsUntil measures how many draws it takes to pull a gem of grade
// minGrade or rarer. A trial that never hits within maxDraws counts as maxDraws.
func DrawsUntil(e *Engine, drawType string, minGrade Grade, trials, maxDraws int, rng RandomSource) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	if _, ok := e.Weights(drawType); !ok {
		return Stats{}, ErrUnknownDrawType
	}
	samples := make([]int, trials)
	for i := range samples {
		draws := 0
		for draws < maxDraws {
			draws++
			r, err := e.Draw(drawType, rng)
			if err != nil {
				return Stats{}, err
			}
			if r.Grade.Rank() >= minGrade.Rank() {
				break
			}
		}
		samples[i] = draws
	}
	return calcStats(samples), nil
}
