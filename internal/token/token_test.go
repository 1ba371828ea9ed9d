package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForDraws(t *testing.T) {
	tests := []struct {
		price Price
		n     int
		want  Price
	}{
		{Price{Points: 10}, 1, Price{Points: 10}},
		{Price{Points: 10}, 10, Price{Points: 100}},
		{Price{Prisms: 30}, 3, Price{Prisms: 90}},
		{Price{Prisms: 5}, 0, Price{}},
		{Price{Prisms: 5}, -2, Price{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.price.ForDraws(tt.n), "%v x %d", tt.price, tt.n)
	}
}

func TestCoveredByAndShortfall(t *testing.T) {
	cost := Price{Prisms: 40}
	assert.True(t, cost.CoveredBy(Price{Points: 0, Prisms: 40}))
	assert.False(t, cost.CoveredBy(Price{Points: 5000, Prisms: 39}))
	assert.Equal(t, Price{Prisms: 1}, cost.Shortfall(Price{Points: 5000, Prisms: 39}))

	multi := Price{Points: 100000}
	assert.Equal(t, Price{Points: 99000}, multi.Shortfall(Price{Points: 1000, Prisms: 10}))
	assert.Equal(t, Price{}, multi.Shortfall(Price{Points: 200000}))
}

func TestSingleAndString(t *testing.T) {
	assert.True(t, Price{Points: 10}.Single())
	assert.True(t, Price{Prisms: 10}.Single())
	assert.False(t, Price{Points: 1, Prisms: 1}.Single())
	assert.False(t, Price{}.Single())
	assert.True(t, Price{}.IsZero())

	assert.Equal(t, "100 prisms", Price{Prisms: 100}.String())
	assert.Equal(t, "55000 points", Price{Points: 55000}.String())
	assert.Equal(t, "1 points + 2 prisms", Price{Points: 1, Prisms: 2}.String())
}
