package wealthdash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	closed := []ClosedPosition{
		{Symbol: "A", PnL: M(100, "CAD"), PnLRatio: 10},
		{Symbol: "B", PnL: M(-50, "CAD"), PnLRatio: -20},
		{Symbol: "C", PnL: M(20, "CAD"), PnLRatio: 40},
		{Symbol: "D", PnL: M(0, "CAD"), PnLRatio: 0},
	}

	s := Summarize(closed)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assertMoney(t, 70, s.TotalPnL)
	assert.True(t, s.WinRate().Equal(50))
	assert.True(t, s.MeanRatio.Equal(7.5))
	// sample standard deviation of 10, -20, 40, 0
	assert.True(t, s.StdDevRatio.Equal(Percent(math.Sqrt(1875.0/3))), "std %v", s.StdDevRatio)
	assert.Equal(t, "A", s.Best.Symbol)
	assert.Equal(t, "B", s.Worst.Symbol)
}

func TestSummarize_Edges(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, Percent(0), empty.WinRate())
	assert.True(t, empty.TotalPnL.IsZero())

	one := Summarize([]ClosedPosition{{Symbol: "A", PnL: M(-1, "CAD"), PnLRatio: -5}})
	assert.True(t, one.MeanRatio.Equal(-5))
	assert.Equal(t, Percent(0), one.StdDevRatio)
	assert.Equal(t, "A", one.Best.Symbol)
	assert.Equal(t, "A", one.Worst.Symbol)
}
