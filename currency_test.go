package wealthdash

import (
	"testing"

	"github.com/etnz/wealthdash/date"
	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestBuildRateIndex(t *testing.T) {
	got := BuildRateIndex(date.MustParse("2019-01-01"), []*float64{f(0.73529), nil, nil, f(0.73303)})

	assert.Equal(t, RateIndex{
		date.MustParse("2019-01-01"): 0.73529,
		date.MustParse("2019-01-04"): 0.73303,
	}, got)
}

func TestRateIndex_ToCAD(t *testing.T) {
	rates := RateIndex{date.MustParse("2019-01-01"): 0.8}

	testCases := []struct {
		name string
		on   string
		in   Money
		want Money
	}{
		{"rate available", "2019-01-01", M(100, "USD"), M(125, "CAD")},
		{"missing rate is fail-open", "2019-01-02", M(100, "USD"), M(100, "CAD")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := rates.ToCAD(date.MustParse(tc.on), tc.in)
			assert.True(t, got.Equal(tc.want), "ToCAD() = %v, want %v", got, tc.want)
		})
	}
}

func TestRateIndex_ToCAD_NoRateForDay(t *testing.T) {
	rates := RateIndex{date.MustParse("2019-01-01"): 0.735}
	got := rates.ToCAD(date.MustParse("2019-01-02"), M(100, "USD"))
	assert.True(t, got.Decimal().Equal(M(100, "").Decimal()))
}

func TestRateIndex_Normalize(t *testing.T) {
	rates := RateIndex{date.MustParse("2019-01-01"): 0.5}
	on := date.MustParse("2019-01-01")

	assert.True(t, rates.Normalize(on, M(10, "usd")).Equal(M(20, "CAD")))
	assert.True(t, rates.Normalize(on, M(10, "cad")).Equal(M(10, "CAD")))
	// a zero rate is treated as missing
	zero := RateIndex{on: 0}
	assert.True(t, zero.Normalize(on, M(10, "USD")).Equal(M(10, "CAD")))
}
