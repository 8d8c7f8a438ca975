package vap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdaptive(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		tick   float64
		target int
		want   int
	}{
		{"400 ticks over 50 levels", 100, 0.25, 50, 8},
		{"zero range floors to one", 0, 0.25, 50, 1},
		{"below half a level", 5, 0.25, 50, 1},
		{"half rounds away from zero", 125, 1, 50, 3},
		{"just under half", 124, 1, 50, 2},
		{"fine tick", 0.0150, 0.00001, 50, 30},
		{"few levels", 10, 0.25, 4, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PriceRange{Lowest: 4000, Highest: 4000 + tt.width, Bars: 1}
			assert.Equal(t, tt.want, Adaptive(r, tt.tick, tt.target))
		})
	}
}

func TestAdaptiveAlwaysAtLeastOne(t *testing.T) {
	for _, tick := range []float64{0.00001, 0.01, 0.25, 1, 50} {
		for width := 0.0; width < 500; width += 3.7 {
			r := PriceRange{Lowest: 10, Highest: 10 + width}
			assert.GreaterOrEqual(t, Adaptive(r, tick, 50), 1)
		}
	}
}

func TestAdaptiveMonotonic(t *testing.T) {
	prev := 0
	for width := 0.0; width <= 2000; width += 0.25 {
		m := Adaptive(PriceRange{Lowest: 3000, Highest: 3000 + width}, 0.25, 50)
		if !assert.GreaterOrEqual(t, m, prev, "width %v", width) {
			return
		}
		prev = m
	}
}

func TestLegacy(t *testing.T) {
	tests := []struct {
		name       string
		maxSpread  float64
		meanSpread float64
		tick       float64
		magic      float64
		useAverage bool
		want       int
	}{
		// round(2.0*0.3*0.05) = round(0.03) = 0, floored to 1
		{"tick override then floor", 2.0, 1.0, 0.05, 0.3, false, 1},
		{"override discards bar average", 2.0, 100.0, 0.05, 0.3, true, 1},
		{"override on index futures", 40, 10, 0.25, 0.3, false, 3},
		{"no override at exactly 0.01", 0.9, 0.45, 0.01, 0.3, false, 3},
		{"bar average without override", 0.9, 0.45, 0.01, 0.3, true, 2},
		{"forex tick", 0.0021, 0.0012, 0.00001, 0.0003, false, 7},
		{"zero spread floors", 0, 0, 0.001, 0.3, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PriceRange{MaxSpread: tt.maxSpread, MeanSpread: tt.meanSpread, Bars: 1}
			assert.Equal(t, tt.want, Legacy(r, tt.tick, tt.magic, tt.useAverage))
		})
	}
}

func TestCalculateSelectsAlgorithm(t *testing.T) {
	r := PriceRange{Lowest: 0, Highest: 100, MaxSpread: 40, MeanSpread: 10, Bars: 10}

	s := DefaultSettings(10)
	assert.Equal(t, 8, Calculate(r, s, 0.25))

	s.Adaptive = false
	assert.Equal(t, ModeLegacy, s.Mode())
	assert.Equal(t, 3, Calculate(r, s, 0.25))
}

func TestRoundSaturates(t *testing.T) {
	assert.Equal(t, 0, round(math.NaN()))
	assert.Equal(t, math.MaxInt32, round(math.Inf(1)))
	assert.Equal(t, math.MinInt32, round(math.Inf(-1)))
	assert.Equal(t, -3, round(-2.5))
	assert.Equal(t, 1, floor(round(-2.5)))
	assert.Equal(t, 1, floor(round(math.NaN())))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "adaptive", ModeAdaptive.String())
	assert.Equal(t, "legacy", ModeLegacy.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
