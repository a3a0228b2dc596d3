package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice_Units(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"crore short", "1.5 Cr", 1.5},
		{"crore no space", "2.5cr", 2.5},
		{"crores long", "₹ 1.25 Crores", 1.25},
		{"lakh short with rupee glyph", "₹85 L", 0.85},
		{"lakhs", "75 lakhs", 0.75},
		{"lac with inr", "INR 45 Lac", 0.45},
		{"thousand", "50 K", 0.005},
		{"thousand no space", "45k", 0.0045},
		{"rs prefix with dot", "Rs. 90 Lakh", 0.9},
		{"commas removed", "1,50,000", 150000},
		{"unitless taken as crores", "3", 3},
		{"range uses first magnitude", "1.5 Cr - 2 Cr", 1.5},
		{"unit must follow magnitude", "10 km", 10},
		{"leading decimal", ".5 cr", 0.5},
		{"trailing dot before lakh", "50. L", 0.5},
		{"trailing dot glued to lakh", "50.L", 0.5},
		{"trailing dot before thousand", "45.k", 0.0045},
		{"dot after unit", "85 L.", 0.85},
		{"glued rs prefix", "Rs50L", 0.5},
		{"int passes through", 42, 42},
		{"int64 passes through", int64(7), 7},
		{"float passes through", 0.85, 0.85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.in), 1e-12)
		})
	}
}

func TestParsePrice_Sentinel(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"no digits", "Price on request"},
		{"not available", "N/A"},
		{"currency only", "₹"},
		{"nil", nil},
		{"bool", true},
		{"slice", []string{"1 Cr"}},
		{"map", map[string]any{"price": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.in)
			assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
			assert.False(t, Valid(got))
		})
	}
}

func TestParseText(t *testing.T) {
	v, ok := ParseText("1.2 cr")
	assert.True(t, ok)
	assert.InDelta(t, 1.2, v, 1e-12)

	_, ok = ParseText("call us")
	assert.False(t, ok)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(0))
	assert.True(t, Valid(1.5))
	assert.False(t, Valid(math.NaN()))
}
