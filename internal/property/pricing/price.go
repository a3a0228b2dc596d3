// Package pricing turns the free-form prices operators type into a single
// comparable number expressed in crores.
//
// Unparsable input yields NaN. Callers test results with Valid rather than
// comparing against zero, since "0" is a legitimate (if odd) price.
package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyPattern   = regexp.MustCompile(`(?i)₹|rs\.?|inr`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	magnitudePattern  = regexp.MustCompile(`\d+\.?\d*|\.\d+`)
	unitPattern       = regexp.MustCompile(`^\s*\.?\s*(crores|crore|cr|lakhs|lakh|lacs|lac|l|k)\b`)
)

// ParsePrice converts a stored price to crores. Numbers pass through as they
// are. Strings such as "1.5 Cr", "₹85 L", "Rs. 50,000" or "50 K" are cleaned
// and scaled by their unit; a bare number is taken to already be in crores.
// Every other input returns NaN.
func ParsePrice(input any) float64 {
	switch v := input.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		if f, ok := ParseText(v); ok {
			return f
		}
	}
	return math.NaN()
}

// ParseText is the string form of ParsePrice. ok is false when s holds no
// usable magnitude.
func ParseText(s string) (value float64, ok bool) {
	cleaned := currencyPattern.ReplaceAllString(s, " ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ToLower(strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " ")))
	if cleaned == "" {
		return math.NaN(), false
	}

	loc := magnitudePattern.FindStringIndex(cleaned)
	if loc == nil {
		return math.NaN(), false
	}
	// "50." is a whole 50 whose unit follows the dot
	magnitude, err := strconv.ParseFloat(strings.TrimSuffix(cleaned[loc[0]:loc[1]], "."), 64)
	if err != nil || math.IsInf(magnitude, 0) || math.IsNaN(magnitude) {
		return math.NaN(), false
	}

	unit := unitPattern.FindStringSubmatch(cleaned[loc[1]:])
	if unit == nil {
		return magnitude, true
	}
	switch unit[1] {
	case "l", "lac", "lacs", "lakh", "lakhs":
		return magnitude / 100, true
	case "k":
		return magnitude / 10000, true
	default:
		return magnitude, true
	}
}

// Valid reports whether v is a parsed price rather than the NaN sentinel.
func Valid(v float64) bool {
	return !math.IsNaN(v)
}
