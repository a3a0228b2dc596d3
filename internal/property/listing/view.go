// Package listing computes the property listing page: facet options plus the
// filtered, sorted subset of the stored properties.
//
// The pipeline is a pure function of the raw list and a FilterState. It never
// fails on malformed records; missing fields simply stop matching filters and
// fall back to zero dates and unparsable prices when sorting.
package listing

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/pricing"
)

// SortMode selects the order of the visible listing.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// ParseSortMode maps a request value to a SortMode. Unknown values mean newest.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

// FilterState is the visitor's current selection.
type FilterState struct {
	Query    string
	Type     string // type key or "all"
	Bedrooms string // bedroom key or "all"
	Sort     SortMode

	// MinPrice and MaxPrice bound the price in crores, inclusive. The range
	// is only applied when at least one bound is set, and then excludes
	// properties whose price cannot be parsed.
	MinPrice *float64
	MaxPrice *float64
}

// View is the computed listing page.
type View struct {
	Properties []NormalizedProperty
	Facets     Facets
	// Total counts all properties before filtering.
	Total int
}

// ComputeListingView runs the whole pipeline over raw.
func ComputeListingView(raw []*domain.Property, state FilterState) View {
	normalized := NormalizeAll(raw)
	visible := Filter(normalized, state)
	Sort(visible, state.Sort)
	return View{
		Properties: visible,
		Facets:     BuildFacets(normalized),
		Total:      len(normalized),
	}
}

// Filter returns the items matching state, in input order.
func Filter(items []NormalizedProperty, state FilterState) []NormalizedProperty {
	query := key(state.Query)
	typeKey := selection(state.Type)
	bhkKey := selection(state.Bedrooms)
	priceRange := state.MinPrice != nil || state.MaxPrice != nil

	out := make([]NormalizedProperty, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(item.TitleKey, query) && !strings.Contains(item.LocationKey, query) {
			continue
		}
		if typeKey != AllOption && item.TypeKey != typeKey {
			continue
		}
		if bhkKey != AllOption && item.BHKKey != bhkKey {
			continue
		}
		if priceRange && !inRange(item.PriceCrores, state.MinPrice, state.MaxPrice) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Sort orders items in place. The sort is stable for every mode. Properties
// with an unparsable price go last for both price orders.
func Sort(items []NormalizedProperty, mode SortMode) {
	switch mode {
	case SortPriceAsc:
		slices.SortStableFunc(items, func(a, b NormalizedProperty) int {
			return comparePrice(a.PriceCrores, b.PriceCrores, false)
		})
	case SortPriceDesc:
		slices.SortStableFunc(items, func(a, b NormalizedProperty) int {
			return comparePrice(a.PriceCrores, b.PriceCrores, true)
		})
	default:
		slices.SortStableFunc(items, func(a, b NormalizedProperty) int {
			return cmp.Compare(b.CreatedAtMillis, a.CreatedAtMillis)
		})
	}
}

func comparePrice(a, b float64, desc bool) int {
	aok, bok := pricing.Valid(a), pricing.Valid(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	case desc:
		return cmp.Compare(b, a)
	default:
		return cmp.Compare(a, b)
	}
}

func inRange(price float64, lo, hi *float64) bool {
	if !pricing.Valid(price) {
		return false
	}
	if lo != nil && price < *lo {
		return false
	}
	if hi != nil && price > *hi {
		return false
	}
	return true
}

func selection(s string) string {
	k := key(s)
	if k == "" {
		return AllOption
	}
	return k
}
