package listing

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// AllOption is the facet value that disables a facet filter.
const AllOption = "all"

// FacetOption is one selectable value of a facet.
type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Facets holds the option lists offered next to the listing.
type Facets struct {
	Types    []FacetOption `json:"types"`
	Bedrooms []FacetOption `json:"bedrooms"`
}

// BuildFacets collects the distinct type and bedroom keys of items. The first
// label seen for a key is kept, and the "all" option always comes first.
func BuildFacets(items []NormalizedProperty) Facets {
	types := distinct(items, func(p NormalizedProperty) (string, string) { return p.TypeKey, p.TypeLabel })
	slices.SortStableFunc(types, byLabel)

	bedrooms := distinct(items, func(p NormalizedProperty) (string, string) { return p.BHKKey, p.BHKLabel })
	if allNumeric(bedrooms) {
		slices.SortStableFunc(bedrooms, byNumericValue)
	} else {
		slices.SortStableFunc(bedrooms, byLabel)
	}

	return Facets{
		Types:    append([]FacetOption{{Value: AllOption, Label: "All Types"}}, types...),
		Bedrooms: append([]FacetOption{{Value: AllOption, Label: "All Bedrooms"}}, bedrooms...),
	}
}

func distinct(items []NormalizedProperty, field func(NormalizedProperty) (key, label string)) []FacetOption {
	seen := make(map[string]struct{}, len(items))
	var out []FacetOption
	for _, item := range items {
		k, label := field(item)
		// "all" would shadow the sentinel option
		if k == "" || k == AllOption {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, FacetOption{Value: k, Label: label})
	}
	return out
}

func byLabel(a, b FacetOption) int {
	if c := cmp.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
		return c
	}
	return cmp.Compare(a.Label, b.Label)
}

func byNumericValue(a, b FacetOption) int {
	x, _ := strconv.ParseFloat(a.Value, 64)
	y, _ := strconv.ParseFloat(b.Value, 64)
	return cmp.Compare(x, y)
}

func allNumeric(opts []FacetOption) bool {
	for _, o := range opts {
		if _, err := strconv.ParseFloat(o.Value, 64); err != nil {
			return false
		}
	}
	return true
}
