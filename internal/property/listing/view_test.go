package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

func ids(items []NormalizedProperty) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func fptr(v float64) *float64 { return &v }

func sampleProperties() []*domain.Property {
	return []*domain.Property{
		{ID: "p1", Title: "Sea View Villa", Location: "Alibaug", Type: "Villa", BHK: "4", Price: "4.5 Cr", CreatedAt: "2024-03-01T10:00:00Z"},
		{ID: "p2", Title: "Skyline Heights", Location: "Mumbai, Andheri", Type: "Apartment", BHK: 2, Price: "85 L", CreatedAt: "2024-05-10T08:30:00.000Z"},
		{ID: "p3", Title: "Green Acres Plot", Location: "Pune", Type: "Plot", BHK: "", Price: "N/A", CreatedAt: nil},
		{ID: "p4", Title: "Palm Residency", Location: "Mumbai, Powai", Type: "apartment", BHK: "3", Price: "₹1.2 Cr", CreatedAt: "2023-12-25"},
		{ID: "p5", Title: "Studio Loft", Location: "Bengaluru", Type: " Studio ", BHK: 1.0, Price: 0.45, CreatedAt: "garbled"},
	}
}

func TestComputeListingView_Scenario(t *testing.T) {
	raw := []*domain.Property{
		{ID: "a", Type: "Villa", BHK: "3", Price: "1 Cr", CreatedAt: "2024-01-01"},
		{ID: "b", Type: "villa", BHK: "3", Price: "50 L", CreatedAt: "2024-06-01"},
	}

	view := ComputeListingView(raw, FilterState{})
	assert.Equal(t, []FacetOption{{Value: "all", Label: "All Types"}, {Value: "villa", Label: "Villa"}}, view.Facets.Types)
	assert.Equal(t, []string{"b", "a"}, ids(view.Properties))

	view = ComputeListingView(raw, FilterState{Sort: SortPriceAsc})
	assert.Equal(t, []string{"b", "a"}, ids(view.Properties))
}

func TestComputeListingView_NoFilterKeepsEverything(t *testing.T) {
	raw := sampleProperties()
	view := ComputeListingView(raw, FilterState{Query: "", Type: "all", Bedrooms: "all"})

	require.Len(t, view.Properties, len(raw))
	assert.Equal(t, len(raw), view.Total)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(view.Properties))
}

func TestComputeListingView_EmptyInput(t *testing.T) {
	view := ComputeListingView(nil, FilterState{Query: "villa", Sort: SortPriceDesc})

	assert.NotNil(t, view.Properties)
	assert.Empty(t, view.Properties)
	assert.Equal(t, 0, view.Total)
	assert.Equal(t, []FacetOption{{Value: "all", Label: "All Types"}}, view.Facets.Types)
	assert.Equal(t, []FacetOption{{Value: "all", Label: "All Bedrooms"}}, view.Facets.Bedrooms)
}

func TestComputeListingView_SkipsNilRecords(t *testing.T) {
	raw := []*domain.Property{nil, {ID: "x", Title: "Only"}, nil}
	view := ComputeListingView(raw, FilterState{})
	assert.Equal(t, []string{"x"}, ids(view.Properties))
	assert.Equal(t, 1, view.Total)
}

func TestFilter_Query(t *testing.T) {
	items := NormalizeAll(sampleProperties())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match", "villa", []string{"p1"}},
		{"location match", "mumbai", []string{"p2", "p4"}},
		{"trimmed and case-insensitive", "  PALM ", []string{"p4"}},
		{"no match", "goa", []string{}},
		{"empty passes", "", []string{"p1", "p2", "p3", "p4", "p5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(items, FilterState{Query: tt.query})))
		})
	}
}

func TestFilter_Facets(t *testing.T) {
	items := NormalizeAll(sampleProperties())

	assert.Equal(t, []string{"p2", "p4"}, ids(Filter(items, FilterState{Type: "Apartment"})))
	assert.Equal(t, []string{"p5"}, ids(Filter(items, FilterState{Type: "studio"})))
	assert.Equal(t, []string{"p2"}, ids(Filter(items, FilterState{Bedrooms: "2"})))
	assert.Equal(t, []string{"p4"}, ids(Filter(items, FilterState{Type: "apartment", Bedrooms: "3"})))
	assert.Len(t, Filter(items, FilterState{Type: "all", Bedrooms: "ALL"}), 5)
}

func TestFilter_Idempotent(t *testing.T) {
	items := NormalizeAll(sampleProperties())
	state := FilterState{Type: "apartment"}

	once := Filter(items, state)
	twice := Filter(once, state)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilter_PriceRange(t *testing.T) {
	items := NormalizeAll(sampleProperties())

	t.Run("inclusive bounds", func(t *testing.T) {
		got := Filter(items, FilterState{MinPrice: fptr(0.85), MaxPrice: fptr(1.2)})
		assert.Equal(t, []string{"p2", "p4"}, ids(got))
	})
	t.Run("only minimum", func(t *testing.T) {
		got := Filter(items, FilterState{MinPrice: fptr(1)})
		assert.Equal(t, []string{"p1", "p4"}, ids(got))
	})
	t.Run("only maximum", func(t *testing.T) {
		got := Filter(items, FilterState{MaxPrice: fptr(0.5)})
		assert.Equal(t, []string{"p5"}, ids(got))
	})
	t.Run("active range drops unparsable prices", func(t *testing.T) {
		got := Filter(items, FilterState{MinPrice: fptr(0), MaxPrice: fptr(100)})
		assert.NotContains(t, ids(got), "p3")
	})
	t.Run("inactive range keeps unparsable prices", func(t *testing.T) {
		assert.Contains(t, ids(Filter(items, FilterState{})), "p3")
	})
}

func TestSort_Newest(t *testing.T) {
	items := NormalizeAll(sampleProperties())
	Sort(items, SortNewest)

	// p3 and p5 have no usable date and keep their input order at the end.
	assert.Equal(t, []string{"p2", "p1", "p4", "p3", "p5"}, ids(items))
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].CreatedAtMillis, items[i].CreatedAtMillis)
	}
}

func TestSort_NewestIsStable(t *testing.T) {
	raw := []*domain.Property{
		{ID: "a", CreatedAt: "2024-01-01"},
		{ID: "b", CreatedAt: "2024-02-01"},
		{ID: "c", CreatedAt: "2024-01-01"},
		{ID: "d", CreatedAt: "2024-01-01"},
	}
	view := ComputeListingView(raw, FilterState{Sort: SortNewest})
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(view.Properties))
}

func TestSort_PriceUnparsableGoesLast(t *testing.T) {
	raw := []*domain.Property{
		{ID: "na", Price: "N/A"},
		{ID: "mid", Price: "1 Cr"},
		{ID: "missing"},
		{ID: "low", Price: "40 L"},
		{ID: "high", Price: "2.25 Cr"},
	}

	asc := ComputeListingView(raw, FilterState{Sort: SortPriceAsc})
	assert.Equal(t, []string{"low", "mid", "high", "na", "missing"}, ids(asc.Properties))
	for i := 1; i < 3; i++ {
		assert.LessOrEqual(t, asc.Properties[i-1].PriceCrores, asc.Properties[i].PriceCrores)
	}

	desc := ComputeListingView(raw, FilterState{Sort: SortPriceDesc})
	assert.Equal(t, []string{"high", "mid", "low", "na", "missing"}, ids(desc.Properties))
}

func TestBuildFacets(t *testing.T) {
	facets := BuildFacets(NormalizeAll(sampleProperties()))

	assert.Equal(t, []FacetOption{
		{Value: "all", Label: "All Types"},
		{Value: "apartment", Label: "Apartment"},
		{Value: "plot", Label: "Plot"},
		{Value: "studio", Label: "Studio"},
		{Value: "villa", Label: "Villa"},
	}, facets.Types)

	assert.Equal(t, []FacetOption{
		{Value: "all", Label: "All Bedrooms"},
		{Value: "1", Label: "1"},
		{Value: "2", Label: "2"},
		{Value: "3", Label: "3"},
		{Value: "4", Label: "4"},
	}, facets.Bedrooms)
}

func TestBuildFacets_BedroomOrdering(t *testing.T) {
	t.Run("numeric when every key is a number", func(t *testing.T) {
		raw := []*domain.Property{{ID: "a", BHK: "10"}, {ID: "b", BHK: "2"}, {ID: "c", BHK: "3"}}
		facets := BuildFacets(NormalizeAll(raw))
		assert.Equal(t, []string{"all", "2", "3", "10"}, values(facets.Bedrooms))
	})
	t.Run("alphabetical otherwise", func(t *testing.T) {
		raw := []*domain.Property{{ID: "a", BHK: "10"}, {ID: "b", BHK: "Studio"}, {ID: "c", BHK: "2"}}
		facets := BuildFacets(NormalizeAll(raw))
		assert.Equal(t, []string{"all", "10", "2", "studio"}, values(facets.Bedrooms))
	})
}

func TestBuildFacets_NoDuplicatesOrEmptyValues(t *testing.T) {
	raw := []*domain.Property{
		{ID: "a", Type: "Villa"},
		{ID: "b", Type: "VILLA"},
		{ID: "c", Type: ""},
		{ID: "d", Type: "   "},
		{ID: "e", Type: "All"},
		{ID: "f", Type: "villa "},
	}
	facets := BuildFacets(NormalizeAll(raw))

	assert.Equal(t, []FacetOption{{Value: "all", Label: "All Types"}, {Value: "villa", Label: "Villa"}}, facets.Types)
	seen := map[string]bool{}
	for _, o := range facets.Types {
		assert.False(t, seen[o.Value], "duplicate %q", o.Value)
		assert.NotEmpty(t, o.Value)
		seen[o.Value] = true
	}
}

func values(opts []FacetOption) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortMode("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSortMode(" PRICE-DESC "))
	assert.Equal(t, SortNewest, ParseSortMode("newest"))
	assert.Equal(t, SortNewest, ParseSortMode(""))
	assert.Equal(t, SortNewest, ParseSortMode("popular"))
}

type storeTimestamp int64

func (s storeTimestamp) Time() time.Time { return time.UnixMilli(int64(s)).UTC() }

func TestNormalize(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt any
		want      int64
	}{
		{"time value", created, created.UnixMilli()},
		{"store timestamp", storeTimestamp(created.UnixMilli()), created.UnixMilli()},
		{"rfc3339 string", "2024-06-01T12:00:00Z", created.UnixMilli()},
		{"rfc3339 with millis", "2024-06-01T12:00:00.000Z", created.UnixMilli()},
		{"date only", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"epoch millis", created.UnixMilli(), created.UnixMilli()},
		{"garbled", "yesterday", 0},
		{"missing", nil, 0},
		{"zero time", time.Time{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(&domain.Property{ID: "x", CreatedAt: tt.createdAt})
			assert.Equal(t, tt.want, n.CreatedAtMillis)
		})
	}

	n := Normalize(&domain.Property{ID: "k", Title: "  Sea View ", Location: "GOA", Type: " Villa", BHK: 3, Price: "1.5 Cr"})
	assert.Equal(t, "sea view", n.TitleKey)
	assert.Equal(t, "goa", n.LocationKey)
	assert.Equal(t, "villa", n.TypeKey)
	assert.Equal(t, "Villa", n.TypeLabel)
	assert.Equal(t, "3", n.BHKKey)
	assert.Equal(t, "3", n.BHKLabel)
	assert.InDelta(t, 1.5, n.PriceCrores, 1e-12)
	assert.Equal(t, "k", n.ID)

	empty := Normalize(&domain.Property{ID: "e"})
	assert.Empty(t, empty.TypeKey)
	assert.Empty(t, empty.BHKKey)
}

func TestFilter_SmallIntegerBedrooms(t *testing.T) {
	items := NormalizeAll([]*domain.Property{
		{ID: "a", BHK: int16(3)},
		{ID: "b", BHK: uint8(2)},
		{ID: "c", BHK: "3"},
	})

	assert.Equal(t, []string{"a", "c"}, ids(Filter(items, FilterState{Bedrooms: "3"})))
	assert.Equal(t, []string{"b"}, ids(Filter(items, FilterState{Bedrooms: "2"})))

	var values []string
	for _, o := range BuildFacets(items).Bedrooms {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{AllOption, "2", "3"}, values)
}

func TestFilter_PriceRangeTrailingDotUnit(t *testing.T) {
	items := NormalizeAll([]*domain.Property{
		{ID: "a", Price: "50. L"},
		{ID: "b", Price: "2 Cr"},
	})
	assert.Equal(t, []string{"a"}, ids(Filter(items, FilterState{MaxPrice: fptr(1)})))
}
