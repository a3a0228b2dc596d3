package listing

import (
	"math"
	"strings"
	"time"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/pricing"
)

// NormalizedProperty is a stored property with the comparison keys the
// pipeline needs. It is rebuilt on every run and never persisted.
type NormalizedProperty struct {
	*domain.Property

	TitleKey    string
	LocationKey string
	TypeKey     string
	BHKKey      string

	TypeLabel string
	BHKLabel  string

	// CreatedAtMillis is 0 when the creation time is missing or unreadable.
	CreatedAtMillis int64
	// PriceCrores is NaN when the price cannot be parsed.
	PriceCrores float64
}

var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize derives the comparison keys of p.
func Normalize(p *domain.Property) NormalizedProperty {
	typeLabel := strings.TrimSpace(p.Type)
	bhkLabel := strings.TrimSpace(domain.Text(p.BHK))
	return NormalizedProperty{
		Property:        p,
		TitleKey:        key(p.Title),
		LocationKey:     key(p.Location),
		TypeKey:         strings.ToLower(typeLabel),
		BHKKey:          strings.ToLower(bhkLabel),
		TypeLabel:       typeLabel,
		BHKLabel:        bhkLabel,
		CreatedAtMillis: createdAtMillis(p.CreatedAt),
		PriceCrores:     pricing.ParsePrice(p.Price),
	}
}

// NormalizeAll normalizes raw in order. Nil entries are skipped.
func NormalizeAll(raw []*domain.Property) []NormalizedProperty {
	out := make([]NormalizedProperty, 0, len(raw))
	for _, p := range raw {
		if p == nil {
			continue
		}
		out = append(out, Normalize(p))
	}
	return out
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func createdAtMillis(v any) int64 {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	case *time.Time:
		if t == nil || t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	case interface{ Time() time.Time }:
		// store-native timestamps such as primitive.DateTime
		tt := t.Time()
		if tt.IsZero() {
			return 0
		}
		return tt.UnixMilli()
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		for _, layout := range createdAtLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UnixMilli()
			}
		}
	}
	return 0
}
