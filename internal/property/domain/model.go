package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Property statuses offered by the operator panel. Stored values are free text,
// so other strings may still appear on older records.
const (
	StatusReadyToMove       = "Ready to Move"
	StatusUnderConstruction = "Under Construction"
)

const (
	// DefaultPropertyType is applied when a property is created without a type.
	DefaultPropertyType = "Apartment"
	// MaxImagesPerProperty caps the images gallery of one property.
	MaxImagesPerProperty = 10
	// AnonymousVisitor is the user name recorded for views without a signed-in visitor.
	AnonymousVisitor = "Anonymous"
)

// Property is a listing as it is stored.
//
// BHK, Price and CreatedAt hold whatever the store returned: operators have
// entered bedrooms as "3" or 3, prices as "1.5 Cr" or 15000000, and older
// records carry store timestamps instead of RFC 3339 strings. Readers must
// tolerate every shape. Attributes keeps stored fields this service does not
// know about so that updates never drop them.
type Property struct {
	ID       string
	Title    string
	Location string
	Type     string
	BHK      any
	Price    any

	CreatedAt any
	UpdatedAt any

	Image       string
	Images      []string
	Area        string
	Description string
	Status      string
	Featured    bool
	ShowOnMap   bool
	MapLink     string

	Attributes map[string]any
}

// Query is a contact form submission.
type Query struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	Image     string
	CreatedAt time.Time
}

// PropertyView is one entry of the property view log.
type PropertyView struct {
	ID            string
	UserID        string
	UserEmail     string
	UserName      string
	PropertyID    string
	PropertyTitle string
	ViewedAt      time.Time
}

// Stats summarises the collections for the operator dashboard.
type Stats struct {
	Properties int64
	Queries    int64
	Views      int64
}

// Text renders a loosely typed stored value as text. Absent values and
// composite values render as the empty string.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	default:
		return ""
	}
}
