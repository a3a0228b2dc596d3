package mongodb

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

// propertyDocument is the stored shape of a property. Field values are
// decoded loosely because older records were written by hand and by other
// clients: titles may be numbers, flags may be strings, and so on. Unknown
// fields land in Extra and are written back untouched.
type propertyDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       interface{}        `bson:"title,omitempty"`
	Location    interface{}        `bson:"location,omitempty"`
	Type        interface{}        `bson:"type,omitempty"`
	BHK         interface{}        `bson:"bhk,omitempty"`
	Price       interface{}        `bson:"price,omitempty"`
	CreatedAt   interface{}        `bson:"createdAt,omitempty"`
	UpdatedAt   interface{}        `bson:"updatedAt,omitempty"`
	Image       interface{}        `bson:"image,omitempty"`
	Images      interface{}        `bson:"images,omitempty"`
	Area        interface{}        `bson:"area,omitempty"`
	Description interface{}        `bson:"description,omitempty"`
	Status      interface{}        `bson:"status,omitempty"`
	Featured    interface{}        `bson:"featured,omitempty"`
	ShowOnMap   interface{}        `bson:"showOnMap,omitempty"`
	MapLink     interface{}        `bson:"mapLink,omitempty"`
	Extra       bson.M             `bson:",inline"`
}

var reservedPropertyFields = map[string]bool{
	"_id": true, "title": true, "location": true, "type": true, "bhk": true, "price": true,
	"createdAt": true, "updatedAt": true, "image": true, "images": true, "area": true,
	"description": true, "status": true, "featured": true, "showOnMap": true, "mapLink": true,
}

func (d *propertyDocument) toDomain() *domain.Property {
	p := &domain.Property{
		ID:          d.ID.Hex(),
		Title:       domain.Text(d.Title),
		Location:    domain.Text(d.Location),
		Type:        domain.Text(d.Type),
		BHK:         plain(d.BHK),
		Price:       plain(d.Price),
		CreatedAt:   plain(d.CreatedAt),
		UpdatedAt:   plain(d.UpdatedAt),
		Image:       domain.Text(d.Image),
		Images:      strings_(d.Images),
		Area:        domain.Text(d.Area),
		Description: domain.Text(d.Description),
		Status:      domain.Text(d.Status),
		Featured:    truthy(d.Featured),
		ShowOnMap:   truthy(d.ShowOnMap),
		MapLink:     domain.Text(d.MapLink),
	}
	if len(d.Extra) > 0 {
		p.Attributes = make(map[string]any, len(d.Extra))
		for k, v := range d.Extra {
			p.Attributes[k] = plain(v)
		}
	}
	return p
}

func fromDomainProperty(p *domain.Property) (*propertyDocument, error) {
	doc := &propertyDocument{
		Title:       p.Title,
		Location:    p.Location,
		Type:        p.Type,
		BHK:         p.BHK,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Image:       p.Image,
		Images:      append([]string{}, p.Images...),
		Area:        p.Area,
		Description: p.Description,
		Status:      p.Status,
		Featured:    p.Featured,
		ShowOnMap:   p.ShowOnMap,
		MapLink:     p.MapLink,
	}
	if p.ID != "" {
		id, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		doc.ID = id
	}
	if len(p.Attributes) > 0 {
		doc.Extra = make(bson.M, len(p.Attributes))
		for k, v := range p.Attributes {
			if reservedPropertyFields[k] || k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
				continue
			}
			doc.Extra[k] = v
		}
	}
	return doc, nil
}

type queryDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Message   string             `bson:"message"`
	Image     string             `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *queryDocument) toDomain() *domain.Query {
	return &domain.Query{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
	}
}

func fromDomainQuery(q *domain.Query) *queryDocument {
	return &queryDocument{
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		Message:   q.Message,
		Image:     q.Image,
		CreatedAt: q.CreatedAt,
	}
}

type viewDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"userId"`
	UserEmail     string             `bson:"userEmail"`
	UserName      string             `bson:"userName"`
	PropertyID    string             `bson:"propertyId"`
	PropertyTitle string             `bson:"propertyTitle"`
	ViewedAt      time.Time          `bson:"viewedAt"`
}

func (d *viewDocument) toDomain() *domain.PropertyView {
	return &domain.PropertyView{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		UserEmail:     d.UserEmail,
		UserName:      d.UserName,
		PropertyID:    d.PropertyID,
		PropertyTitle: d.PropertyTitle,
		ViewedAt:      d.ViewedAt,
	}
}

func fromDomainView(v *domain.PropertyView) *viewDocument {
	return &viewDocument{
		UserID:        v.UserID,
		UserEmail:     v.UserEmail,
		UserName:      v.UserName,
		PropertyID:    v.PropertyID,
		PropertyTitle: v.PropertyTitle,
		ViewedAt:      v.ViewedAt,
	}
}

// plain converts driver-specific values into ordinary Go values so that they
// survive JSON encoding and the listing pipeline.
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

func strings_(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case primitive.A:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := domain.Text(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	case int32:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}
