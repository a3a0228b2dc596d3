package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/usecase"
)

// knownPropertyFields are the keys owned by domain.Property. Any other key in
// a request body is kept as a free-form attribute.
var knownPropertyFields = map[string]bool{
	"id": true, "title": true, "location": true, "type": true, "bhk": true, "price": true,
	"createdAt": true, "updatedAt": true, "image": true, "images": true, "area": true,
	"description": true, "status": true, "featured": true, "showOnMap": true, "mapLink": true,
}

// propertyJSON renders p as an open object: attributes first, then the known
// fields on top so that they always win.
func propertyJSON(p *domain.Property) map[string]any {
	out := make(map[string]any, len(p.Attributes)+16)
	for k, v := range p.Attributes {
		out[k] = v
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	out["id"] = p.ID
	out["title"] = p.Title
	out["location"] = p.Location
	out["type"] = p.Type
	out["bhk"] = p.BHK
	out["price"] = p.Price
	out["createdAt"] = p.CreatedAt
	out["updatedAt"] = p.UpdatedAt
	out["image"] = p.Image
	out["images"] = images
	out["area"] = p.Area
	out["description"] = p.Description
	out["status"] = p.Status
	out["featured"] = p.Featured
	out["showOnMap"] = p.ShowOnMap
	out["mapLink"] = p.MapLink
	return out
}

// parsePropertyInput splits a JSON object into the typed input and the
// remaining free-form attributes.
func parsePropertyInput(raw []byte) (usecase.PropertyInput, error) {
	var in usecase.PropertyInput
	var all map[string]any
	if err := decodeNumbers(raw, &all); err != nil {
		return in, invalidInput("property must be a JSON object")
	}
	if err := decodeNumbers(raw, &in); err != nil {
		return in, invalidInput(fmt.Sprintf("invalid property: %v", err))
	}
	for k, v := range all {
		if knownPropertyFields[k] {
			continue
		}
		if in.Attributes == nil {
			in.Attributes = make(map[string]any)
		}
		in.Attributes[k] = plainNumber(v)
	}
	in.BHK = plainNumber(in.BHK)
	in.Price = plainNumber(in.Price)
	return in, nil
}

func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// plainNumber turns json.Number values into int64 or float64 so that they are
// stored as numbers.
func plainNumber(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = plainNumber(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = plainNumber(e)
		}
		return t
	default:
		return v
	}
}
