package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeRoom       PropertyType = "room"
	TypeCommercial PropertyType = "commercial"
)

func (t PropertyType) Valid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeRoom, TypeCommercial:
		return true
	}
	return false
}

type Location struct {
	City         string `bson:"city" json:"city"`
	Neighborhood string `bson:"neighborhood" json:"neighborhood"`
	Address      string `bson:"address" json:"address"`
}

type Property struct {
	ID           string       `bson:"_id" json:"id"`
	OwnerID      string       `bson:"ownerId" json:"ownerId"`
	OwnerName    string       `bson:"ownerName" json:"ownerName"`
	OwnerEmail   string       `bson:"ownerEmail" json:"ownerEmail"`
	Title        string       `bson:"title" json:"title"`
	Description  string       `bson:"description" json:"description"`
	Price        int64        `bson:"price" json:"price"`
	Location     Location     `bson:"location" json:"location"`
	PropertyType PropertyType `bson:"propertyType" json:"propertyType"`
	Bedrooms     int          `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int          `bson:"bathrooms" json:"bathrooms"`
	Area         float64      `bson:"area" json:"area"`
	Features     []string     `bson:"features" json:"features"`
	Images       []string     `bson:"images" json:"images"`
	Available    bool         `bson:"available" json:"available"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

type CreatePropertyRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Location     Location     `json:"location"`
	PropertyType PropertyType `json:"propertyType"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Area         float64      `json:"area"`
	Features     []string     `json:"features"`
	Images       []string     `json:"images"`
}

// PropertyPatch is a partial update. Nil fields are left untouched.
type PropertyPatch struct {
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Price        *int64        `json:"price,omitempty"`
	Location     *Location     `json:"location,omitempty"`
	PropertyType *PropertyType `json:"propertyType,omitempty"`
	Bedrooms     *int          `json:"bedrooms,omitempty"`
	Bathrooms    *int          `json:"bathrooms,omitempty"`
	Area         *float64      `json:"area,omitempty"`
	Features     []string      `json:"features,omitempty"`
	Images       []string      `json:"images,omitempty"`
	Available    *bool         `json:"available,omitempty"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
}

func (p PropertyPatch) Apply(prop Property) Property {
	if p.Title != nil {
		prop.Title = *p.Title
	}
	if p.Description != nil {
		prop.Description = *p.Description
	}
	if p.Price != nil {
		prop.Price = *p.Price
	}
	if p.Location != nil {
		prop.Location = *p.Location
	}
	if p.PropertyType != nil {
		prop.PropertyType = *p.PropertyType
	}
	if p.Bedrooms != nil {
		prop.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		prop.Bathrooms = *p.Bathrooms
	}
	if p.Area != nil {
		prop.Area = *p.Area
	}
	if p.Features != nil {
		prop.Features = slices.Clone(p.Features)
	}
	if p.Images != nil {
		prop.Images = slices.Clone(p.Images)
	}
	if p.Available != nil {
		prop.Available = *p.Available
	}
	if p.UpdatedAt != nil {
		prop.UpdatedAt = *p.UpdatedAt
	}
	return prop
}

func (p PropertyPatch) SetDoc() bson.M {
	doc := bson.M{}
	if p.Title != nil {
		doc["title"] = *p.Title
	}
	if p.Description != nil {
		doc["description"] = *p.Description
	}
	if p.Price != nil {
		doc["price"] = *p.Price
	}
	if p.Location != nil {
		doc["location"] = *p.Location
	}
	if p.PropertyType != nil {
		doc["propertyType"] = *p.PropertyType
	}
	if p.Bedrooms != nil {
		doc["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		doc["bathrooms"] = *p.Bathrooms
	}
	if p.Area != nil {
		doc["area"] = *p.Area
	}
	if p.Features != nil {
		doc["features"] = p.Features
	}
	if p.Images != nil {
		doc["images"] = p.Images
	}
	if p.Available != nil {
		doc["available"] = *p.Available
	}
	if p.UpdatedAt != nil {
		doc["updatedAt"] = *p.UpdatedAt
	}
	return doc
}

func (p PropertyPatch) Empty() bool {
	return len(p.SetDoc()) == 0
}
