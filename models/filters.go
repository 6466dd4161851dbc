package models

// SearchFilters narrows a browse result. Nil numeric fields and empty strings
// impose no constraint; a zero value is a real constraint.
type SearchFilters struct {
	City         string       `json:"city,omitempty"`
	PriceMin     *int64       `json:"priceMin,omitempty"`
	PriceMax     *int64       `json:"priceMax,omitempty"`
	PropertyType PropertyType `json:"propertyType,omitempty"`
	Bedrooms     *int         `json:"bedrooms,omitempty"`
	Bathrooms    *int         `json:"bathrooms,omitempty"`
}

func (f SearchFilters) IsEmpty() bool {
	return f.City == "" && f.PriceMin == nil && f.PriceMax == nil &&
		f.PropertyType == "" && f.Bedrooms == nil && f.Bathrooms == nil
}
