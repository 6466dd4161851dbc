package models

type UserPreferences struct {
	Budget           *int64   `json:"budget,omitempty"`
	Location         string   `json:"location,omitempty"`
	PropertyType     string   `json:"propertyType,omitempty"`
	MustHaveFeatures []string `json:"mustHaveFeatures,omitempty"`
}

type RecommendationRequest struct {
	UserPreferences     *UserPreferences `json:"userPreferences"`
	AvailableProperties []Property       `json:"availableProperties"`
}

// PropertyFacts is the input of description generation. Only Type and
// Location are required.
type PropertyFacts struct {
	Type      string   `json:"type"`
	Location  string   `json:"location"`
	Price     *int64   `json:"price,omitempty"`
	Area      *float64 `json:"area,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Features  []string `json:"features,omitempty"`
}
