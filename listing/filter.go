// Package listing narrows property collections for the browse screen.
package listing

import (
	"CasaFacil/models"
	"strings"
)

// Available keeps the listings that may appear in public browse results.
func Available(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if p.Available {
			out = append(out, p)
		}
	}
	return out
}

// Filter returns the properties matching every constraint set in f, in
// input order. The input slice is not modified.
func Filter(props []models.Property, f models.SearchFilters) []models.Property {
	city := strings.ToLower(strings.TrimSpace(f.City))
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if matches(p, f, city) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Property, f models.SearchFilters, city string) bool {
	if city != "" && !strings.Contains(strings.ToLower(p.Location.City), city) {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms < *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && p.Bathrooms < *f.Bathrooms {
		return false
	}
	return true
}
