package listing

import (
	"CasaFacil/models"
	"slices"
)

// View keeps the unfiltered collection next to the current filtered result
// so that clearing the filters never loses data.
type View struct {
	all     []models.Property
	filters models.SearchFilters
	results []models.Property
}

func NewView(all []models.Property) *View {
	all = slices.Clone(all)
	return &View{all: all, results: all}
}

func (v *View) Apply(f models.SearchFilters) []models.Property {
	v.filters = f
	v.results = Filter(v.all, f)
	return v.Results()
}

func (v *View) Clear() []models.Property {
	v.filters = models.SearchFilters{}
	v.results = v.all
	return v.Results()
}

func (v *View) Results() []models.Property {
	out := slices.Clone(v.results)
	if out == nil {
		out = []models.Property{}
	}
	return out
}

func (v *View) Filters() models.SearchFilters {
	return v.filters
}

func (v *View) Total() int {
	return len(v.all)
}

func (v *View) Shown() int {
	return len(v.results)
}
