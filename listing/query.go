package listing

import (
	"CasaFacil/models"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseFilters decodes browse query parameters. An absent or blank parameter
// leaves the field unset; "0" is kept as an explicit zero.
func ParseFilters(q url.Values) (models.SearchFilters, error) {
	var f models.SearchFilters
	f.City = strings.TrimSpace(q.Get("city"))

	var err error
	if f.PriceMin, err = parseInt64(q, "priceMin"); err != nil {
		return f, err
	}
	if f.PriceMax, err = parseInt64(q, "priceMax"); err != nil {
		return f, err
	}
	if f.Bedrooms, err = parseInt(q, "bedrooms"); err != nil {
		return f, err
	}
	if f.Bathrooms, err = parseInt(q, "bathrooms"); err != nil {
		return f, err
	}

	if t := strings.TrimSpace(q.Get("propertyType")); t != "" {
		pt := models.PropertyType(t)
		if !pt.Valid() {
			return f, fmt.Errorf("invalid propertyType %q", t)
		}
		f.PropertyType = pt
	}
	return f, nil
}

func parseInt64(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &n, nil
}

func parseInt(q url.Values, key string) (*int, error) {
	n, err := parseInt64(q, key)
	if err != nil || n == nil {
		return nil, err
	}
	v := int(*n)
	return &v, nil
}
