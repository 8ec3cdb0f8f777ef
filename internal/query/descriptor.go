// Package query holds the query descriptor (filters, page and page size) and
// its encoding as URL query parameters.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Recognized query parameter names.
const (
	ParamCategory  = "category"
	ParamSearch    = "search"
	ParamMinPrice  = "minPrice"
	ParamMaxPrice  = "maxPrice"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
	ParamPage      = "page"
	ParamLimit     = "limit"
)

// Descriptor is the complete input of a fetch cycle.
type Descriptor struct {
	Filters models.ProductFilters
	Page    int
	Limit   int
}

// Default returns the descriptor of an empty query.
func Default() Descriptor {
	return Descriptor{Page: DefaultPage, Limit: DefaultLimit}
}

// ProductQuery converts the descriptor into the API list request.
func (d Descriptor) ProductQuery() models.ProductQuery {
	return models.ProductQuery{
		ProductFilters: d.Filters.Clone(),
		Page:           d.Page,
		Limit:          d.Limit,
	}
}

// Parse reads a descriptor from query parameters. It never fails: a missing
// or malformed parameter is treated as unset.
func Parse(values url.Values) Descriptor {
	return ParseWithDefault(values, DefaultLimit)
}

// ParseWithDefault is Parse with defLimit used whenever limit is absent or
// malformed.
func ParseWithDefault(values url.Values, defLimit int) Descriptor {
	if defLimit < 1 {
		defLimit = DefaultLimit
	}
	d := Descriptor{Page: DefaultPage, Limit: defLimit}

	d.Filters.Category = strings.TrimSpace(values.Get(ParamCategory))
	d.Filters.Search = values.Get(ParamSearch)
	d.Filters.MinPrice = parseFloatPtr(values.Get(ParamMinPrice))
	d.Filters.MaxPrice = parseFloatPtr(values.Get(ParamMaxPrice))
	if by, ok := models.ParseSortField(values.Get(ParamSortBy)); ok {
		d.Filters.SortBy = by
	}
	if order, ok := models.ParseSortOrder(values.Get(ParamSortOrder)); ok {
		d.Filters.SortOrder = order
	}
	if p := parseIntPtr(values.Get(ParamPage)); p != nil && *p >= 1 {
		d.Page = *p
	}
	if l := parseIntPtr(values.Get(ParamLimit)); l != nil && *l >= 1 {
		d.Limit = *l
	}
	return d
}

// ParseQueryString is Parse for a raw query string. A leading '?' is allowed.
func ParseQueryString(raw string) Descriptor {
	values, _ := SplitQueryString(raw)
	return Parse(values)
}

// SplitQueryString decodes raw into parameters. A leading '?' is allowed.
// The returned values hold every pair that could be decoded even when err
// is non-nil, so a bad pair only loses that parameter.
func SplitQueryString(raw string) (url.Values, error) {
	return url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
}

// Encode serializes the descriptor, omitting every field at its default so
// the result stays minimal.
func Encode(d Descriptor) url.Values {
	return EncodeWithDefault(d, DefaultLimit)
}

// EncodeWithDefault is Encode for a reader whose page size falls back to
// defLimit. ParseWithDefault with the same defLimit restores d.
func EncodeWithDefault(d Descriptor, defLimit int) url.Values {
	if defLimit < 1 {
		defLimit = DefaultLimit
	}
	values := FilterValues(d.Filters)
	if d.Filters.SortBy != "" {
		values.Set(ParamSortBy, string(d.Filters.SortBy))
	}
	if d.Filters.SortOrder != "" {
		values.Set(ParamSortOrder, string(d.Filters.SortOrder))
	}
	if d.Page > DefaultPage {
		values.Set(ParamPage, strconv.Itoa(d.Page))
	}
	if d.Limit > 0 && d.Limit != defLimit {
		values.Set(ParamLimit, strconv.Itoa(d.Limit))
	}
	return values
}

// FilterValues encodes the filtering part of f (no sort, no pagination), the
// parameter set accepted by the statistics endpoint.
func FilterValues(f models.ProductFilters) url.Values {
	values := url.Values{}
	if f.Category != "" {
		values.Set(ParamCategory, f.Category)
	}
	if f.MinPrice != nil {
		values.Set(ParamMinPrice, formatFloat(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		values.Set(ParamMaxPrice, formatFloat(*f.MaxPrice))
	}
	if f.Search != "" {
		values.Set(ParamSearch, f.Search)
	}
	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
