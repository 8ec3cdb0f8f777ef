package models

import "strings"

// SortField is a product attribute the catalog can be ordered by.
type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

// SortOrder is the direction of an ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortField returns the recognized field for s, case-insensitively.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName, true
	case SortByPrice:
		return SortByPrice, true
	}
	return "", false
}

// ParseSortOrder returns the recognized direction for s, case-insensitively.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToUpper(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

// ProductFilters is the set of user-chosen constraints on the product list.
// The zero value applies no constraint: an empty string or a nil pointer
// means the field is unset.
type ProductFilters struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	SortBy    SortField
	SortOrder SortOrder
}

// IsEmpty reports whether no constraint is set.
func (f ProductFilters) IsEmpty() bool {
	return f.Equal(ProductFilters{})
}

// Equal compares two filter sets by value.
func (f ProductFilters) Equal(o ProductFilters) bool {
	return f.Category == o.Category &&
		floatPtrEqual(f.MinPrice, o.MinPrice) &&
		floatPtrEqual(f.MaxPrice, o.MaxPrice) &&
		f.Search == o.Search &&
		f.SortBy == o.SortBy &&
		f.SortOrder == o.SortOrder
}

// Clone returns a copy that shares no pointers with f.
func (f ProductFilters) Clone() ProductFilters {
	c := f
	if f.MinPrice != nil {
		v := *f.MinPrice
		c.MinPrice = &v
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		c.MaxPrice = &v
	}
	return c
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ProductQuery is a filter set plus the page window requested from the API.
type ProductQuery struct {
	ProductFilters
	Page  int
	Limit int
}
