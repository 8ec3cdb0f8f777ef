package coordinator

import (
	"strings"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// FilterChange sets or clears one field of a filter set. Fields that no
// change mentions are left as they are.
type FilterChange func(*models.ProductFilters)

// SetCategory restricts the list to one category. An empty name clears it.
func SetCategory(category string) FilterChange {
	return func(f *models.ProductFilters) {
		f.Category = strings.TrimSpace(category)
	}
}

// ClearCategory removes the category constraint.
func ClearCategory() FilterChange {
	return func(f *models.ProductFilters) {
		f.Category = ""
	}
}

// SetMinPrice sets the inclusive lower price bound.
func SetMinPrice(v float64) FilterChange {
	return func(f *models.ProductFilters) {
		f.MinPrice = &v
	}
}

// ClearMinPrice removes the lower price bound.
func ClearMinPrice() FilterChange {
	return func(f *models.ProductFilters) {
		f.MinPrice = nil
	}
}

// SetMaxPrice sets the inclusive upper price bound.
func SetMaxPrice(v float64) FilterChange {
	return func(f *models.ProductFilters) {
		f.MaxPrice = &v
	}
}

// ClearMaxPrice removes the upper price bound.
func ClearMaxPrice() FilterChange {
	return func(f *models.ProductFilters) {
		f.MaxPrice = nil
	}
}

// SetPriceRange replaces both bounds; a nil bound is cleared.
func SetPriceRange(lo, hi *float64) FilterChange {
	return func(f *models.ProductFilters) {
		f.MinPrice = copyFloat(lo)
		f.MaxPrice = copyFloat(hi)
	}
}

// SetSearch sets the free-text search. An empty string clears it.
func SetSearch(text string) FilterChange {
	return func(f *models.ProductFilters) {
		f.Search = text
	}
}

// ClearSearch removes the free-text search.
func ClearSearch() FilterChange {
	return func(f *models.ProductFilters) {
		f.Search = ""
	}
}

// SetSort orders the list by field in the given direction.
func SetSort(by models.SortField, order models.SortOrder) FilterChange {
	return func(f *models.ProductFilters) {
		f.SortBy = by
		f.SortOrder = order
	}
}

// ClearSort restores the server's default ordering.
func ClearSort() FilterChange {
	return func(f *models.ProductFilters) {
		f.SortBy = ""
		f.SortOrder = ""
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
