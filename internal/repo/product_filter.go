package repo

import "github.com/rogerio-castellano/catalog-console/internal/models"

type ProductFilter struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    models.SortField
	SortOrder models.SortOrder
	Offset    *int
	Limit     *int
}

// FilterFromModel converts the API-level filters into a repository filter
// without pagination.
func FilterFromModel(f models.ProductFilters) ProductFilter {
	return ProductFilter{
		Category:  f.Category,
		Search:    f.Search,
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	}
}
