package coordinator

import (
	"slices"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// Pagination describes the page window of the active query.
type Pagination struct {
	CurrentPage   int
	ItemsPerPage  int
	TotalProducts int
	TotalPages    int
}

// HasPrevious reports whether a page before the current one exists.
func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page after the current one exists.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Snapshot is a read-only copy of the coordinator state. Nothing in it is
// shared with the coordinator.
type Snapshot struct {
	// Version increases with every state change.
	Version uint64

	Products   []models.Product
	Statistics *models.ProductStats
	Categories []string
	Loading    bool
	// Error is the user-facing message of the last failed fetch cycle, or
	// empty.
	Error string
	// Query is the encoded query string last mirrored to the URL sink. It
	// only changes when a fetch cycle settles.
	Query      string
	Filters    models.ProductFilters
	Pagination Pagination
}

func cloneStats(s *models.ProductStats) *models.ProductStats {
	if s == nil {
		return nil
	}
	c := *s
	c.ByCategory = slices.Clone(s.ByCategory)
	return &c
}
