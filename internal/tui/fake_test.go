package tui

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// fakeCatalog records what the console asks for and applies filter changes
// to its own copy of the filters.
type fakeCatalog struct {
	mu        sync.Mutex
	snap      coordinator.Snapshot
	filters   models.ProductFilters
	updates   int
	clears    int
	refreshes int
	pages     []int
	limits    []int
	deleted   []string
	deleteErr error
}

func (f *fakeCatalog) Snapshot() coordinator.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeCatalog) UpdateFilters(changes ...coordinator.FilterChange) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, change := range changes {
		change(&f.filters)
	}
	f.updates++
}

func (f *fakeCatalog) ClearFilters() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = models.ProductFilters{}
	f.clears++
}

func (f *fakeCatalog) GoToPage(page int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	return page >= 1 && page <= f.snap.Pagination.TotalPages
}

func (f *fakeCatalog) ChangeItemsPerPage(limit int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return limit > 0
}

func (f *fakeCatalog) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) state() (models.ProductFilters, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters.Clone(), f.updates
}

type fakeWriter struct {
	created []models.CreateProductRequest
	updated map[string]models.UpdateProductRequest
	err     error
}

func (w *fakeWriter) CreateProduct(_ context.Context, req models.CreateProductRequest) (models.Product, error) {
	if w.err != nil {
		return models.Product{}, w.err
	}
	w.created = append(w.created, req)
	return models.Product{ID: "new", Name: req.Name, Category: req.Category, Price: req.Price}, nil
}

func (w *fakeWriter) UpdateProduct(_ context.Context, id string, req models.UpdateProductRequest) (models.Product, error) {
	if w.err != nil {
		return models.Product{}, w.err
	}
	if w.updated == nil {
		w.updated = map[string]models.UpdateProductRequest{}
	}
	w.updated[id] = req
	return models.Product{ID: id, Name: *req.Name}, nil
}

func sampleSnapshot() coordinator.Snapshot {
	return coordinator.Snapshot{
		Version: 1,
		Products: []models.Product{
			{ID: "p1", Name: "Kite", Category: "Toys", Price: 12, Rating: 4.5, Stock: 3},
			{ID: "p2", Name: "Novel", Category: "Books", Price: 9, Stock: 0},
		},
		Statistics: &models.ProductStats{
			TotalProducts: 25,
			AveragePrice:  10.5,
			ByCategory: []models.CategoryStat{
				{Category: "Toys", Count: 20, Percentage: "80.00"},
				{Category: "Books", Count: 5, Percentage: "20.00"},
			},
		},
		Categories: []string{"Books", "Toys"},
		Pagination: coordinator.Pagination{CurrentPage: 1, ItemsPerPage: 10, TotalProducts: 25, TotalPages: 3},
	}
}
