package coordinator_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI serves a fixed catalog and applies filters and pagination the way
// the catalog API does.
type fakeAPI struct {
	mu         sync.Mutex
	catalog    []models.Product
	categories []string

	productsErr error
	statsErr    error
	deleteErr   error

	// hold blocks GetProducts for the given limit until the channel is
	// closed, ignoring cancellation.
	hold map[int]chan struct{}
	// hang blocks GetProducts until its context is done.
	hang bool

	// categoryHold blocks the n-th GetCategories call (1-based) until the
	// channel is closed. The answer is taken before blocking.
	categoryHold map[int]chan struct{}

	queries       []models.ProductQuery
	categoryCalls int
}

func newFakeAPI(catalog ...models.Product) *fakeAPI {
	return &fakeAPI{catalog: catalog, hold: map[int]chan struct{}{}, categoryHold: map[int]chan struct{}{}}
}

func makeProducts(category string, n int, price float64) []models.Product {
	products := make([]models.Product, 0, n)
	for i := range n {
		products = append(products, models.Product{
			ID:       fmt.Sprintf("%s-%d", strings.ToLower(category), i+1),
			Name:     fmt.Sprintf("%s item %d", category, i+1),
			Category: category,
			Price:    price,
			Rating:   4,
			Stock:    1,
		})
	}
	return products
}

func (f *fakeAPI) GetProducts(ctx context.Context, q models.ProductQuery) (models.PaginatedProducts, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.hold[q.Limit]
	hang := f.hang
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if hang {
		<-ctx.Done()
		return models.PaginatedProducts{}, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productsErr != nil {
		return models.PaginatedProducts{}, f.productsErr
	}
	matched := f.filterLocked(q.ProductFilters)
	start := (q.Page - 1) * q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+q.Limit, len(matched))
	return models.PaginatedProducts{Data: slices.Clone(matched[start:end]), Total: len(matched)}, nil
}

func (f *fakeAPI) GetStatistics(_ context.Context, filters models.ProductFilters) (models.ProductStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statsErr != nil {
		return models.ProductStats{}, f.statsErr
	}
	matched := f.filterLocked(filters)
	stats := models.ProductStats{TotalProducts: len(matched)}
	if len(matched) == 0 {
		return stats, nil
	}
	var sum float64
	counts := map[string]int{}
	for _, p := range matched {
		sum += p.Price
		counts[p.Category]++
	}
	stats.AveragePrice = sum / float64(len(matched))
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		stats.ByCategory = append(stats.ByCategory, models.CategoryStat{
			Category:   name,
			Count:      counts[name],
			Percentage: fmt.Sprintf("%.2f", float64(counts[name])*100/float64(len(matched))),
		})
	}
	return stats, nil
}

func (f *fakeAPI) GetCategories(context.Context) ([]string, error) {
	f.mu.Lock()
	f.categoryCalls++
	categories := slices.Clone(f.categories)
	gate := f.categoryHold[f.categoryCalls]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return categories, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	i := slices.IndexFunc(f.catalog, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return errors.New("not found")
	}
	f.catalog = slices.Delete(f.catalog, i, i+1)
	return nil
}

func (f *fakeAPI) filterLocked(filters models.ProductFilters) []models.Product {
	var out []models.Product
	for _, p := range f.catalog {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.MinPrice != nil && p.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f *fakeAPI) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeAPI) lastQuery() models.ProductQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func (f *fakeAPI) setProductsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productsErr = err
}

// recordingSink keeps every query string the coordinator mirrors.
type recordingSink struct {
	mu     sync.Mutex
	values []url.Values
}

func (s *recordingSink) Replace(values url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, values)
}

func (s *recordingSink) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return "<none>"
	}
	return s.values[len(s.values)-1].Encode()
}
