package repo

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in creation order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	now      func() time.Time
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Category != "" && p.Category != pf.Category {
		return false
	}
	if pf.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Search)) {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) matching(pf ProductFilter) []models.Product {
	var filtered []models.Product
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func sortProducts(products []models.Product, by models.SortField, order models.SortOrder) {
	var compare func(a, b models.Product) int
	switch by {
	case models.SortByName:
		compare = func(a, b models.Product) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case models.SortByPrice:
		compare = func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		}
	default:
		return
	}
	if order == models.SortDesc {
		asc := compare
		compare = func(a, b models.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(products, compare)
}

// Filter implements ProductRepository.
func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	filtered := r.matching(pf)
	r.mu.RUnlock()

	sortProducts(filtered, pf.SortBy, pf.SortOrder)

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	page := slices.Clone(filtered[start:end])
	if page == nil {
		page = []models.Product{}
	}
	return page, len(filtered), nil
}

// Categories returns the distinct categories in alphabetical order.
func (r *InMemoryProductRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []string{}
	for _, p := range r.products {
		if !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	slices.Sort(categories)
	return categories, nil
}

// Statistics implements ProductRepository. Pagination and sorting in pf are
// ignored.
func (r *InMemoryProductRepository) Statistics(_ context.Context, pf ProductFilter) (models.ProductStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return computeStatistics(r.matching(pf)), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().Format(time.RFC3339)
	product.ID = uuid.NewString()
	product.CreatedAt = ts
	product.UpdatedAt = ts
	r.products = append(r.products, product)
	return product, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByName(_ context.Context, name string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces an existing product, keeping its creation time.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = r.now().Format(time.RFC3339)
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = slices.Delete(r.products, i, i+1)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
