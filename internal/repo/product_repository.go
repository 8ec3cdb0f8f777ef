package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	// GetByName matches the name exactly, ignoring case.
	GetByName(ctx context.Context, name string) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
	// Filter returns one page of the products matching pf and the number of
	// matches across all pages.
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context, pf ProductFilter) (models.ProductStats, error)
}
