package coordinator

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_api.go -package=mocks -source=api.go

import (
	"context"
	"net/url"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// ProductsAPI is the part of the catalog API the coordinator depends on.
// *client.ProductsService satisfies it.
type ProductsAPI interface {
	GetProducts(ctx context.Context, q models.ProductQuery) (models.PaginatedProducts, error)
	GetStatistics(ctx context.Context, f models.ProductFilters) (models.ProductStats, error)
	GetCategories(ctx context.Context) ([]string, error)
	DeleteProduct(ctx context.Context, id string) error
}

// URLSink receives the query string that mirrors the active descriptor.
type URLSink interface {
	Replace(values url.Values)
}

// URLSinkFunc adapts a function to URLSink.
type URLSinkFunc func(values url.Values)

// Replace calls f(values).
func (f URLSinkFunc) Replace(values url.Values) { f(values) }

type discardSink struct{}

func (discardSink) Replace(url.Values) {}
