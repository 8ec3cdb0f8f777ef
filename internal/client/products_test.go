package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/catalog-console/internal/client"
	"github.com/rogerio-castellano/catalog-console/internal/models"
)

var sampleProduct = models.Product{
	ID:        "1",
	Name:      "Toy",
	Category:  "Toys",
	Price:     20,
	Rating:    4,
	Stock:     10,
	CreatedAt: "2025-01-01T00:00:00Z",
	UpdatedAt: "2025-01-01T00:00:00Z",
}

// newTestServer creates a new test server with keep-alives disabled so that
// closing it does not disturb parallel tests sharing the transport.
func newTestServer(t *testing.T, handler http.HandlerFunc) *client.ProductsService {
	t.Helper()
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, client.WithTimeout(5*time.Second), client.WithToken("tkn"))
	require.NoError(t, err)
	return client.NewProductsService(c)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func floatPtr(v float64) *float64 { return &v }

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := client.New("://nope")
	require.Error(t, err)

	_, err = client.New("ftp://example.com")
	require.Error(t, err)
}

func TestGetProducts_BuildsQuery(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, models.PaginatedProducts{Data: []models.Product{sampleProduct}, Total: 1})
	})

	res, err := svc.GetProducts(context.Background(), models.ProductQuery{
		ProductFilters: models.ProductFilters{
			Category:  "Toys",
			MinPrice:  floatPtr(0),
			Search:    "car",
			SortBy:    models.SortByPrice,
			SortOrder: models.SortDesc,
		},
		Page:  2,
		Limit: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "1", res.Data[0].ID)
	assert.Equal(t, map[string][]string{
		"category":  {"Toys"},
		"minPrice":  {"0"},
		"search":    {"car"},
		"sortBy":    {"price"},
		"sortOrder": {"DESC"},
		"page":      {"2"},
		"limit":     {"10"},
	}, gotQuery)
}

func TestGetProducts_NullDataBecomesEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":null,"total":0}`)
	})

	res, err := svc.GetProducts(context.Background(), models.ProductQuery{})
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		writeJSON(w, http.StatusOK, sampleProduct)
	})

	p, err := svc.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, sampleProduct, p)
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "product not found", http.StatusNotFound)
	})

	_, err := svc.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNotFound))

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Contains(t, err.Error(), "product not found")
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Toy", body["name"])
		assert.NotContains(t, body, "rating", "unset optional fields are omitted")

		writeJSON(w, http.StatusCreated, sampleProduct)
	})

	p, err := svc.CreateProduct(context.Background(), models.CreateProductRequest{Name: "Toy", Category: "Toys", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
}

func TestUpdateProduct_SendsOnlyChangedFields(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/products/1", r.URL.Path)

		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"price":25}`, string(data))

		updated := sampleProduct
		updated.Price = 25
		writeJSON(w, http.StatusOK, updated)
	})

	p, err := svc.UpdateProduct(context.Background(), "1", models.UpdateProductRequest{Price: floatPtr(25)})
	require.NoError(t, err)
	assert.Equal(t, 25.0, p.Price)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, svc.DeleteProduct(context.Background(), "1"))
}

func TestDeleteProduct_ServerError(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := svc.DeleteProduct(context.Background(), "1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, client.ErrNotFound))
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestGetCategories(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		writeJSON(w, http.StatusOK, []string{"A", "B"})
	})

	cats, err := svc.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, cats)
}

func TestGetStatistics_SendsOnlyFilterKeys(t *testing.T) {
	t.Parallel()

	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/statistics", r.URL.Path)
		assert.Equal(t, "category=Toys&maxPrice=50", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, models.ProductStats{
			TotalProducts: 3,
			AveragePrice:  12.5,
			ByCategory:    []models.CategoryStat{{Category: "Toys", Count: 3, Percentage: "100.00"}},
		})
	})

	stats, err := svc.GetStatistics(context.Background(), models.ProductFilters{
		Category:  "Toys",
		MaxPrice:  floatPtr(50),
		SortBy:    models.SortByName,
		SortOrder: models.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, "100.00", stats.ByCategory[0].Percentage)
}

func TestRequest_ContextCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.GetCategories(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRateLimit_WaitHonoursContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []string{})
	}))
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, client.WithRateLimit(0.001, 1))
	require.NoError(t, err)
	svc := client.NewProductsService(c)

	_, err = svc.GetCategories(context.Background())
	require.NoError(t, err, "the first request uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.GetCategories(ctx)
	require.Error(t, err, "the second request cannot get a token before the deadline")
}
