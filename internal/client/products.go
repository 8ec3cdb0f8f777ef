package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rogerio-castellano/catalog-console/internal/models"
	"github.com/rogerio-castellano/catalog-console/internal/query"
)

const basePath = "/products"

// ProductsService exposes the product endpoints of the catalog API.
type ProductsService struct {
	c *Client
}

// NewProductsService binds the product endpoints to c.
func NewProductsService(c *Client) *ProductsService {
	return &ProductsService{c: c}
}

// GetProducts fetches one page of products matching q.
func (s *ProductsService) GetProducts(ctx context.Context, q models.ProductQuery) (models.PaginatedProducts, error) {
	var out models.PaginatedProducts
	if err := s.c.do(ctx, http.MethodGet, basePath, listValues(q), nil, &out); err != nil {
		return models.PaginatedProducts{}, err
	}
	if out.Data == nil {
		out.Data = []models.Product{}
	}
	return out, nil
}

// GetProduct fetches a single product.
func (s *ProductsService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var out models.Product
	if err := s.c.do(ctx, http.MethodGet, basePath+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// CreateProduct creates a product and returns the stored record.
func (s *ProductsService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (models.Product, error) {
	var out models.Product
	if err := s.c.do(ctx, http.MethodPost, basePath, nil, req, &out); err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// UpdateProduct applies a partial update and returns the stored record.
func (s *ProductsService) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (models.Product, error) {
	var out models.Product
	if err := s.c.do(ctx, http.MethodPatch, basePath+"/"+url.PathEscape(id), nil, req, &out); err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// DeleteProduct removes a product.
func (s *ProductsService) DeleteProduct(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, basePath+"/"+url.PathEscape(id), nil, nil, nil)
}

// GetCategories lists every known category name.
func (s *ProductsService) GetCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.c.do(ctx, http.MethodGet, basePath+"/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// GetStatistics fetches the aggregate over the products matching f. Sorting
// and paging do not apply to statistics.
func (s *ProductsService) GetStatistics(ctx context.Context, f models.ProductFilters) (models.ProductStats, error) {
	var out models.ProductStats
	if err := s.c.do(ctx, http.MethodGet, basePath+"/statistics", query.FilterValues(f), nil, &out); err != nil {
		return models.ProductStats{}, err
	}
	return out, nil
}

// ImportResult reports how many CSV rows were stored and why the others
// were rejected.
type ImportResult struct {
	Imported int `json:"imported"`
	Errors   []struct {
		Field       string `json:"field"`
		Description string `json:"description"`
	} `json:"errors"`
}

// ImportProducts uploads a CSV file. mode is "skip" or "update" and decides
// what happens to rows naming an existing product.
func (s *ProductsService) ImportProducts(ctx context.Context, csv io.Reader, mode string) (ImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "products.csv")
	if err != nil {
		return ImportResult{}, err
	}
	if _, err := io.Copy(part, csv); err != nil {
		return ImportResult{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	if err := mw.Close(); err != nil {
		return ImportResult{}, err
	}

	var values url.Values
	if mode != "" {
		values = url.Values{"mode": {mode}}
	}
	var out ImportResult
	if err := s.c.send(ctx, http.MethodPost, basePath+"/import", values, mw.FormDataContentType(), &buf, &out); err != nil {
		return ImportResult{}, err
	}
	return out, nil
}

func listValues(q models.ProductQuery) url.Values {
	values := query.FilterValues(q.ProductFilters)
	if q.SortBy != "" {
		values.Set(query.ParamSortBy, string(q.SortBy))
	}
	if q.SortOrder != "" {
		values.Set(query.ParamSortOrder, string(q.SortOrder))
	}
	if q.Page > 0 {
		values.Set(query.ParamPage, strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set(query.ParamLimit, strconv.Itoa(q.Limit))
	}
	return values
}
