package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	models "github.com/rogerio-castellano/catalog-console/internal/models"
	"github.com/rogerio-castellano/catalog-console/internal/query"
	repo "github.com/rogerio-castellano/catalog-console/internal/repo"
)

const maxLimit = 100

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.CreateProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {array} ProductValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateCreate(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.Create(r.Context(), newProduct(req))
	if err != nil {
		logger.Error("could not create product", zap.Error(err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}
	invalidateCache(r)

	respond(w, http.StatusCreated, created)
}

// GetProductsHandler godoc
// @Summary Filter, sort and paginate products
// @Tags products
// @Produce json
// @Param category query string false "Exact category"
// @Param search query string false "Case-insensitive substring of the name"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param sortBy query string false "name or price"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, at most 100"
// @Success 200 {object} models.PaginatedProducts
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseListQuery(r.URL.Query())
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	products, total, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		logger.Error("could not filter products", zap.Error(err))
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	respond(w, http.StatusOK, models.PaginatedProducts{Data: products, Total: total})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logger.Error("could not fetch product", zap.Error(err))
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, product)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Applies a partial update; absent fields keep their value
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {array} ProductValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [patch]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateUpdate(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	product, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logger.Error("could not fetch product", zap.Error(err))
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	applyUpdate(&product, req)
	updated, err := productRepo.Update(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logger.Error("could not update product", zap.Error(err))
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}
	invalidateCache(r)

	respond(w, http.StatusOK, updated)
}

func newProduct(req models.CreateProductRequest) models.Product {
	product := models.Product{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Price:    req.Price,
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	return product
}

func applyUpdate(p *models.Product, req models.UpdateProductRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logger.Error("could not delete product", zap.Error(err))
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	invalidateCache(r)
	w.WriteHeader(http.StatusNoContent)
}

// parseListQuery validates the list parameters. Unlike the console, which
// drops malformed values, the API rejects them.
func parseListQuery(q url.Values) (repo.ProductFilter, []ProductValidationError) {
	filter, errs := parseFilterQuery(q)

	if s := q.Get(query.ParamSortBy); s != "" {
		if by, ok := models.ParseSortField(s); ok {
			filter.SortBy = by
		} else {
			errs = append(errs, ProductValidationError{Field: query.ParamSortBy, Description: "sortBy must be name or price"})
		}
	}
	if s := q.Get(query.ParamSortOrder); s != "" {
		if order, ok := models.ParseSortOrder(s); ok {
			filter.SortOrder = order
		} else {
			errs = append(errs, ProductValidationError{Field: query.ParamSortOrder, Description: "sortOrder must be ASC or DESC"})
		}
	}

	page, limit := query.DefaultPage, query.DefaultLimit
	if s := q.Get(query.ParamPage); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			errs = append(errs, ProductValidationError{Field: query.ParamPage, Description: "page must be a positive integer"})
		} else {
			page = v
		}
	}
	if s := q.Get(query.ParamLimit); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			errs = append(errs, ProductValidationError{Field: query.ParamLimit, Description: "limit must be a positive integer"})
		} else {
			limit = min(v, maxLimit)
		}
	}

	offset := (page - 1) * limit
	filter.Offset = &offset
	filter.Limit = &limit
	return filter, errs
}

// parseFilterQuery reads the parameters shared by the list and statistics
// endpoints.
func parseFilterQuery(q url.Values) (repo.ProductFilter, []ProductValidationError) {
	var errs []ProductValidationError
	filter := repo.ProductFilter{
		Category: strings.TrimSpace(q.Get(query.ParamCategory)),
		Search:   strings.TrimSpace(q.Get(query.ParamSearch)),
	}

	parsePrice := func(name string) *float64 {
		s := q.Get(name)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, ProductValidationError{Field: name, Description: name + " must be a number"})
			return nil
		}
		return &v
	}
	filter.MinPrice = parsePrice(query.ParamMinPrice)
	filter.MaxPrice = parsePrice(query.ParamMaxPrice)

	return filter, errs
}
