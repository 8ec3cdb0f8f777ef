package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/models"
	"github.com/rogerio-castellano/catalog-console/internal/query"
)

const (
	categoriesCacheKey = "categories"
	statisticsCacheKey = "statistics"
)

// GetCategoriesHandler godoc
// @Summary List distinct product categories
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Failure 500 {string} string "Internal error"
// @Router /products/categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if body, ok := cached(r, categoriesCacheKey); ok {
		_ = writeRawJSON(w, http.StatusOK, body)
		return
	}

	categories, err := productRepo.Categories(r.Context())
	if err != nil {
		logger.Error("could not fetch categories", zap.Error(err))
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeCached(w, r, categoriesCacheKey, categories)
}

// GetStatisticsHandler godoc
// @Summary Aggregate statistics of the filtered catalog
// @Description Pagination and sorting parameters are ignored
// @Tags catalog
// @Produce json
// @Param category query string false "Exact category"
// @Param search query string false "Case-insensitive substring of the name"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Success 200 {object} models.ProductStats
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/statistics [get]
func GetStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseFilterQuery(r.URL.Query())
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	key := statisticsCacheKey + "?" + query.FilterValues(models.ProductFilters{
		Category: filter.Category,
		Search:   filter.Search,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
	}).Encode()
	if body, ok := cached(r, key); ok {
		_ = writeRawJSON(w, http.StatusOK, body)
		return
	}

	stats, err := productRepo.Statistics(r.Context(), filter)
	if err != nil {
		logger.Error("could not compute statistics", zap.Error(err))
		http.Error(w, "could not compute statistics", http.StatusInternalServerError)
		return
	}
	writeCached(w, r, key, stats)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} HealthResult
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, HealthResult{Status: "ok"})
}

func cached(r *http.Request, key string) ([]byte, bool) {
	body, ok, err := responseCache.Get(r.Context(), key)
	if err != nil {
		logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return body, ok
}

func writeCached(w http.ResponseWriter, r *http.Request, key string, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	if err := responseCache.Set(r.Context(), key, body); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	if err := writeRawJSON(w, http.StatusOK, body); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func invalidateCache(r *http.Request) {
	if err := responseCache.Invalidate(r.Context()); err != nil {
		logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
