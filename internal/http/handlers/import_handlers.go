package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	models "github.com/rogerio-castellano/catalog-console/internal/models"
	repo "github.com/rogerio-castellano/catalog-console/internal/repo"
)

const (
	importModeSkip   = "skip"
	importModeUpdate = "update"
)

var requiredColumns = []string{"name", "category", "price"}

type csvRow struct {
	Line    int
	Product models.CreateProductRequest
	Err     error
}

// parseCSV reads a header row followed by product rows. rating and stock
// columns are optional. Rows that fail to parse carry Err.
func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var rows []csvRow
	for line := 2; ; line++ { // header is row 1
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}
		product, err := parseRow(record, index)
		rows = append(rows, csvRow{Line: line, Product: product, Err: err})
	}
	return rows, nil
}

func parseRow(record []string, index map[string]int) (models.CreateProductRequest, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := models.CreateProductRequest{Name: field("name"), Category: field("category")}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return row, errors.New("invalid price")
	}
	row.Price = price

	if s := field("rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return row, errors.New("invalid rating")
		}
		row.Rating = &v
	}
	if s := field("stock"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return row, errors.New("invalid stock")
		}
		row.Stock = &v
	}
	return row, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, category, price, rating (optional), stock (optional)
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 401 {string} string "Unauthorized"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != importModeUpdate {
		mode = importModeSkip
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int
	errorsList := []ProductValidationError{}

	for _, row := range records {
		rowField := fmt.Sprintf("row %d", row.Line)
		rec := row.Product

		if row.Err != nil {
			errorsList = append(errorsList, ProductValidationError{Field: rowField, Description: row.Err.Error()})
			continue
		}
		if errs := validateCreate(rec); len(errs) > 0 {
			for _, e := range errs {
				errorsList = append(errorsList, ProductValidationError{Field: rowField, Description: e.Description})
			}
			continue
		}

		existing, err := productRepo.GetByName(r.Context(), strings.TrimSpace(rec.Name))
		switch {
		case err == nil:
			if mode == importModeSkip {
				errorsList = append(errorsList, ProductValidationError{Field: rowField, Description: fmt.Sprintf("product '%s' already exists", rec.Name)})
				continue
			}
			applyUpdate(&existing, models.UpdateProductRequest{
				Category: &rec.Category,
				Price:    &rec.Price,
				Rating:   rec.Rating,
				Stock:    rec.Stock,
			})
			if _, err := productRepo.Update(r.Context(), existing); err != nil {
				logger.Warn("import update failed", zap.String("name", rec.Name), zap.Error(err))
				errorsList = append(errorsList, ProductValidationError{Field: rowField, Description: fmt.Sprintf("failed to update '%s'", rec.Name)})
				continue
			}
		case errors.Is(err, repo.ErrProductNotFound):
			if _, err := productRepo.Create(r.Context(), newProduct(rec)); err != nil {
				logger.Warn("import create failed", zap.String("name", rec.Name), zap.Error(err))
				errorsList = append(errorsList, ProductValidationError{Field: rowField, Description: fmt.Sprintf("failed to create '%s'", rec.Name)})
				continue
			}
		default:
			logger.Error("import lookup failed", zap.Error(err))
			errorsList = append(errorsList, ProductValidationError{Field: rowField, Description: "lookup failed"})
			continue
		}
		imported++
	}
	if imported > 0 {
		invalidateCache(r)
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
