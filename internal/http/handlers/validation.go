package handlers

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

const (
	maxNameLength     = 255
	maxCategoryLength = 100
	minRating         = 1
	maxRating         = 5
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateName(name string) *ProductValidationError {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n == 0:
		return &ProductValidationError{Field: "name", Description: "Name is required"}
	case n > maxNameLength:
		return &ProductValidationError{Field: "name", Description: fmt.Sprintf("Name must be at most %d characters", maxNameLength)}
	}
	return nil
}

func validateCategory(category string) *ProductValidationError {
	n := utf8.RuneCountInString(strings.TrimSpace(category))
	switch {
	case n == 0:
		return &ProductValidationError{Field: "category", Description: "Category is required"}
	case n > maxCategoryLength:
		return &ProductValidationError{Field: "category", Description: fmt.Sprintf("Category must be at most %d characters", maxCategoryLength)}
	}
	return nil
}

func validatePrice(price float64) *ProductValidationError {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return &ProductValidationError{Field: "price", Description: "Price must be a positive number"}
	}
	return nil
}

func validateRating(rating float64) *ProductValidationError {
	if rating < minRating || rating > maxRating || math.IsNaN(rating) {
		return &ProductValidationError{Field: "rating", Description: fmt.Sprintf("Rating must be between %d and %d", minRating, maxRating)}
	}
	return nil
}

func validateStock(stock int) *ProductValidationError {
	if stock < 0 {
		return &ProductValidationError{Field: "stock", Description: "Stock cannot be negative"}
	}
	return nil
}

func collect(checks ...*ProductValidationError) []ProductValidationError {
	errs := []ProductValidationError{}
	for _, c := range checks {
		if c != nil {
			errs = append(errs, *c)
		}
	}
	return errs
}

func validateCreate(p models.CreateProductRequest) []ProductValidationError {
	checks := []*ProductValidationError{
		validateName(p.Name),
		validateCategory(p.Category),
		validatePrice(p.Price),
	}
	if p.Rating != nil {
		checks = append(checks, validateRating(*p.Rating))
	}
	if p.Stock != nil {
		checks = append(checks, validateStock(*p.Stock))
	}
	return collect(checks...)
}

// validateUpdate checks only the fields present in the patch.
func validateUpdate(p models.UpdateProductRequest) []ProductValidationError {
	var checks []*ProductValidationError
	if p.Name != nil {
		checks = append(checks, validateName(*p.Name))
	}
	if p.Category != nil {
		checks = append(checks, validateCategory(*p.Category))
	}
	if p.Price != nil {
		checks = append(checks, validatePrice(*p.Price))
	}
	if p.Rating != nil {
		checks = append(checks, validateRating(*p.Rating))
	}
	if p.Stock != nil {
		checks = append(checks, validateStock(*p.Stock))
	}
	return collect(checks...)
}
