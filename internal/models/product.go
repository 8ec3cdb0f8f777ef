package models

// Product represents a catalog product as served by the catalog API.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Rating    float64 `json:"rating"`
	Stock     int     `json:"stock"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// CreateProductRequest is the body accepted by POST /products.
type CreateProductRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Rating   *float64 `json:"rating,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
}

// UpdateProductRequest is the partial body accepted by PATCH /products/{id}.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
}

// PaginatedProducts is one page of products plus the size of the whole filtered set.
type PaginatedProducts struct {
	Data  []Product `json:"data"`
	Total int       `json:"total"`
}
