package handlers

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

type HealthResult struct {
	Status string `json:"status"`
}
