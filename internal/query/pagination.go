package query

// TotalPages is ceil(total/limit). An empty result has zero pages, not one
// empty page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ClampPage keeps page inside [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	upper := max(totalPages, 1)
	if page < 1 {
		return 1
	}
	if page > upper {
		return upper
	}
	return page
}
