package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
)

// paginationView renders the page footer. A single page needs no footer.
func paginationView(p coordinator.Pagination, s Styles) string {
	if p.TotalPages <= 1 {
		return ""
	}
	prev, next := "‹ prev", "next ›"
	if p.HasPrevious() {
		prev = s.Bold.Render(prev)
	} else {
		prev = s.Muted.Render(prev)
	}
	if p.HasNext() {
		next = s.Bold.Render(next)
	} else {
		next = s.Muted.Render(next)
	}
	return fmt.Sprintf("%s   Page %d of %d   %s", prev, p.CurrentPage, p.TotalPages, next)
}

func pageSizeView(current int, s Styles) string {
	parts := make([]string, len(pageSizes))
	for i, size := range pageSizes {
		label := strconv.Itoa(size)
		if size == current {
			parts[i] = s.Active.Render(label)
		} else {
			parts[i] = s.Muted.Render(label)
		}
	}
	return "Per page: " + strings.Join(parts, " ")
}
