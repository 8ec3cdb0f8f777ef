package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
	"github.com/rogerio-castellano/catalog-console/internal/models"
)

type sortOption struct {
	by    models.SortField
	order models.SortOrder
	label string
}

// sortCycle is the order the sort key steps through. The first entry is
// the server default.
var sortCycle = []sortOption{
	{label: "default"},
	{by: models.SortByName, order: models.SortAsc, label: "name A-Z"},
	{by: models.SortByName, order: models.SortDesc, label: "name Z-A"},
	{by: models.SortByPrice, order: models.SortAsc, label: "price low-high"},
	{by: models.SortByPrice, order: models.SortDesc, label: "price high-low"},
}

// pageSizes are the choices offered by the page size selector.
var pageSizes = []int{10, 20, 50}

func sortIndex(f models.ProductFilters) int {
	order := f.SortOrder
	if f.SortBy != "" && order == "" {
		order = models.SortAsc
	}
	for i, o := range sortCycle {
		if o.by == f.SortBy && o.order == order {
			return i
		}
	}
	return 0
}

func nextSortChange(f models.ProductFilters) coordinator.FilterChange {
	next := sortCycle[(sortIndex(f)+1)%len(sortCycle)]
	if next.by == "" {
		return coordinator.ClearSort()
	}
	return coordinator.SetSort(next.by, next.order)
}

// nextCategoryChange steps through the known categories and back to none.
// It returns nil when there is nothing to cycle through.
func nextCategoryChange(current string, categories []string) coordinator.FilterChange {
	if len(categories) == 0 {
		return nil
	}
	i := slices.Index(categories, current)
	switch {
	case current == "" || i < 0:
		return coordinator.SetCategory(categories[0])
	case i == len(categories)-1:
		return coordinator.ClearCategory()
	default:
		return coordinator.SetCategory(categories[i+1])
	}
}

func nextPageSize(current int) int {
	i := slices.Index(pageSizes, current)
	return pageSizes[(i+1)%len(pageSizes)]
}

func formatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// filterChips describes each active filter.
func filterChips(f models.ProductFilters) []string {
	var chips []string
	if f.Search != "" {
		chips = append(chips, fmt.Sprintf("search: %q", f.Search))
	}
	if f.Category != "" {
		chips = append(chips, "category: "+f.Category)
	}
	if f.MinPrice != nil {
		chips = append(chips, "min: "+formatPrice(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		chips = append(chips, "max: "+formatPrice(*f.MaxPrice))
	}
	if f.SortBy != "" {
		chips = append(chips, "sort: "+sortCycle[sortIndex(f)].label)
	}
	return chips
}

func (m Model) filterBarView() string {
	s := m.styles
	var b strings.Builder

	searchLabel := "Search "
	if m.mode == modeSearch {
		searchLabel = s.Active.Render(searchLabel)
	}
	b.WriteString(searchLabel + m.search.View())

	if m.mode == modePrice {
		minLabel, maxLabel := "min ", "max "
		if m.priceFocus == 0 {
			minLabel = s.Active.Render(minLabel)
		} else {
			maxLabel = s.Active.Render(maxLabel)
		}
		b.WriteString("   Price " + minLabel + m.minPrice.View() + " " + maxLabel + m.maxPrice.View())
		if m.priceErr != "" {
			b.WriteString("  " + s.Error.Render(m.priceErr))
		}
	}
	b.WriteString("\n")

	chips := filterChips(m.snap.Filters)
	if len(chips) == 0 {
		b.WriteString(s.Muted.Render("No filters applied"))
	} else {
		rendered := make([]string, len(chips))
		for i, c := range chips {
			rendered[i] = s.Chip.Render(c)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString(s.Muted.Render("  (x to clear)"))
	}

	p := m.snap.Pagination
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("Showing %d of %d products", len(m.snap.Products), p.TotalProducts)))
	return b.String()
}
