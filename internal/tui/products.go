package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

const defaultTableHeight = 10

func newProductTable() table.Model {
	keys := table.DefaultKeyMap()
	// d and u belong to the console.
	keys.HalfPageDown.SetKeys("ctrl+d")
	keys.HalfPageUp.SetKeys("ctrl+u")
	keys.PageDown.SetKeys("pgdown")
	keys.PageUp.SetKeys("pgup")

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary)

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 32},
			{Title: "Category", Width: 16},
			{Title: "Price", Width: 12},
			{Title: "Rating", Width: 7},
			{Title: "Stock", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
		table.WithKeyMap(keys),
		table.WithStyles(styles),
	)
}

func productRows(products []models.Product) []table.Row {
	rows := make([]table.Row, len(products))
	for i, p := range products {
		rating := "-"
		if p.Rating > 0 {
			rating = strconv.FormatFloat(p.Rating, 'f', 1, 64)
		}
		rows[i] = table.Row{p.Name, p.Category, formatPrice(p.Price), rating, strconv.Itoa(p.Stock)}
	}
	return rows
}

func (m Model) productsView() string {
	s := m.styles
	switch {
	case len(m.snap.Products) > 0:
		return m.table.View()
	case m.snap.Loading:
		return s.Muted.Render("Loading products...")
	default:
		return s.Muted.Render("No products found. Try changing the filters or press n to add one.")
	}
}

// selected returns the product under the cursor.
func (m Model) selected() (models.Product, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.snap.Products) {
		return models.Product{}, false
	}
	return m.snap.Products[i], true
}
