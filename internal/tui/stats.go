package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

const (
	chartBarWidth   = 30
	chartLabelWidth = 16
)

func (m Model) statsPanelView() string {
	s := m.styles
	stats := m.snap.Statistics

	value := func(v string) string {
		if stats == nil {
			return s.Muted.Render("-")
		}
		return s.CardValue.Render(v)
	}
	var total, avg, categories string
	if stats != nil {
		total = strconv.Itoa(stats.TotalProducts)
		avg = formatPrice(stats.AveragePrice)
		categories = strconv.Itoa(len(stats.ByCategory))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Card.Render("Total products\n"+value(total)),
		s.Card.Render("Average price\n"+value(avg)),
		s.Card.Render("Categories\n"+value(categories)),
	)
}

// categoryChartView draws one horizontal bar per category, scaled to the
// largest count.
func categoryChartView(stats *models.ProductStats, s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Products by category"))
	b.WriteString("\n")

	if stats == nil || len(stats.ByCategory) == 0 {
		b.WriteString(s.Muted.Render("No category data"))
		return b.String()
	}

	largest := 0
	for _, c := range stats.ByCategory {
		largest = max(largest, c.Count)
	}
	for _, c := range stats.ByCategory {
		width := 0
		if largest > 0 {
			width = max(c.Count*chartBarWidth/largest, 1)
		}
		fmt.Fprintf(&b, "%-*s %s %d (%s%%)\n",
			chartLabelWidth, truncate(c.Category, chartLabelWidth),
			s.Bar.Render(strings.Repeat("█", width)+strings.Repeat(" ", chartBarWidth-width)),
			c.Count, c.Percentage)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
