package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

func renderTable(w io.Writer, header []any, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func productTable(w io.Writer, products []models.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.Category,
			formatPrice(p.Price),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.Itoa(p.Stock),
		})
	}
	return renderTable(w, []any{"ID", "Name", "Category", "Price", "Rating", "Stock"}, rows)
}

func formatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
