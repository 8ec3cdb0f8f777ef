package tui

import (
	"strings"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// deleteDialog asks before a product is deleted. A failed delete keeps the
// dialog open with the error.
type deleteDialog struct {
	product  models.Product
	deleting bool
	err      string
}

func (d *deleteDialog) view(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Delete product"))
	b.WriteString("\n\n")
	b.WriteString("Delete " + s.Bold.Render(d.product.Name) + "? This cannot be undone.\n\n")
	switch {
	case d.deleting:
		b.WriteString(s.Muted.Render("Deleting..."))
	case d.err != "":
		b.WriteString(s.Error.Render(d.err) + "\n")
		b.WriteString(s.Muted.Render("y retry • n cancel"))
	default:
		b.WriteString(s.Muted.Render("y delete • n cancel"))
	}
	return s.Dialog.Render(b.String())
}
