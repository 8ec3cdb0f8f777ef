package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

const (
	fieldName = iota
	fieldCategory
	fieldPrice
	fieldRating
	fieldStock
	fieldCount
)

const (
	maxNameLength     = 255
	maxCategoryLength = 100
	minRating         = 1
	maxRating         = 5
)

var fieldLabels = [fieldCount]string{"Name", "Category", "Price", "Rating", "Stock"}

// productForm edits a new product or an existing one.
type productForm struct {
	editing *models.Product

	inputs [fieldCount]textinput.Model
	errors [fieldCount]string
	focus  int

	saving    bool
	submitErr string
}

func newProductForm(p *models.Product) *productForm {
	f := &productForm{editing: p}
	placeholders := [fieldCount]string{"Product name", "Category", "0.00", "1-5 (optional)", "0 (optional)"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = ""
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldName].CharLimit = maxNameLength
	f.inputs[fieldCategory].CharLimit = maxCategoryLength

	if p != nil {
		f.inputs[fieldName].SetValue(p.Name)
		f.inputs[fieldCategory].SetValue(p.Category)
		f.inputs[fieldPrice].SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
		if p.Rating != 0 {
			f.inputs[fieldRating].SetValue(strconv.FormatFloat(p.Rating, 'f', -1, 64))
		}
		f.inputs[fieldStock].SetValue(strconv.Itoa(p.Stock))
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f *productForm) title() string {
	if f.editing != nil {
		return "Edit product"
	}
	return "New product"
}

func (f *productForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// updateInput forwards msg to the focused field.
func (f *productForm) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// validate checks the fields and, when they are all valid, returns the
// request to send.
func (f *productForm) validate() (models.CreateProductRequest, bool) {
	var req models.CreateProductRequest
	f.errors = [fieldCount]string{}

	req.Name = strings.TrimSpace(f.inputs[fieldName].Value())
	f.errors[fieldName] = checkLength("Name", req.Name, maxNameLength)

	req.Category = strings.TrimSpace(f.inputs[fieldCategory].Value())
	f.errors[fieldCategory] = checkLength("Category", req.Category, maxCategoryLength)

	price, err := parseNumber(f.inputs[fieldPrice].Value())
	switch {
	case err != nil:
		f.errors[fieldPrice] = "Price must be a number"
	case price == nil:
		f.errors[fieldPrice] = "Price is required"
	case *price < 0:
		f.errors[fieldPrice] = "Price must be a positive number"
	default:
		req.Price = *price
	}

	rating, err := parseNumber(f.inputs[fieldRating].Value())
	switch {
	case err != nil:
		f.errors[fieldRating] = "Rating must be a number"
	case rating != nil && (*rating < minRating || *rating > maxRating):
		f.errors[fieldRating] = fmt.Sprintf("Rating must be between %d and %d", minRating, maxRating)
	default:
		req.Rating = rating
	}

	if s := strings.TrimSpace(f.inputs[fieldStock].Value()); s != "" {
		stock, err := strconv.Atoi(s)
		switch {
		case err != nil:
			f.errors[fieldStock] = "Stock must be a whole number"
		case stock < 0:
			f.errors[fieldStock] = "Stock cannot be negative"
		default:
			req.Stock = &stock
		}
	}

	for _, e := range f.errors {
		if e != "" {
			return req, false
		}
	}
	return req, true
}

func checkLength(label, value string, maxLen int) string {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return label + " is required"
	case n > maxLen:
		return fmt.Sprintf("%s must be at most %d characters", label, maxLen)
	}
	return ""
}

// parseNumber returns nil for blank input.
func parseNumber(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}

// updateRequest turns a validated create request into a full patch.
func updateRequest(req models.CreateProductRequest) models.UpdateProductRequest {
	return models.UpdateProductRequest{
		Name:     &req.Name,
		Category: &req.Category,
		Price:    &req.Price,
		Rating:   req.Rating,
		Stock:    req.Stock,
	}
}

func (f *productForm) view(s Styles, categories []string) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(f.title()))
	b.WriteString("\n\n")

	for i, in := range f.inputs {
		label := fmt.Sprintf("%-9s", fieldLabels[i])
		if i == f.focus {
			label = s.Active.Render(label)
		}
		b.WriteString(label + " " + in.View() + "\n")
		if f.errors[i] != "" {
			b.WriteString(strings.Repeat(" ", 10) + s.Error.Render(f.errors[i]) + "\n")
		}
		if i == fieldCategory && len(categories) > 0 {
			b.WriteString(strings.Repeat(" ", 10) + s.Muted.Render("existing: "+strings.Join(categories, ", ")) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case f.saving:
		b.WriteString(s.Muted.Render("Saving..."))
	case f.submitErr != "":
		b.WriteString(s.Error.Render(f.submitErr))
	default:
		b.WriteString(s.Muted.Render("tab next field • enter save • esc cancel"))
	}
	return s.Dialog.Render(lipgloss.NewStyle().Width(64).Render(b.String()))
}
