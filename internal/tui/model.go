package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
	"github.com/rogerio-castellano/catalog-console/internal/debounce"
	"github.com/rogerio-castellano/catalog-console/internal/models"
)

// Catalog is the part of the coordinator the console drives.
type Catalog interface {
	Snapshot() coordinator.Snapshot
	UpdateFilters(changes ...coordinator.FilterChange)
	ClearFilters()
	GoToPage(page int) bool
	ChangeItemsPerPage(limit int) bool
	Refresh()
	DeleteProduct(ctx context.Context, id string) error
}

// ProductWriter saves what the product form submits.
type ProductWriter interface {
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (models.Product, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modePrice
	modeConfirm
	modeForm
)

type deleteDoneMsg struct {
	name string
	err  error
}

type formSavedMsg struct {
	product models.Product
	err     error
}

type Option func(*Model)

// WithSearchDelay sets the quiet period before typed search text is applied.
func WithSearchDelay(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.searchDelay = d
		}
	}
}

// WithContext bounds the requests the console makes on its own (deletes
// and saves).
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is the bubbletea model of the console.
type Model struct {
	catalog Catalog
	writer  ProductWriter
	mailbox *Mailbox
	ctx     context.Context
	logger  *zap.Logger

	keys   KeyMap
	help   help.Model
	styles Styles

	snap  coordinator.Snapshot
	query string

	mode        mode
	searchDelay time.Duration
	search      textinput.Model
	searchInput *debounce.SearchInput
	minPrice    textinput.Model
	maxPrice    textinput.Model
	priceFocus  int
	priceErr    string
	table       table.Model
	confirm     *deleteDialog
	form        *productForm
	notice      string

	width, height int
	quitting      bool
}

// New builds the console around catalog. Snapshots published to mailbox
// are rendered as they arrive.
func New(catalog Catalog, writer ProductWriter, mailbox *Mailbox, opts ...Option) Model {
	m := Model{
		catalog:     catalog,
		writer:      writer,
		mailbox:     mailbox,
		ctx:         context.Background(),
		logger:      zap.NewNop(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      DefaultStyles(),
		searchDelay: debounce.DefaultSearchDelay,
		table:       newProductTable(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	snap := catalog.Snapshot()
	m.search = textinput.New()
	m.search.Placeholder = "filter by name"
	m.search.Prompt = ""
	m.search.Width = 30
	m.search.SetValue(snap.Filters.Search)
	m.minPrice = newPriceInput()
	m.maxPrice = newPriceInput()

	logger := m.logger
	m.searchInput = debounce.NewSearchInput(m.searchDelay, snap.Filters.Search, func(text string) {
		logger.Debug("applying search", zap.String("search", text))
		catalog.UpdateFilters(coordinator.SetSearch(text))
	})

	m.applySnapshot(snap)
	return m
}

func newPriceInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "any"
	in.Width = 10
	in.CharLimit = 16
	return in
}

func (m Model) Init() tea.Cmd {
	return m.mailbox.wait()
}

// applySnapshot renders snap unless a newer one is already on screen.
func (m *Model) applySnapshot(snap coordinator.Snapshot) {
	if snap.Version < m.snap.Version {
		return
	}
	m.snap = snap
	m.table.SetRows(productRows(snap.Products))
	m.table.SetCursor(m.table.Cursor())
	m.query = snap.Query
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case snapshotMsg:
		m.applySnapshot(coordinator.Snapshot(msg))
		return m, m.mailbox.wait()

	case deleteDoneMsg:
		return m.deleteDone(msg), nil

	case formSavedMsg:
		return m.formSaved(msg), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		m.notice = ""
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modePrice:
			return m.updatePrice(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	// Cursor blinks and the like go to whatever input has focus.
	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modePrice:
		cmd = m.updatePriceInput(msg)
	case modeForm:
		if m.form != nil {
			cmd = m.form.updateInput(msg)
		}
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.searchInput.Stop()
	return m, tea.Quit
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if key.Matches(msg, k.Quit) {
		return m.quit()
	}
	// The error screen only offers a retry.
	if m.snap.Error != "" {
		if key.Matches(msg, k.Refresh) {
			m.catalog.Refresh()
		}
		return m, nil
	}

	p := m.snap.Pagination
	switch {
	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, k.Price):
		return m, m.openPrice()
	case key.Matches(msg, k.Category):
		if change := nextCategoryChange(m.snap.Filters.Category, m.snap.Categories); change != nil {
			m.catalog.UpdateFilters(change)
		}
	case key.Matches(msg, k.Sort):
		m.catalog.UpdateFilters(nextSortChange(m.snap.Filters))
	case key.Matches(msg, k.ClearFilters):
		m.searchInput.Reset()
		m.search.SetValue("")
		m.catalog.ClearFilters()
	case key.Matches(msg, k.PrevPage):
		m.catalog.GoToPage(p.CurrentPage - 1)
	case key.Matches(msg, k.NextPage):
		m.catalog.GoToPage(p.CurrentPage + 1)
	case key.Matches(msg, k.PageSize):
		m.catalog.ChangeItemsPerPage(nextPageSize(p.ItemsPerPage))
	case key.Matches(msg, k.Refresh):
		m.catalog.Refresh()
	case key.Matches(msg, k.New):
		m.form = newProductForm(nil)
		m.mode = modeForm
	case key.Matches(msg, k.Edit):
		if product, ok := m.selected(); ok {
			m.form = newProductForm(&product)
			m.mode = modeForm
		}
	case key.Matches(msg, k.Delete):
		if product, ok := m.selected(); ok {
			m.confirm = &deleteDialog{product: product}
			m.mode = modeConfirm
		}
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searchInput.Flush()
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEsc:
		// A pending search still fires.
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.searchInput.Set(value)
	}
	return m, cmd
}

func (m *Model) openPrice() tea.Cmd {
	m.mode = modePrice
	m.priceErr = ""
	m.priceFocus = 0
	m.minPrice.SetValue(formatOptional(m.snap.Filters.MinPrice))
	m.maxPrice.SetValue(formatOptional(m.snap.Filters.MaxPrice))
	m.maxPrice.Blur()
	return m.minPrice.Focus()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strings.TrimPrefix(formatPrice(*v), "$")
}

func (m *Model) updatePriceInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.priceFocus == 0 {
		m.minPrice, cmd = m.minPrice.Update(msg)
	} else {
		m.maxPrice, cmd = m.maxPrice.Update(msg)
	}
	return cmd
}

func (m Model) updatePrice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.priceFocus = 1 - m.priceFocus
		if m.priceFocus == 0 {
			m.maxPrice.Blur()
			return m, m.minPrice.Focus()
		}
		m.minPrice.Blur()
		return m, m.maxPrice.Focus()

	case tea.KeyEsc:
		m.closePrice()
		return m, nil

	case tea.KeyEnter:
		lo, errLo := parseNumber(m.minPrice.Value())
		hi, errHi := parseNumber(m.maxPrice.Value())
		switch {
		case errLo != nil || errHi != nil:
			m.priceErr = "Prices must be numbers"
			return m, nil
		case lo != nil && hi != nil && *lo > *hi:
			m.priceErr = "Min price cannot exceed max price"
			return m, nil
		}
		m.catalog.UpdateFilters(coordinator.SetPriceRange(lo, hi))
		m.closePrice()
		return m, nil
	}

	return m, m.updatePriceInput(msg)
}

func (m *Model) closePrice() {
	m.minPrice.Blur()
	m.maxPrice.Blur()
	m.priceErr = ""
	m.mode = modeBrowse
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.confirm
	if d == nil {
		m.mode = modeBrowse
		return m, nil
	}
	if d.deleting {
		return m, nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		d.deleting = true
		d.err = ""
		catalog, ctx, product := m.catalog, m.ctx, d.product
		return m, func() tea.Msg {
			return deleteDoneMsg{name: product.Name, err: catalog.DeleteProduct(ctx, product.ID)}
		}
	case "n", "N", "esc":
		m.confirm = nil
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) deleteDone(msg deleteDoneMsg) Model {
	if m.confirm == nil {
		return m
	}
	m.confirm.deleting = false
	if msg.err != nil {
		m.logger.Warn("delete failed", zap.Error(msg.err))
		m.confirm.err = msg.err.Error()
		return m
	}
	m.confirm = nil
	m.mode = modeBrowse
	m.notice = "Deleted " + msg.name
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.mode = modeBrowse
		return m, nil
	}
	if f.saving {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		m.mode = modeBrowse
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return m, nil
	case tea.KeyEnter:
		req, ok := f.validate()
		if !ok {
			return m, nil
		}
		f.saving = true
		f.submitErr = ""
		writer, ctx := m.writer, m.ctx
		if f.editing != nil {
			id := f.editing.ID
			return m, func() tea.Msg {
				product, err := writer.UpdateProduct(ctx, id, updateRequest(req))
				return formSavedMsg{product: product, err: err}
			}
		}
		return m, func() tea.Msg {
			product, err := writer.CreateProduct(ctx, req)
			return formSavedMsg{product: product, err: err}
		}
	}
	return m, f.updateInput(msg)
}

// formSaved closes the form and refreshes the catalog on success. A failed
// save leaves the form open and the catalog untouched.
func (m Model) formSaved(msg formSavedMsg) Model {
	if m.form == nil {
		return m
	}
	m.form.saving = false
	if msg.err != nil {
		m.logger.Warn("save failed", zap.Error(msg.err))
		m.form.submitErr = "Could not save product: " + msg.err.Error()
		return m
	}
	m.form = nil
	m.mode = modeBrowse
	m.notice = "Saved " + msg.product.Name
	m.catalog.Refresh()
	return m
}

func (m Model) tableHeight() int {
	if m.height == 0 {
		return defaultTableHeight
	}
	return max(m.height-26, 3)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.mode == modeForm && m.form != nil:
		return m.place(m.form.view(m.styles, m.snap.Categories))
	case m.mode == modeConfirm && m.confirm != nil:
		return m.place(m.confirm.view(m.styles))
	case m.snap.Error != "":
		return m.place(m.errorView())
	}

	sections := []string{
		m.headerView(),
		m.filterBarView(),
		m.statsPanelView(),
		categoryChartView(m.snap.Statistics, m.styles),
		m.styles.Title.Render("Products") + "   " + pageSizeView(m.snap.Pagination.ItemsPerPage, m.styles),
		m.productsView(),
	}
	if footer := paginationView(m.snap.Pagination, m.styles); footer != "" {
		sections = append(sections, footer)
	}
	sections = append(sections, m.statusBarView(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) headerView() string {
	header := m.styles.Header.Render("Catalog Console")
	if m.snap.Loading {
		header += " " + m.styles.Warning.Render("loading...")
	}
	return header
}

func (m Model) errorView() string {
	s := m.styles
	return s.Dialog.Render(strings.Join([]string{
		s.Error.Render("✗ Connection error"),
		"",
		m.snap.Error,
		s.Muted.Render("Could not reach the catalog API. Check that the server is running."),
		"",
		s.Muted.Render("r retry • q quit"),
	}, "\n"))
}

func (m Model) statusBarView() string {
	q := "?" + m.query
	if m.query == "" {
		q = "(no query)"
	}
	line := m.styles.StatusBar.Render(q)
	if m.notice != "" {
		line += "   " + m.styles.Success.Render(m.notice)
	}
	return line
}
