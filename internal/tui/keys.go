package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the browse-mode bindings.
type KeyMap struct {
	Search       key.Binding
	Price        key.Binding
	Category     key.Binding
	Sort         key.Binding
	ClearFilters key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	PageSize     key.Binding
	New          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Price:        key.NewBinding(key.WithKeys("$"), key.WithHelp("$", "price range")),
		Category:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		ClearFilters: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		PageSize:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page size")),
		New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:         key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.Sort, k.PrevPage, k.NextPage, k.New, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Price, k.Category, k.Sort, k.ClearFilters},
		{k.PrevPage, k.NextPage, k.PageSize, k.Refresh},
		{k.New, k.Edit, k.Delete},
		{k.Help, k.Quit},
	}
}
