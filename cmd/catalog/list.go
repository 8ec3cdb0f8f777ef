package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
	"github.com/rogerio-castellano/catalog-console/internal/models"
	"github.com/rogerio-castellano/catalog-console/internal/query"
)

// filterFlags are the filter options shared by list and stats.
type filterFlags struct {
	category string
	search   string
	minPrice float64
	maxPrice float64
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.category, "category", "", "Only products in this category")
	fs.StringVar(&f.search, "search", "", "Free-text search on product names")
	fs.Float64Var(&f.minPrice, "min-price", 0, "Inclusive lower price bound")
	fs.Float64Var(&f.maxPrice, "max-price", 0, "Inclusive upper price bound")
}

// apply overlays the flags the user actually set onto values.
func (f *filterFlags) apply(fs *pflag.FlagSet, values url.Values) {
	if fs.Changed("category") {
		values.Set(query.ParamCategory, f.category)
	}
	if fs.Changed("search") {
		values.Set(query.ParamSearch, f.search)
	}
	if fs.Changed("min-price") {
		values.Set(query.ParamMinPrice, strconv.FormatFloat(f.minPrice, 'f', -1, 64))
	}
	if fs.Changed("max-price") {
		values.Set(query.ParamMaxPrice, strconv.FormatFloat(f.maxPrice, 'f', -1, 64))
	}
}

func (a *app) listCmd() *cobra.Command {
	var (
		raw     string
		filters filterFlags
		sort    string
		page    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of products",
		Long: `Print one page of products. Flags are applied on top of --query, and a
page past the end is clamped to the last page, as the console does.`,
		Example: `  catalog list --category Toys --sort price:desc
  catalog list --query "?search=kite&page=2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := parseQueryFlag(raw, a.logger)
			fs := cmd.Flags()
			filters.apply(fs, values)
			if fs.Changed("sort") {
				by, order, err := parseSortFlag(sort)
				if err != nil {
					return err
				}
				values.Set(query.ParamSortBy, string(by))
				values.Set(query.ParamSortOrder, string(order))
			}
			if fs.Changed("page") {
				values.Set(query.ParamPage, strconv.Itoa(page))
			}
			if fs.Changed("limit") {
				values.Set(query.ParamLimit, strconv.Itoa(limit))
			}

			snap, current, err := a.load(values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(snap.Products) == 0 {
				fmt.Fprintln(out, "No products found.")
			} else if err := productTable(out, snap.Products); err != nil {
				return err
			}
			p := snap.Pagination
			if p.TotalPages == 0 {
				fmt.Fprintln(out, "Page 0 of 0 (0 products)")
			} else {
				fmt.Fprintf(out, "Page %d of %d (%d products)\n", p.CurrentPage, p.TotalPages, p.TotalProducts)
			}
			fmt.Fprintf(out, "query: ?%s\n", current.Encode())
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&raw, "query", "", `Start from a saved view, e.g. "?category=Toys&page=2"`)
	filters.register(fs)
	fs.StringVar(&sort, "sort", "", `Ordering: name, name:desc, price or price:desc`)
	fs.IntVar(&page, "page", query.DefaultPage, "Page number")
	fs.IntVar(&limit, "limit", query.DefaultLimit, "Products per page")
	return cmd
}

// load runs a single fetch cycle through the coordinator so the CLI sees the
// same defaults and page clamping as the console.
func (a *app) load(values url.Values) (coordinator.Snapshot, url.Values, error) {
	coord := coordinator.New(a.products,
		coordinator.WithLogger(a.logger),
		coordinator.WithDefaultLimit(a.cfg.UI.ItemsPerPage),
	)
	defer coord.Close()

	coord.Mount(values)
	coord.WaitIdle()

	snap := coord.Snapshot()
	if snap.Error != "" {
		return snap, nil, errors.New(snap.Error)
	}
	return snap, coord.Values(), nil
}

func parseSortFlag(s string) (models.SortField, models.SortOrder, error) {
	field, dir, _ := strings.Cut(s, ":")
	by, ok := models.ParseSortField(field)
	if !ok {
		return "", "", fmt.Errorf("invalid --sort %q: field must be name or price", s)
	}
	order := models.SortAsc
	if dir != "" {
		if order, ok = models.ParseSortOrder(dir); !ok {
			return "", "", fmt.Errorf("invalid --sort %q: direction must be asc or desc", s)
		}
	}
	return by, order, nil
}
