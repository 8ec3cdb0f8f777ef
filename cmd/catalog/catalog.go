package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/catalog-console/internal/query"
)

func (a *app) statsCmd() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print catalog statistics for a filter set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := url.Values{}
			filters.apply(cmd.Flags(), values)
			f := query.Parse(values).Filters

			stats, err := a.products.GetStatistics(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total products: %d\n", stats.TotalProducts)
			fmt.Fprintf(out, "Average price:  %s\n", formatPrice(stats.AveragePrice))
			if len(stats.ByCategory) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(stats.ByCategory))
			for _, c := range stats.ByCategory {
				rows = append(rows, []string{c.Category, strconv.Itoa(c.Count), c.Percentage + "%"})
			}
			return renderTable(out, []any{"Category", "Count", "Share"}, rows)
		},
	}
	filters.register(cmd.Flags())
	return cmd
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List every category in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := a.products.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
