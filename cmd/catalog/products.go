package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/catalog-console/internal/models"
)

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.products.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows := [][]string{
				{"ID", p.ID},
				{"Name", p.Name},
				{"Category", p.Category},
				{"Price", formatPrice(p.Price)},
				{"Rating", strconv.FormatFloat(p.Rating, 'f', 1, 64)},
				{"Stock", strconv.Itoa(p.Stock)},
			}
			if p.CreatedAt != "" {
				rows = append(rows, []string{"Created", p.CreatedAt})
			}
			if p.UpdatedAt != "" {
				rows = append(rows, []string{"Updated", p.UpdatedAt})
			}
			return renderTable(cmd.OutOrStdout(), []any{"Field", "Value"}, rows)
		},
	}
}

// productFlags holds the editable product fields.
type productFlags struct {
	name     string
	category string
	price    float64
	rating   float64
	stock    int
}

func (p *productFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&p.name, "name", "", "Product name")
	fs.StringVar(&p.category, "category", "", "Product category")
	fs.Float64Var(&p.price, "price", 0, "Price")
	fs.Float64Var(&p.rating, "rating", 0, "Rating between 1 and 5")
	fs.IntVar(&p.stock, "stock", 0, "Units in stock")
}

func (a *app) createCmd() *cobra.Command {
	var p productFlags

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Add a product",
		Example: `  catalog create --name Kite --category Toys --price 19.99 --stock 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			req := models.CreateProductRequest{Name: p.name, Category: p.category, Price: p.price}
			if fs.Changed("rating") {
				req.Rating = &p.rating
			}
			if fs.Changed("stock") {
				req.Stock = &p.stock
			}

			created, err := a.products.CreateProduct(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", created.ID)
			return nil
		},
	}
	p.register(cmd)
	for _, name := range []string{"name", "category", "price"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var p productFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			var req models.UpdateProductRequest
			if fs.Changed("name") {
				req.Name = &p.name
			}
			if fs.Changed("category") {
				req.Category = &p.category
			}
			if fs.Changed("price") {
				req.Price = &p.price
			}
			if fs.Changed("rating") {
				req.Rating = &p.rating
			}
			if fs.Changed("stock") {
				req.Stock = &p.stock
			}
			if req == (models.UpdateProductRequest{}) {
				return errors.New("nothing to update: set at least one of --name, --category, --price, --rating, --stock")
			}

			updated, err := a.products.UpdateProduct(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", updated.ID)
			return nil
		},
	}
	p.register(cmd)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.products.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load products from a CSV file",
		Long: `Load products from a CSV file with the header name,category,price,rating,stock.
With --mode skip a row whose name already exists is reported as an error;
with --mode update it overwrites the existing product.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "skip" && mode != "update" {
				return fmt.Errorf("invalid --mode %q: must be skip or update", mode)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := a.products.ImportProducts(cmd.Context(), f, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d products\n", res.Imported)
			if len(res.Errors) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(res.Errors))
			for _, e := range res.Errors {
				rows = append(rows, []string{e.Field, e.Description})
			}
			return renderTable(out, []any{"Row", "Error"}, rows)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "skip", "What to do with existing products: skip or update")
	return cmd
}
