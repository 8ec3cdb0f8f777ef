package main

import (
	"fmt"
	"net/url"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/coordinator"
	"github.com/rogerio-castellano/catalog-console/internal/query"
	"github.com/rogerio-castellano/catalog-console/internal/tui"
)

func (a *app) browseCmd() *cobra.Command {
	var raw string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive console",
		Long: `Open the full-screen console. Press ? inside it for the key bindings.
On exit the query string of the last view is printed so it can be reopened
with --query.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := parseQueryFlag(raw, a.logger)

			var last atomic.Pointer[string]
			mailbox := tui.NewMailbox()
			coord := coordinator.New(a.products,
				coordinator.WithOnChange(mailbox.Post),
				coordinator.WithURLSink(coordinator.URLSinkFunc(func(v url.Values) {
					encoded := v.Encode()
					last.Store(&encoded)
				})),
				coordinator.WithLogger(a.logger),
				coordinator.WithDefaultLimit(a.cfg.UI.ItemsPerPage),
			)
			defer coord.Close()
			coord.Mount(values)

			model := tui.New(coord, a.products, mailbox,
				tui.WithSearchDelay(a.cfg.UI.SearchDebounce),
				tui.WithContext(cmd.Context()),
				tui.WithLogger(a.logger),
			)
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("console stopped: %w", err)
			}

			if q := last.Load(); q != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "?%s\n", *q)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&raw, "query", "", `Initial view, e.g. "?category=Toys&page=2"`)
	return cmd
}

// parseQueryFlag accepts a query string with or without the leading '?'.
// Pairs that cannot be decoded are dropped, the rest are kept.
func parseQueryFlag(raw string, logger *zap.Logger) url.Values {
	values, err := query.SplitQueryString(raw)
	if err != nil {
		logger.Debug("ignoring malformed --query parameter", zap.String("query", raw), zap.Error(err))
	}
	return values
}
