package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/catalog-console/internal/auth"
)

// Set through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

func (a *app) tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		secret  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for write requests",
		Long: `Sign a token with the server's JWT secret (server.jwtSecret, or --secret).
Pass it to other commands with --token or CATALOG_API_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("secret") {
				secret = a.cfg.Server.JWTSecret
			}
			token, err := auth.GenerateToken([]byte(secret), subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&subject, "subject", "catalog-cli", "Token subject")
	fs.DurationVar(&ttl, "ttl", auth.DefaultTTL, "Token lifetime")
	fs.StringVar(&secret, "secret", "", "Signing secret (default server.jwtSecret)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Needs no config or client.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s (commit %s, %s)\n", version, commit, runtime.Version())
		},
	}
}
