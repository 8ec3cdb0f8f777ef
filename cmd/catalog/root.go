package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/client"
	"github.com/rogerio-castellano/catalog-console/internal/config"
	"github.com/rogerio-castellano/catalog-console/internal/logging"
)

// app carries what every command needs once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	debug      bool

	cfg      config.Config
	logger   *zap.Logger
	products *client.ProductsService
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and manage the product catalog",
		Long: `catalog talks to the catalog REST API.

Run "catalog browse" for the interactive console, or use the other commands
for one-shot listing, statistics and edits. Views are addressed by a query
string such as "?category=Toys&sortBy=price&page=2", which browse prints on
exit and list and browse accept through --query.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a YAML config file (default ./catalog.yaml)")
	flags.String("api-url", "", "Base URL of the catalog API")
	flags.String("token", "", "Bearer token sent with write requests")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	mustBind(a.v, config.KeyAPIBaseURL, flags.Lookup("api-url"))
	mustBind(a.v, config.KeyAPIToken, flags.Lookup("token"))

	root.AddCommand(
		a.browseCmd(),
		a.listCmd(),
		a.statsCmd(),
		a.categoriesCmd(),
		a.getCmd(),
		a.createCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.importCmd(),
		a.tokenCmd(),
		versionCmd(),
	)
	return root
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag for %s: %v", key, err))
	}
}

// setup loads the configuration and builds the logger and API client. The
// interactive console logs to ui.logFile only so the screen stays clean.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config.LoadDotEnv()

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	if cmd.Name() == "browse" {
		a.logger, err = logging.NewFileOrNop(cfg.Log.Level, cfg.UI.LogFile)
	} else {
		a.logger, err = logging.New(cfg.Log.Level)
	}
	if err != nil {
		return err
	}

	c, err := client.New(cfg.API.BaseURL,
		client.WithTimeout(cfg.API.Timeout),
		client.WithToken(cfg.API.Token),
		client.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		client.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	a.products = client.NewProductsService(c)
	return nil
}
