package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"statemap/internal/config"
	"statemap/internal/geom"
	"statemap/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	dataPath   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "statemap",
		Short: "Look up and plot state boundary polygons",
		Long: `statemap loads a table of (state, lon, lat) rows once and answers
lookups by exact state name. Rows of one state, in file order, form that
state's boundary.

The table path comes from --data, STATEMAP_DATA, or data.path in the
config file, in that order.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "statemap.yaml", "Config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&a.dataPath, "data", "d", "", "Polygon CSV (overrides config and STATEMAP_DATA)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		a.statesCmd(),
		a.getCmd(),
		a.plotCmd(),
		a.exportCmd(),
		a.viewCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

// setup resolves configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFiles(".env.local", ".env"); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Data.Path = a.dataPath
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging.Level, a.verbose)
	return err
}

// openStore loads the polygon table. Failure is fatal to the command.
func (a *app) openStore() (*geom.Store, error) {
	start := time.Now()
	store, err := geom.Load(a.cfg.Data.Path)
	if err != nil {
		a.logger.Error("Failed to load polygon table", zap.String("path", a.cfg.Data.Path), zap.Error(err))
		return nil, err
	}
	a.logger.Debug("Loaded polygon table",
		zap.String("path", store.Source()),
		zap.Int("rows", store.Len()),
		zap.Int("states", len(store.States())),
		zap.Duration("elapsed", time.Since(start)))
	return store, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
