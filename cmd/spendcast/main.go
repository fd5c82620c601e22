package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/executors"
	"github.com/yurifrl/spendcast/pkg/importer"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:           "spendcast",
	Short:         "Explore and forecast personal expenses",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	importer *importer.Importer
	exec     *executors.Executor
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spendcast",
		Level:           cfg.Level(),
	})
	logger.Debug("configuration loaded", "source", cfg.Source, "output_dir", cfg.OutputDir)

	return &app{
		cfg:      cfg,
		logger:   logger,
		importer: importer.New(cfg, logger),
		exec:     executors.New(logger, cfg, cmd.OutOrStdout()),
	}, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("source", "", "Transaction source: file or ynab")
	rootCmd.PersistentFlags().StringP("out", "o", "", "Write every table as CSV into this directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug logging and fitted model dumps")

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	rootCmd.PersistentFlags().StringVar(&cliFilters.category, "category", "", "Filter by category (case insensitive)")

	forecastCmd.AddCommand(arimaCmd, boostCmd)
	rootCmd.AddCommand(summaryCmd, trendsCmd, exploreCmd, forecastCmd, runCmd, batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
