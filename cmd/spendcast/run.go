package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/plan"
	"github.com/yurifrl/spendcast/pkg/service"
)

var runCmd = &cobra.Command{
	Use:   "run <plan_file>",
	Short: "Run the analyses listed in a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		applyPlan(a.cfg, p)
		if err := a.cfg.Validate(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Plan %s\n", args[0])
		p.Print(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout())

		table, records, err := a.load(p.Input)
		if err != nil {
			return err
		}
		return a.exec.Apply(p, table, records)
	},
}

// applyPlan lets plan settings override the configuration. Flags given on
// the command line still win for the output directory.
func applyPlan(cfg *config.Config, p *plan.Plan) {
	if p.Source != "" {
		cfg.Source = p.Source
	}
	if p.OutputDir != "" && cfg.OutputDir == "" {
		cfg.OutputDir = p.OutputDir
	}
	if p.YNAB.BudgetID != "" {
		cfg.YNAB.BudgetID = p.YNAB.BudgetID
	}
	if p.YNAB.AccountID != "" {
		cfg.YNAB.AccountID = p.YNAB.AccountID
	}
	if p.YNAB.TokenEnv != "" {
		cfg.YNAB.TokenEnv = p.YNAB.TokenEnv
	}
}

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Write a monthly trend table for every CSV or XLS file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		results, err := service.NewProcessor(a.cfg, a.logger).ProcessDirectory(args[0])
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", r.Input, r.Output)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(results))
		}
		a.logger.Info("batch complete", "files", len(results))
		return nil
	},
}
