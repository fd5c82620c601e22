package main

import (
	"github.com/spf13/cobra"
)

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// analysisCommand builds a subcommand that loads the table and runs fn.
func analysisCommand(use, short string, fn func(a *app, input string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [flags] <input_path>",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return fn(a, inputArg(args))
		},
	}
}

var summaryCmd = analysisCommand("summary", "Total spending, spending by category and by weekday", func(a *app, input string) error {
	table, _, err := a.load(input)
	if err != nil {
		return err
	}
	return a.exec.Summary(table)
})

var trendsCmd = analysisCommand("trends", "Monthly rolling statistics, volatility and month-over-month change", func(a *app, input string) error {
	table, _, err := a.load(input)
	if err != nil {
		return err
	}
	return a.exec.Trends(table)
})

var exploreCmd = analysisCommand("explore", "Data-quality checks and amount distributions", func(a *app, input string) error {
	table, records, err := a.load(input)
	if err != nil {
		return err
	}
	return a.exec.Explore(table, records)
})

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast monthly spending",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var arimaCmd = analysisCommand("arima", "Forecast with an ARIMA model of the monthly totals", func(a *app, input string) error {
	table, _, err := a.load(input)
	if err != nil {
		return err
	}
	_, err = a.exec.ARIMA(table)
	return err
})

var boostCmd = analysisCommand("boost", "Forecast recursively with gradient-boosted trees on lagged months", func(a *app, input string) error {
	table, _, err := a.load(input)
	if err != nil {
		return err
	}
	_, err = a.exec.Boost(table)
	return err
})
