package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/calculation"
	"github.com/hodlplan/bitcoin-retirement-calculator/internal/config"
	"github.com/hodlplan/bitcoin-retirement-calculator/internal/output"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "btcplan",
		Short: "Bitcoin retirement plan calculator",
		Long: `btcplan models a bitcoin+cash portfolio against a power-law price
trend with a four-year boom/bust cycle, stress-tests it against a forced
bear market, and simulates up to 50 withdrawal years.`,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Print engine debug output to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlanCmd(),
		newSurvivalCmd(),
		newCycleCmd(),
		newExampleConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("btcplan version %s\n", version)
		},
	}
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <plan.yaml>",
		Short: "Run a retirement plan file and print the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			toFile, _ := cmd.Flags().GetBool("output")

			parser := config.NewInputParser()
			inputs, problems, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				return fmt.Errorf("invalid plan:\n  - %s", strings.Join(problems, "\n  - "))
			}

			engine := calculation.NewPlanEngine()
			engine.SetLogger(loggerFromFlags(cmd))
			summary, err := engine.RunPlan(context.Background(), *inputs)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(formatName)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", formatName, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if toFile {
				filename, err := output.WriteFormatted(formatter, summary)
				if err != nil {
					return err
				}
				fmt.Printf("report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(summary)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	cmd.Flags().String("format", "console", "Output format: console, csv, json")
	cmd.Flags().Bool("output", false, "Write a timestamped report file instead of stdout")
	return cmd
}

func newSurvivalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survival",
		Short: "Run the bear-market stress test for one set of holdings",
		RunE: func(cmd *cobra.Command, args []string) error {
			price, _ := cmd.Flags().GetFloat64("price")
			year, _ := cmd.Flags().GetInt("year")
			btc, _ := cmd.Flags().GetFloat64("bitcoin")
			withdrawal, _ := cmd.Flags().GetFloat64("withdrawal")
			cash, _ := cmd.Flags().GetFloat64("cash")

			test := calculation.SurvivalTest{}
			result := test.Run(
				moneypkg.NewMoney(price),
				year,
				moneypkg.NewMoney(btc),
				moneypkg.NewMoney(withdrawal),
				moneypkg.NewMoney(cash),
			)

			verdict := "FAIL"
			if result.Passes {
				verdict = "PASS"
			}
			fmt.Printf("%s  (anchor %d, fair %s, floor %s)\n", verdict, year,
				result.FairValue.Round().Format(), result.FloorValue.Round().Format())
			fmt.Printf("remaining: %s BTC, %s cash, runway %s years\n",
				result.RemainingBitcoin.StringFixed(8), result.RemainingCash.Round().Format(),
				result.RunwayYears.StringFixed(1))
			return nil
		},
	}
	cmd.Flags().Float64("price", 0, "Observed market price (informational)")
	cmd.Flags().Int("year", time.Now().UTC().Year(), "Anchor calendar year")
	cmd.Flags().Float64("bitcoin", 0, "Bitcoin holdings")
	cmd.Flags().Float64("withdrawal", 0, "Annual withdrawal in USD")
	cmd.Flags().Float64("cash", 0, "Cash holdings in USD")
	return cmd
}

func newCycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Print modeled cycle prices for an anchor year",
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, _ := cmd.Flags().GetInt("anchor")
			years, _ := cmd.Flags().GetInt("years")

			model := calculation.CyclePhaseModel{}
			for offset := 0; offset < years; offset++ {
				cp := model.PriceForOffset(anchor, offset)
				fmt.Printf("%d  %-22s %s\n", anchor+offset, cp.Phase.Label(), cp.Price.Round().Format())
			}
			return nil
		},
	}
	cmd.Flags().Int("anchor", time.Now().UTC().Year(), "Anchor (retirement start) year")
	cmd.Flags().Int("years", 12, "Number of years to print")
	return cmd
}

func newExampleConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write a starter plan YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "plan.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if err := config.NewInputParser().WriteExamplePlan(filename); err != nil {
				return err
			}
			fmt.Printf("example plan written to %s\n", filename)
			return nil
		},
	}
	return cmd
}

// stderrLogger prints engine debug output when --verbose is set.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "DEBUG "+format+"\n", args...)
}
func (stderrLogger) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO  "+format+"\n", args...)
}
func (stderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN  "+format+"\n", args...)
}
func (stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR "+format+"\n", args...)
}

func loggerFromFlags(cmd *cobra.Command) calculation.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return stderrLogger{}
	}
	return calculation.NopLogger{}
}
