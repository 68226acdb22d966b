package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
)

// ConsoleFormatter renders the plan summary as a readable text report with
// the year-by-year ledger and the stress-test verdict.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string      { return "console" }
func (ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "BITCOIN RETIREMENT PLAN\n")
	fmt.Fprintf(buf, "=======================\n\n")
	fmt.Fprintf(buf, "Retirement year:       %d\n", summary.RetirementYear)
	fmt.Fprintf(buf, "Annual withdrawal:     %s\n", summary.Inputs.AnnualWithdrawal.Format())
	fmt.Fprintf(buf, "Starting bitcoin:      %s BTC\n", summary.Inputs.BitcoinAmount.StringFixed(8))
	fmt.Fprintf(buf, "Starting cash:         %s\n", summary.Inputs.CashAmount.Format())
	if summary.BitcoinAccumulated.IsPositive() {
		fmt.Fprintf(buf, "Accumulated bitcoin:   %s BTC (%s invested)\n",
			summary.BitcoinAccumulated.StringFixed(8), summary.CashInvested.Format())
	}
	fmt.Fprintf(buf, "\n")

	fmt.Fprintf(buf, "BEAR MARKET STRESS TEST (anchor %d)\n", summary.RetirementYear)
	verdict := "FAIL"
	if summary.Survival.Passes {
		verdict = "PASS"
	}
	fmt.Fprintf(buf, "  Verdict:             %s\n", verdict)
	fmt.Fprintf(buf, "  Model fair value:    %s\n", summary.Survival.FairValue.Round().Format())
	fmt.Fprintf(buf, "  Model floor:         %s\n", summary.Survival.FloorValue.Round().Format())
	fmt.Fprintf(buf, "  Remaining bitcoin:   %s BTC\n", summary.Survival.RemainingBitcoin.StringFixed(8))
	fmt.Fprintf(buf, "  Remaining cash:      %s\n", summary.Survival.RemainingCash.Round().Format())
	fmt.Fprintf(buf, "  Runway:              %s years\n", summary.Survival.RunwayYears.StringFixed(1))
	if summary.FirstSurvivableYear > 0 {
		fmt.Fprintf(buf, "  First survivable:    %d\n", summary.FirstSurvivableYear)
	} else {
		fmt.Fprintf(buf, "  First survivable:    none within scan horizon\n")
	}
	fmt.Fprintf(buf, "\n")

	if summary.DepletionYear > 0 {
		fmt.Fprintf(buf, "Portfolio depletes in %d.\n\n", summary.DepletionYear)
	} else {
		fmt.Fprintf(buf, "Portfolio survives all %d withdrawal years.\n\n", summary.WithdrawalYears())
	}

	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "YEAR\tPHASE\tPRICE\tP/FV\tCASH USED\tBTC SOLD\tBTC\tCASH\tTOTAL")
	for _, row := range summary.Ledger {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Year,
			row.Phase.Label(),
			row.Price.Round().Format(),
			row.FairValueRatio.StringFixed(2),
			row.CashUsed.Round().Format(),
			row.BitcoinSold.StringFixed(8),
			row.Bitcoin.StringFixed(8),
			row.Cash.Round().Format(),
			row.TotalValue.Round().Format(),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
