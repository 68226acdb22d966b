package domain

import (
	"time"

	"github.com/shopspring/decimal"

	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// PlanInputs are the raw user inputs to a retirement plan run. The
// presentation layer validates them (see internal/config) before handing
// them to the engine.
type PlanInputs struct {
	BitcoinAmount    moneypkg.Money `yaml:"bitcoin_amount" json:"bitcoin_amount"`
	CashAmount       moneypkg.Money `yaml:"cash_amount" json:"cash_amount"`
	AnnualWithdrawal moneypkg.Money `yaml:"annual_withdrawal" json:"annual_withdrawal"`

	// Two legacy spellings of the accumulation horizon survive in plan
	// files; the resolved horizon is the larger of the two.
	YearsUntilRetirement int `yaml:"years_until_retirement" json:"years_until_retirement"`
	YearsToRetirement    int `yaml:"years_to_retirement" json:"years_to_retirement"`

	MonthlySavingsAmount    moneypkg.Money `yaml:"monthly_savings_amount" json:"monthly_savings_amount"`
	DoubleDownInBearMarkets bool           `yaml:"double_down_in_bear_markets" json:"double_down_in_bear_markets"`

	// Supplied by the price-feed collaborator; zero means "use the model's
	// fair value for CurrentDate".
	CurrentPrice moneypkg.Money `yaml:"current_price" json:"current_price"`
	CurrentDate  time.Time      `yaml:"current_date" json:"current_date"`
}

// ResolveAccumulationYears returns the accumulation horizon in years.
func (pi PlanInputs) ResolveAccumulationYears() int {
	years := pi.YearsUntilRetirement
	if pi.YearsToRetirement > years {
		years = pi.YearsToRetirement
	}
	if years < 0 {
		return 0
	}
	return years
}

// AccumulationPlan describes the optional monthly-purchase phase that
// precedes the withdrawal ledger.
type AccumulationPlan struct {
	MonthlyAmount    moneypkg.Money `json:"monthly_amount"`
	Years            int            `json:"years"`
	DoubleDuringBear bool           `json:"double_during_bear"`
	StartDate        time.Time      `json:"start_date"`
}

// MonthlyPurchase is one month's row in an accumulation projection.
type MonthlyPurchase struct {
	MonthIndex       int            `json:"month_index"`
	Date             time.Time      `json:"date"`
	Year             int            `json:"year"`
	Phase            Phase          `json:"phase"`
	Price            moneypkg.Money `json:"price"`
	Contribution     moneypkg.Money `json:"contribution"`
	BitcoinPurchased moneypkg.Money `json:"bitcoin_purchased"`
	TotalBitcoin     moneypkg.Money `json:"total_bitcoin"`
	TotalInvested    moneypkg.Money `json:"total_invested"`
}

// LedgerRow is one simulated year in a lifecycle run. Rows are immutable
// once produced; the ledger is an ordered, append-only sequence.
type LedgerRow struct {
	Index int   `json:"index"`
	Year  int   `json:"year"`
	Phase Phase `json:"phase"`

	Price          moneypkg.Money  `json:"price"`
	FairValue      moneypkg.Money  `json:"fair_value"`
	FairValueRatio decimal.Decimal `json:"fair_value_ratio"`

	// Flows for the year. Withdrawal years populate CashUsed/BitcoinSold,
	// accumulation years populate CashInvested/BitcoinAdded.
	CashUsed     moneypkg.Money `json:"cash_used"`
	BitcoinSold  moneypkg.Money `json:"bitcoin_sold"`
	CashInvested moneypkg.Money `json:"cash_invested"`
	BitcoinAdded moneypkg.Money `json:"bitcoin_added"`
	Strategy     StrategyTag    `json:"strategy_tag,omitempty"`

	// End-of-year balances.
	Bitcoin    moneypkg.Money `json:"bitcoin"`
	Cash       moneypkg.Money `json:"cash"`
	TotalValue moneypkg.Money `json:"total_value"`
	Depleted   bool           `json:"depleted"`
}

// PlanSummary bundles everything a presentation layer needs from one plan
// run: the ledger, the stress-test verdict, and headline figures.
type PlanSummary struct {
	Inputs         PlanInputs     `json:"inputs"`
	RetirementYear int            `json:"retirement_year"`
	Ledger         []LedgerRow    `json:"ledger"`
	Survival       SurvivalResult `json:"survival"`

	// FirstSurvivableYear is the first calendar year at or after the
	// current year whose stress test passes; zero when the scan found none.
	FirstSurvivableYear int `json:"first_survivable_year"`

	// DepletionYear is the calendar year the portfolio ran dry; zero when
	// the ledger survives the full horizon.
	DepletionYear int `json:"depletion_year"`

	EndingBitcoin      moneypkg.Money `json:"ending_bitcoin"`
	EndingCash         moneypkg.Money `json:"ending_cash"`
	BitcoinAccumulated moneypkg.Money `json:"bitcoin_accumulated"`
	CashInvested       moneypkg.Money `json:"cash_invested"`
}

// WithdrawalYears counts the ledger rows that actually withdrew.
func (ps *PlanSummary) WithdrawalYears() int {
	n := 0
	for _, row := range ps.Ledger {
		if row.Phase != PhaseAccumulation && row.Phase != PhaseRetirementStart {
			n++
		}
	}
	return n
}
