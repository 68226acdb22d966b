package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// survivableYearScanHorizon bounds the forward scan for the first calendar
// year whose stress test passes.
const survivableYearScanHorizon = 60

// PlanEngine orchestrates a complete plan run: the bear-market stress test,
// the first-survivable-year scan, and the lifecycle ledger.
type PlanEngine struct {
	Prices    PriceModel
	Cycle     CyclePhaseModel
	Survival  SurvivalTest
	Policy    AllocationPolicy
	Projector AccumulationProjector
	Logger    Logger
}

// NewPlanEngine creates a plan engine with a no-op logger.
func NewPlanEngine() *PlanEngine {
	var prices PriceModel
	cycle := CyclePhaseModel{Prices: prices}
	return &PlanEngine{
		Prices:    prices,
		Cycle:     cycle,
		Survival:  SurvivalTest{Prices: prices},
		Policy:    AllocationPolicy{Prices: prices},
		Projector: AccumulationProjector{Prices: prices, Cycle: cycle},
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (pe *PlanEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// RunPlan executes a full plan for the given inputs and returns the
// assembled summary. Inputs should already have passed validation; the
// engine re-checks only what would make the run meaningless.
func (pe *PlanEngine) RunPlan(ctx context.Context, inputs domain.PlanInputs) (*domain.PlanSummary, error) {
	if !inputs.AnnualWithdrawal.IsPositive() {
		return nil, fmt.Errorf("annual withdrawal must be positive, got %s", inputs.AnnualWithdrawal)
	}
	if inputs.BitcoinAmount.IsNegative() || inputs.CashAmount.IsNegative() {
		return nil, fmt.Errorf("holdings cannot be negative (bitcoin %s, cash %s)", inputs.BitcoinAmount, inputs.CashAmount)
	}

	now := inputs.CurrentDate
	if now.IsZero() {
		now = time.Now().UTC()
	}

	price := inputs.CurrentPrice
	if !price.IsPositive() {
		price = pe.Prices.FairValue(now)
		pe.Logger.Debugf("no current price supplied, using model fair value %s", price)
	}

	accumulationYears := inputs.ResolveAccumulationYears()
	retirementYear := now.Year() + accumulationYears

	simulator := &LifecycleSimulator{
		Prices:    pe.Prices,
		Cycle:     pe.Cycle,
		Policy:    pe.Policy,
		Projector: pe.Projector,
		Now:       now,
		Logger:    pe.Logger,
	}

	var plan *domain.AccumulationPlan
	if accumulationYears > 0 {
		plan = &domain.AccumulationPlan{
			MonthlyAmount:    inputs.MonthlySavingsAmount,
			Years:            accumulationYears,
			DoubleDuringBear: inputs.DoubleDownInBearMarkets,
			StartDate:        now,
		}
	}

	ledger := simulator.Simulate(inputs.BitcoinAmount, inputs.CashAmount, inputs.AnnualWithdrawal, plan)

	// Stress-test the balances as they stand at retirement start.
	retireBtc := inputs.BitcoinAmount
	retireCash := inputs.CashAmount
	accumulated := moneypkg.Zero()
	invested := moneypkg.Zero()
	for _, row := range ledger {
		if row.Phase == domain.PhaseAccumulation {
			accumulated = accumulated.Add(row.BitcoinAdded)
			invested = invested.Add(row.CashInvested)
		}
	}
	retireBtc = retireBtc.Add(accumulated)

	survival := pe.Survival.Run(price, retirementYear, retireBtc, inputs.AnnualWithdrawal, retireCash)

	summary := &domain.PlanSummary{
		Inputs:              inputs,
		RetirementYear:      retirementYear,
		Ledger:              ledger,
		Survival:            survival,
		FirstSurvivableYear: pe.firstSurvivableYear(price, now.Year(), retireBtc, inputs.AnnualWithdrawal, retireCash),
		BitcoinAccumulated:  accumulated,
		CashInvested:        invested,
	}

	for _, row := range ledger {
		if row.Depleted && summary.DepletionYear == 0 {
			summary.DepletionYear = row.Year
		}
	}
	if n := len(ledger); n > 0 {
		summary.EndingBitcoin = ledger[n-1].Bitcoin
		summary.EndingCash = ledger[n-1].Cash
	}

	return summary, nil
}

// firstSurvivableYear scans forward from fromYear for the first calendar
// year whose stress test passes. The power-law trend is monotonic, so the
// first passing year is the earliest one; zero means none inside the scan
// horizon.
func (pe *PlanEngine) firstSurvivableYear(price moneypkg.Money, fromYear int, btc, withdrawal, cash moneypkg.Money) int {
	for year := fromYear; year <= fromYear+survivableYearScanHorizon; year++ {
		if pe.Survival.Run(price, year, btc, withdrawal, cash).Passes {
			return year
		}
	}
	return 0
}
