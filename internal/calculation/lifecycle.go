package calculation

import (
	"time"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
	"github.com/hodlplan/bitcoin-retirement-calculator/pkg/dateutil"
)

// maxWithdrawalYears bounds the withdrawal phase of the ledger.
const maxWithdrawalYears = 50

// LifecycleSimulator composes the accumulation projector, the cycle model
// and the allocation policy into one year-by-year ledger: an optional
// accumulation phase, a non-withdrawing retirement-start row, then up to 50
// withdrawal years. The ledger truncates as soon as the portfolio is fully
// depleted.
type LifecycleSimulator struct {
	Prices    PriceModel
	Cycle     CyclePhaseModel
	Policy    AllocationPolicy
	Projector AccumulationProjector

	// Now resolves the retirement year when no accumulation plan is given.
	Now time.Time

	Logger Logger
}

// NewLifecycleSimulator wires a simulator around a single price model.
func NewLifecycleSimulator(now time.Time) *LifecycleSimulator {
	var prices PriceModel
	cycle := CyclePhaseModel{Prices: prices}
	return &LifecycleSimulator{
		Prices:    prices,
		Cycle:     cycle,
		Policy:    AllocationPolicy{Prices: prices},
		Projector: AccumulationProjector{Prices: prices, Cycle: cycle},
		Now:       now,
		Logger:    NopLogger{},
	}
}

// Simulate runs the full lifecycle and returns the ordered ledger. The
// caller's balances are not mutated; all state lives in the returned rows.
func (ls *LifecycleSimulator) Simulate(startingBitcoin, startingCash, annualWithdrawal moneypkg.Money, plan *domain.AccumulationPlan) []domain.LedgerRow {
	state := domain.PortfolioState{
		Bitcoin: startingBitcoin.ClampZero(),
		Cash:    startingCash.ClampZero(),
	}

	var ledger []domain.LedgerRow
	retirementYear := ls.Now.Year()

	if plan != nil && plan.Years > 0 {
		rows := ls.Projector.Project(plan.MonthlyAmount, plan.Years, plan.DoubleDuringBear, plan.StartDate)
		ledger = ls.appendAccumulationYears(ledger, rows, &state)
		retirementYear = plan.StartDate.Year() + plan.Years
	}

	// Year 0: retirement start. States the opening balances at the forced
	// floor price; no withdrawal happens here.
	start := ls.Cycle.PriceForOffset(retirementYear, 0)
	fair := ls.Prices.FairValueForYear(retirementYear)
	ledger = append(ledger, domain.LedgerRow{
		Index:          len(ledger),
		Year:           retirementYear,
		Phase:          domain.PhaseRetirementStart,
		Price:          start.Price,
		FairValue:      fair,
		FairValueRatio: start.Price.Ratio(fair),
		Bitcoin:        state.Bitcoin,
		Cash:           state.Cash,
		TotalValue:     state.TotalValue(start.Price),
	})

	for i := 1; i <= maxWithdrawalYears; i++ {
		year := retirementYear + i
		cp := ls.Cycle.PriceForOffset(retirementYear, i)
		decision := ls.Policy.Decide(cp.Price, dateutil.MidYear(year), state.Cash, state.Bitcoin, annualWithdrawal, false)

		state.Cash = state.Cash.Sub(decision.UseCash)
		state.Bitcoin = state.Bitcoin.Sub(decision.UseBitcoin)
		state = state.ClampZero()

		depleted := state.IsDepleted() || decision.Shortfall.IsPositive()
		phase := cp.Phase
		if depleted {
			phase = domain.PhaseDepleted
		}

		ledger = append(ledger, domain.LedgerRow{
			Index:          len(ledger),
			Year:           year,
			Phase:          phase,
			Price:          cp.Price,
			FairValue:      ls.Prices.FairValueForYear(year),
			FairValueRatio: decision.FairValueRatio,
			CashUsed:       decision.UseCash,
			BitcoinSold:    decision.UseBitcoin,
			Strategy:       decision.Strategy,
			Bitcoin:        state.Bitcoin,
			Cash:           state.Cash,
			TotalValue:     state.TotalValue(cp.Price),
			Depleted:       depleted,
		})

		if state.IsDepleted() {
			ls.Logger.Debugf("portfolio depleted in year %d after %d withdrawal years", year, i)
			break
		}
	}

	return ledger
}

// appendAccumulationYears folds the monthly purchase rows into one ledger
// row per calendar year. Contributions come from income, so the cash
// balance is untouched; only the bitcoin balance grows.
func (ls *LifecycleSimulator) appendAccumulationYears(ledger []domain.LedgerRow, rows []domain.MonthlyPurchase, state *domain.PortfolioState) []domain.LedgerRow {
	for i := 0; i < len(rows); {
		year := rows[i].Year
		invested := moneypkg.Zero()
		purchased := moneypkg.Zero()
		last := rows[i]
		for ; i < len(rows) && rows[i].Year == year; i++ {
			invested = invested.Add(rows[i].Contribution)
			purchased = purchased.Add(rows[i].BitcoinPurchased)
			last = rows[i]
		}

		state.Bitcoin = state.Bitcoin.Add(purchased)
		fair := ls.Prices.FairValueForYear(year)

		ledger = append(ledger, domain.LedgerRow{
			Index:          len(ledger),
			Year:           year,
			Phase:          domain.PhaseAccumulation,
			Price:          last.Price,
			FairValue:      fair,
			FairValueRatio: last.Price.Ratio(fair),
			CashInvested:   invested,
			BitcoinAdded:   purchased,
			Bitcoin:        state.Bitcoin,
			Cash:           state.Cash,
			TotalValue:     state.TotalValue(last.Price),
		})
	}
	return ledger
}
