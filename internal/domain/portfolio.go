package domain

import (
	"github.com/shopspring/decimal"

	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// PortfolioState holds the running bitcoin and cash balances a caller
// threads through successive withdrawal or accumulation steps. Balances are
// never observed negative; steps clamp at zero and flag depletion instead.
type PortfolioState struct {
	Bitcoin moneypkg.Money `json:"bitcoin"`
	Cash    moneypkg.Money `json:"cash"`
}

// TotalValue returns cash plus bitcoin valued at the given price.
func (ps PortfolioState) TotalValue(price moneypkg.Money) moneypkg.Money {
	return ps.Cash.Add(ps.Bitcoin.MulMoney(price))
}

// IsDepleted reports whether both balances are exhausted.
func (ps PortfolioState) IsDepleted() bool {
	return !ps.Bitcoin.IsPositive() && !ps.Cash.IsPositive()
}

// ClampZero floors both balances at zero.
func (ps PortfolioState) ClampZero() PortfolioState {
	return PortfolioState{
		Bitcoin: ps.Bitcoin.ClampZero(),
		Cash:    ps.Cash.ClampZero(),
	}
}

// WithdrawalDecision is the allocation policy's answer for one withdrawal
// event: how much cash to spend and how much bitcoin to sell. Whenever
// assets suffice, UseCash + UseBitcoin×price covers the requested amount;
// otherwise both balances are exhausted and Shortfall carries the uncovered
// remainder for the caller to check.
type WithdrawalDecision struct {
	UseCash        moneypkg.Money  `json:"use_cash_amount"`
	UseBitcoin     moneypkg.Money  `json:"use_bitcoin_amount"`
	Strategy       StrategyTag     `json:"strategy_tag"`
	FairValueRatio decimal.Decimal `json:"fair_value_ratio"`
	Shortfall      moneypkg.Money  `json:"shortfall"`
}

// Covered reports whether the decision fully funds the requested amount.
func (wd WithdrawalDecision) Covered() bool {
	return !wd.Shortfall.IsPositive()
}

// SurvivalResult is the snapshot returned by the bear-market stress test.
// It is recomputed fresh on each call; there is no shared state.
type SurvivalResult struct {
	Passes           bool            `json:"passes"`
	RemainingBitcoin moneypkg.Money  `json:"remaining_bitcoin"`
	RemainingCash    moneypkg.Money  `json:"remaining_cash"`
	RunwayYears      decimal.Decimal `json:"runway_years"`
	FairValue        moneypkg.Money  `json:"fair_value"`
	FloorValue       moneypkg.Money  `json:"floor_value"`
}
