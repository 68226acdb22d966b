package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// requiredRunwayYears is the post-stress runway the portfolio must retain:
// remaining value at fair price divided by the annual withdrawal.
const requiredRunwayYears = 20

// SurvivalTest runs the fixed bear-market stress sequence: two consecutive
// years at the floor price followed by one recovery year, cash-first
// liquidation throughout, then the runway check. It evaluates exactly one
// adverse path per call; callers looking for the first survivable year run
// it repeatedly over candidate years.
type SurvivalTest struct {
	Prices PriceModel
}

// Run executes the stress test anchored at the power-law value for year.
// currentPrice is the observed market price; it is not used by the forced
// sequence, which prices every step off the model, but keeping it in the
// contract lets callers pass their feed through unchanged.
func (st SurvivalTest) Run(currentPrice moneypkg.Money, year int, bitcoinHoldings, annualWithdrawal, cashHoldings moneypkg.Money) domain.SurvivalResult {
	fair := st.Prices.FairValueForYear(year)
	floor := fair.MulFloat(floorFactor)

	if !bitcoinHoldings.IsPositive() || !annualWithdrawal.IsPositive() {
		return domain.SurvivalResult{
			Passes:           false,
			RemainingBitcoin: moneypkg.Zero(),
			RemainingCash:    moneypkg.Zero(),
			RunwayYears:      decimal.Zero,
			FairValue:        fair,
			FloorValue:       floor,
		}
	}

	btc := bitcoinHoldings
	cash := cashHoldings.ClampZero()
	recovery := floor.Add(fair.Sub(floor).MulFloat(recoveryFraction))

	// Two floor years, then one recovery year.
	for _, price := range []moneypkg.Money{floor, floor, recovery} {
		if cash.GreaterThanOrEqual(annualWithdrawal) {
			cash = cash.Sub(annualWithdrawal)
			continue
		}
		fromBitcoin := annualWithdrawal.Sub(cash)
		cash = moneypkg.Zero()
		btc = btc.Sub(fromBitcoin.DivMoney(price))
		if btc.IsNegative() {
			// Depleted before the stress sequence completed.
			return domain.SurvivalResult{
				Passes:           false,
				RemainingBitcoin: moneypkg.Zero(),
				RemainingCash:    moneypkg.Zero(),
				RunwayYears:      decimal.Zero,
				FairValue:        fair,
				FloorValue:       floor,
			}
		}
	}

	remainingValue := btc.MulMoney(fair).Add(cash)
	runway := remainingValue.Ratio(annualWithdrawal)

	return domain.SurvivalResult{
		Passes:           runway.GreaterThanOrEqual(decimal.NewFromInt(requiredRunwayYears)),
		RemainingBitcoin: btc,
		RemainingCash:    cash,
		RunwayYears:      runway,
		FairValue:        fair,
		FloorValue:       floor,
	}
}
