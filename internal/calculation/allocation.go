package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// Valuation band boundaries (price / fair value). Bands are inclusive on the
// lower side: the first matching threshold wins scanning upward.
var (
	ratioExtremeUndervalued = decimal.NewFromFloat(0.5)
	ratioUndervalued        = decimal.NewFromFloat(0.8)
	ratioNearFair           = decimal.NewFromFloat(1.2)
	ratioOvervalued         = decimal.NewFromFloat(2.5)
	ratioBubble             = decimal.NewFromFloat(5.0)
)

// Blending knobs for the near-fair-value band. The coefficients are ad hoc
// (a mild cash bias), kept as named constants so a domain owner can tune
// them in one place.
const (
	balancedCashCapShare = 0.6 // cash may cover at most this share of the need
	balancedCashBias     = 1.2 // multiplier on the cash-value share of holdings

	undervaluedCashShare = 0.8 // minimum cash share in the undervalued band
	overvaluedBtcShare   = 0.8 // bitcoin share when it cannot cover alone
)

// AllocationPolicy decides, for one withdrawal event, how much to draw from
// cash versus bitcoin based on the price's position relative to fair value.
// Decisions never fabricate negative holdings and never panic; when assets
// are insufficient the decision exhausts both sides and reports the
// shortfall for the caller to check.
type AllocationPolicy struct {
	Prices PriceModel
}

// Decide returns the cash/bitcoin split for amountNeeded at the given price
// and date. emergencyMode bypasses the valuation bands and spends cash
// first regardless of valuation.
func (ap AllocationPolicy) Decide(currentPrice moneypkg.Money, date time.Time, availableCash, availableBitcoin, amountNeeded moneypkg.Money, emergencyMode bool) domain.WithdrawalDecision {
	fair := ap.Prices.FairValue(date)
	ratio := currentPrice.Ratio(fair)

	cash := availableCash.ClampZero()
	btc := availableBitcoin.ClampZero()

	if !amountNeeded.IsPositive() {
		return domain.WithdrawalDecision{
			UseCash:        moneypkg.Zero(),
			UseBitcoin:     moneypkg.Zero(),
			Strategy:       ap.tagForRatio(ratio, emergencyMode),
			FairValueRatio: ratio,
			Shortfall:      moneypkg.Zero(),
		}
	}

	if emergencyMode {
		useCash, useBtc, shortfall := splitCashFirst(cash, btc, currentPrice, amountNeeded)
		return domain.WithdrawalDecision{
			UseCash:        useCash,
			UseBitcoin:     useBtc,
			Strategy:       domain.StrategyEmergencyOnly,
			FairValueRatio: ratio,
			Shortfall:      shortfall,
		}
	}

	var useCash, useBtc, shortfall moneypkg.Money
	var tag domain.StrategyTag

	switch {
	case ratio.LessThanOrEqual(ratioExtremeUndervalued):
		// Extreme undervaluation: protect the position, spend cash.
		useCash, useBtc, shortfall = splitCashFirst(cash, btc, currentPrice, amountNeeded)
		tag = domain.StrategyHodlBitcoin

	case ratio.LessThanOrEqual(ratioUndervalued):
		// Undervalued: cash covers at least 80% of the need, or its full
		// coverage ratio when that is higher.
		share := decimal.NewFromFloat(undervaluedCashShare)
		coverage := cash.Ratio(amountNeeded)
		if coverage.GreaterThan(share) {
			share = coverage
		}
		if share.GreaterThan(decimal.NewFromInt(1)) {
			share = decimal.NewFromInt(1)
		}
		useCash, useBtc, shortfall = splitWithCashTarget(amountNeeded.Mul(share), cash, btc, currentPrice, amountNeeded)
		tag = domain.StrategyHodlBitcoin

	case ratio.LessThanOrEqual(ratioNearFair):
		// Near fair value: blend proportionally to holdings value with a
		// mild cash bias.
		totalValue := cash.Add(btc.MulMoney(currentPrice))
		if !totalValue.IsPositive() {
			// Zero portfolio value: nothing to allocate, no division.
			return domain.WithdrawalDecision{
				UseCash:        moneypkg.Zero(),
				UseBitcoin:     moneypkg.Zero(),
				Strategy:       domain.StrategyBalanced,
				FairValueRatio: ratio,
				Shortfall:      amountNeeded,
			}
		}
		cashShare := cash.Ratio(totalValue).Mul(decimal.NewFromFloat(balancedCashBias))
		capShare := decimal.NewFromFloat(balancedCashCapShare)
		if cashShare.GreaterThan(capShare) {
			cashShare = capShare
		}
		useCash, useBtc, shortfall = splitWithCashTarget(amountNeeded.Mul(cashShare), cash, btc, currentPrice, amountNeeded)
		tag = domain.StrategyBalanced

	case ratio.LessThanOrEqual(ratioOvervalued):
		// Overvalued: bitcoin only when it covers the whole need, otherwise
		// up to 80% bitcoin with cash covering the rest.
		btcValue := btc.MulMoney(currentPrice)
		if btcValue.GreaterThanOrEqual(amountNeeded) {
			useCash, useBtc, shortfall = splitBitcoinFirst(cash, btc, currentPrice, amountNeeded)
		} else {
			useCash, useBtc, shortfall = splitWithBitcoinTarget(amountNeeded.MulFloat(overvaluedBtcShare), cash, btc, currentPrice, amountNeeded)
		}
		tag = domain.StrategySpendBitcoin

	default:
		// Bubble and extreme bubble: bitcoin only, capped at the holding;
		// cash is tapped only once bitcoin is exhausted.
		useCash, useBtc, shortfall = splitBitcoinFirst(cash, btc, currentPrice, amountNeeded)
		tag = domain.StrategySpendBitcoin
	}

	return domain.WithdrawalDecision{
		UseCash:        useCash,
		UseBitcoin:     useBtc,
		Strategy:       tag,
		FairValueRatio: ratio,
		Shortfall:      shortfall,
	}
}

func (ap AllocationPolicy) tagForRatio(ratio decimal.Decimal, emergencyMode bool) domain.StrategyTag {
	switch {
	case emergencyMode:
		return domain.StrategyEmergencyOnly
	case ratio.LessThanOrEqual(ratioUndervalued):
		return domain.StrategyHodlBitcoin
	case ratio.LessThanOrEqual(ratioNearFair):
		return domain.StrategyBalanced
	default:
		return domain.StrategySpendBitcoin
	}
}

// residueEpsilon absorbs the rounding left by fixed-precision division when
// converting a USD remainder into a bitcoin quantity and back. Residues this
// small are settled, not routed to the other asset.
var residueEpsilon = decimal.New(1, -9)

func settleResidue(m moneypkg.Money) moneypkg.Money {
	if m.Decimal.Abs().LessThan(residueEpsilon) {
		return moneypkg.Zero()
	}
	return m
}

// splitCashFirst spends cash up to the need, then sells bitcoin for any
// remainder.
func splitCashFirst(cash, btc, price, needed moneypkg.Money) (useCash, useBtc, shortfall moneypkg.Money) {
	return splitWithCashTarget(needed, cash, btc, price, needed)
}

// splitBitcoinFirst sells bitcoin up to the need, then spends cash for any
// remainder.
func splitBitcoinFirst(cash, btc, price, needed moneypkg.Money) (useCash, useBtc, shortfall moneypkg.Money) {
	return splitWithBitcoinTarget(needed, cash, btc, price, needed)
}

// splitWithCashTarget aims cashTarget of the need at cash, sells bitcoin for
// the remainder, and falls back to the rest of the cash if bitcoin runs out.
func splitWithCashTarget(cashTarget, cash, btc, price, needed moneypkg.Money) (useCash, useBtc, shortfall moneypkg.Money) {
	useCash = moneypkg.Min(moneypkg.Min(cashTarget, needed), cash)
	remaining := needed.Sub(useCash)

	useBtc = moneypkg.Zero()
	if remaining.IsPositive() && price.IsPositive() {
		useBtc = moneypkg.Min(remaining.DivMoney(price), btc)
		remaining = settleResidue(remaining.Sub(useBtc.MulMoney(price)))
	}

	if remaining.IsPositive() {
		extra := moneypkg.Min(remaining, cash.Sub(useCash))
		useCash = useCash.Add(extra)
		remaining = remaining.Sub(extra)
	}

	return useCash, useBtc, remaining.ClampZero()
}

// splitWithBitcoinTarget aims btcTarget (a USD amount) of the need at
// bitcoin, spends cash for the remainder, and falls back to the rest of the
// bitcoin if cash runs out.
func splitWithBitcoinTarget(btcTarget, cash, btc, price, needed moneypkg.Money) (useCash, useBtc, shortfall moneypkg.Money) {
	useBtc = moneypkg.Zero()
	if price.IsPositive() {
		useBtc = moneypkg.Min(moneypkg.Min(btcTarget, needed).DivMoney(price), btc)
	}
	remaining := settleResidue(needed.Sub(useBtc.MulMoney(price)))

	useCash = moneypkg.Min(remaining.ClampZero(), cash)
	remaining = remaining.Sub(useCash)

	if remaining.IsPositive() && price.IsPositive() {
		extra := moneypkg.Min(remaining.DivMoney(price), btc.Sub(useBtc))
		useBtc = useBtc.Add(extra)
		remaining = settleResidue(remaining.Sub(extra.MulMoney(price)))
	}

	return useCash, useBtc, remaining.ClampZero()
}
