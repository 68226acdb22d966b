package calculation

import (
	"time"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
	"github.com/hodlplan/bitcoin-retirement-calculator/pkg/dateutil"
)

// AccumulationProjector produces the monthly purchase ledger for a
// dollar-cost-averaging plan. The start year buys at plain fair value (it
// represents "today"); later years buy at the cycle model's price for their
// offset from the start year. Each call recomputes from scratch.
type AccumulationProjector struct {
	Prices PriceModel
	Cycle  CyclePhaseModel
}

// Project returns one row per simulated month. years=0 yields an empty
// sequence and monthlyAmount=0 a valid all-zero-purchase sequence; neither
// is an error.
func (p AccumulationProjector) Project(monthlyAmount moneypkg.Money, years int, doubleDuringBear bool, startDate time.Time) []domain.MonthlyPurchase {
	if years <= 0 {
		return nil
	}
	monthly := monthlyAmount.ClampZero()

	months := years * 12
	rows := make([]domain.MonthlyPurchase, 0, months)
	totalBitcoin := moneypkg.Zero()
	totalInvested := moneypkg.Zero()

	anchorYear := startDate.Year()
	for m := 0; m < months; m++ {
		date := dateutil.AddMonths(startDate, m)
		offset := date.Year() - anchorYear

		var price moneypkg.Money
		var phase domain.Phase
		if offset == 0 {
			price = p.Prices.FairValue(date)
			phase = domain.PhaseCurrentYear
		} else {
			cp := p.Cycle.PriceForOffset(anchorYear, offset)
			price = cp.Price
			phase = cp.Phase
		}

		contribution := monthly
		if doubleDuringBear && phase.IsBear() {
			contribution = contribution.MulFloat(2)
		}

		purchased := moneypkg.Zero()
		if price.IsPositive() {
			purchased = contribution.DivMoney(price)
		}

		totalBitcoin = totalBitcoin.Add(purchased)
		totalInvested = totalInvested.Add(contribution)

		rows = append(rows, domain.MonthlyPurchase{
			MonthIndex:       m,
			Date:             date,
			Year:             date.Year(),
			Phase:            phase,
			Price:            price,
			Contribution:     contribution,
			BitcoinPurchased: purchased,
			TotalBitcoin:     totalBitcoin,
			TotalInvested:    totalInvested,
		})
	}

	return rows
}
