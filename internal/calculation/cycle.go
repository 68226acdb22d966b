package calculation

import (
	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// Position of each phase inside the modeled trading range, as a fraction of
// the distance between the bracketing band edges.
const (
	recoveryFraction   = 0.75 // floor → fair
	bullFraction       = 0.7  // fair → upper
	correctionFraction = 0.3  // fair → upper
)

// CyclePrice is the resolved price and phase for one cycle position.
type CyclePrice struct {
	Price moneypkg.Money `json:"price"`
	Phase domain.Phase   `json:"phase"`
}

// CyclePhaseModel lays a repeating four-year boom/bust pattern on top of the
// growing power-law trend. The first two years after the anchor are forced
// floor years (a conservative cold start for a withdrawal plan), the third is
// a recovery year, and from the fourth on the pattern repeats:
// floor, recovery, bull, correction.
type CyclePhaseModel struct {
	Prices PriceModel
}

// PriceForOffset resolves the price and phase for a year that is
// offsetYears past the anchor year. Band edges are evaluated at the actual
// calendar year, so the pattern rides the trend rather than resetting it.
// Negative offsets are clamped to zero.
func (cm CyclePhaseModel) PriceForOffset(anchorYear, offsetYears int) CyclePrice {
	if offsetYears < 0 {
		offsetYears = 0
	}

	year := anchorYear + offsetYears
	fair := cm.Prices.FairValueForYear(year)
	floor := fair.MulFloat(floorFactor)
	upper := fair.MulFloat(upperFactor)

	switch {
	case offsetYears <= 1:
		return CyclePrice{Price: floor, Phase: domain.PhaseDeepBearFloor}
	case offsetYears == 2:
		return CyclePrice{
			Price: floor.Add(fair.Sub(floor).MulFloat(recoveryFraction)),
			Phase: domain.PhaseBearRecovery,
		}
	}

	switch (offsetYears - 3) % 4 {
	case 0:
		return CyclePrice{Price: floor, Phase: domain.PhaseDeepBearFloor}
	case 1:
		return CyclePrice{
			Price: floor.Add(fair.Sub(floor).MulFloat(recoveryFraction)),
			Phase: domain.PhaseBearRecovery,
		}
	case 2:
		return CyclePrice{
			Price: fair.Add(upper.Sub(fair).MulFloat(bullFraction)),
			Phase: domain.PhaseBullMarket,
		}
	default:
		return CyclePrice{
			Price: fair.Add(upper.Sub(fair).MulFloat(correctionFraction)),
			Phase: domain.PhaseBullPeakCorrection,
		}
	}
}

// PriceForAbsoluteYear resolves the price for a calendar year given the
// anchor. The cycle is undefined before the anchor; ok is false in that
// case. For any year at or after the anchor the result is numerically
// identical to the offset form.
func (cm CyclePhaseModel) PriceForAbsoluteYear(calendarYear, anchorYear int) (moneypkg.Money, bool) {
	if calendarYear < anchorYear {
		return moneypkg.Zero(), false
	}
	return cm.PriceForOffset(anchorYear, calendarYear-anchorYear).Price, true
}
