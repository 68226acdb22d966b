package calculation

import (
	"math"
	"time"

	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
	"github.com/hodlplan/bitcoin-retirement-calculator/pkg/dateutil"
)

// Power-law fit of bitcoin's long-run price against days since the genesis
// block: fair = coefficient × days^exponent.
const (
	powerLawCoefficient = 1.0117e-17
	powerLawExponent    = 5.82

	floorFactor = 0.42
	upperFactor = 2.0
)

// PriceModel derives fair value, floor and upper bound for any date. It is a
// pure function of elapsed time since genesis; there are no error conditions
// and the domain is total over all representable dates.
type PriceModel struct{}

// FairValue returns the power-law model price for the given date. The curve
// itself is evaluated in float64 (decimal has no fractional-exponent power);
// everything downstream stays in exact decimal arithmetic.
func (PriceModel) FairValue(date time.Time) moneypkg.Money {
	days := dateutil.DaysSinceGenesis(date)
	return moneypkg.NewMoney(powerLawCoefficient * math.Pow(days, powerLawExponent))
}

// FloorValue returns the modeled lower bound of the trading range.
func (pm PriceModel) FloorValue(date time.Time) moneypkg.Money {
	return pm.FairValue(date).MulFloat(floorFactor)
}

// UpperBound returns the modeled upper bound of the trading range.
func (pm PriceModel) UpperBound(date time.Time) moneypkg.Money {
	return pm.FairValue(date).MulFloat(upperFactor)
}

// FairValueForYear anchors a year-granular lookup at mid-year so the value
// is not skewed toward either calendar boundary.
func (pm PriceModel) FairValueForYear(year int) moneypkg.Money {
	return pm.FairValue(dateutil.MidYear(year))
}

// FloorValueForYear returns the floor for a year-granular lookup.
func (pm PriceModel) FloorValueForYear(year int) moneypkg.Money {
	return pm.FairValueForYear(year).MulFloat(floorFactor)
}

// UpperBoundForYear returns the upper bound for a year-granular lookup.
func (pm PriceModel) UpperBoundForYear(year int) moneypkg.Money {
	return pm.FairValueForYear(year).MulFloat(upperFactor)
}
