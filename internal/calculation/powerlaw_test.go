package calculation

import (
	"testing"
	"time"

	"github.com/hodlplan/bitcoin-retirement-calculator/pkg/dateutil"
)

func TestPriceModel_BandOrdering(t *testing.T) {
	var pm PriceModel
	dates := []time.Time{
		dateutil.GenesisDate,
		time.Date(2013, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 11, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2075, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		fair := pm.FairValue(d)
		floor := pm.FloorValue(d)
		upper := pm.UpperBound(d)

		if !floor.IsPositive() {
			t.Fatalf("floor not positive at %s: %s", d, floor)
		}
		if !floor.LessThan(fair) || !fair.LessThan(upper) {
			t.Fatalf("band ordering violated at %s: floor=%s fair=%s upper=%s", d, floor, fair, upper)
		}
		if !floor.Equal(fair.MulFloat(0.42)) {
			t.Fatalf("floor is not 0.42×fair at %s", d)
		}
		if !upper.Equal(fair.MulFloat(2.0)) {
			t.Fatalf("upper is not 2×fair at %s", d)
		}
	}
}

func TestPriceModel_Monotonic(t *testing.T) {
	var pm PriceModel
	prev := pm.FairValue(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	for year := 2011; year <= 2080; year++ {
		cur := pm.FairValue(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC))
		if cur.LessThan(prev) {
			t.Fatalf("fair value decreased from year %d to %d: %s -> %s", year-1, year, prev, cur)
		}
		prev = cur
	}
}

func TestPriceModel_PreGenesisClamped(t *testing.T) {
	var pm PriceModel
	atGenesis := pm.FairValue(dateutil.GenesisDate)
	before := pm.FairValue(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC))

	if !atGenesis.IsPositive() || !before.IsPositive() {
		t.Fatalf("model must stay positive at and before genesis: %s, %s", atGenesis, before)
	}
	if !before.Equal(atGenesis) {
		t.Fatalf("pre-genesis dates should clamp to the day-1 value: %s vs %s", before, atGenesis)
	}
}

func TestPriceModel_Idempotent(t *testing.T) {
	var pm PriceModel
	d := time.Date(2030, 3, 15, 0, 0, 0, 0, time.UTC)
	first := pm.FairValue(d)
	for i := 0; i < 5; i++ {
		if got := pm.FairValue(d); !got.Equal(first) {
			t.Fatalf("repeated call drifted: %s vs %s", got, first)
		}
	}
}

func TestPriceModel_PlausibleMagnitude(t *testing.T) {
	// The fitted curve should put 2025 fair value in the 60k-160k range;
	// anything outside means the constants are off by an order of magnitude.
	var pm PriceModel
	fair := pm.FairValueForYear(2025)
	if fair.LessThan(moneyFromInt(60000)) || fair.GreaterThan(moneyFromInt(160000)) {
		t.Fatalf("2025 fair value implausible: %s", fair)
	}
}
