package calculation

import (
	"testing"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
)

func TestCyclePhaseModel_ColdStartAndPattern(t *testing.T) {
	model := CyclePhaseModel{}
	anchor := 2030

	expected := []domain.Phase{
		domain.PhaseDeepBearFloor,      // offset 0
		domain.PhaseDeepBearFloor,      // offset 1
		domain.PhaseBearRecovery,       // offset 2
		domain.PhaseDeepBearFloor,      // offset 3, k=0
		domain.PhaseBearRecovery,       // offset 4, k=1
		domain.PhaseBullMarket,         // offset 5, k=2
		domain.PhaseBullPeakCorrection, // offset 6, k=3
		domain.PhaseDeepBearFloor,      // offset 7, k=0 again
		domain.PhaseBearRecovery,
		domain.PhaseBullMarket,
		domain.PhaseBullPeakCorrection,
		domain.PhaseDeepBearFloor,
	}

	for offset, want := range expected {
		got := model.PriceForOffset(anchor, offset)
		if got.Phase != want {
			t.Fatalf("offset %d: expected phase %s, got %s", offset, want, got.Phase)
		}
		if !got.Price.IsPositive() {
			t.Fatalf("offset %d: non-positive price %s", offset, got.Price)
		}
	}
}

func TestCyclePhaseModel_PricesRideTheTrend(t *testing.T) {
	model := CyclePhaseModel{}
	anchor := 2028

	// Floor years recur at offsets 3, 7, 11; each must be strictly higher
	// than the last because fair value keeps growing underneath.
	prev := model.PriceForOffset(anchor, 3).Price
	for _, offset := range []int{7, 11, 15} {
		cur := model.PriceForOffset(anchor, offset).Price
		if !cur.GreaterThan(prev) {
			t.Fatalf("floor year at offset %d did not grow: %s vs %s", offset, cur, prev)
		}
		prev = cur
	}
}

func TestCyclePhaseModel_PhaseBandPositions(t *testing.T) {
	var pm PriceModel
	model := CyclePhaseModel{Prices: pm}
	anchor := 2030

	for offset := 0; offset < 12; offset++ {
		year := anchor + offset
		fair := pm.FairValueForYear(year)
		floor := pm.FloorValueForYear(year)
		upper := pm.UpperBoundForYear(year)
		cp := model.PriceForOffset(anchor, offset)

		switch cp.Phase {
		case domain.PhaseDeepBearFloor:
			if !cp.Price.Equal(floor) {
				t.Fatalf("offset %d: floor year price %s != floor %s", offset, cp.Price, floor)
			}
		case domain.PhaseBearRecovery:
			want := floor.Add(fair.Sub(floor).MulFloat(0.75))
			if !cp.Price.Equal(want) {
				t.Fatalf("offset %d: recovery price %s != %s", offset, cp.Price, want)
			}
		case domain.PhaseBullMarket:
			want := fair.Add(upper.Sub(fair).MulFloat(0.7))
			if !cp.Price.Equal(want) {
				t.Fatalf("offset %d: bull price %s != %s", offset, cp.Price, want)
			}
		case domain.PhaseBullPeakCorrection:
			want := fair.Add(upper.Sub(fair).MulFloat(0.3))
			if !cp.Price.Equal(want) {
				t.Fatalf("offset %d: correction price %s != %s", offset, cp.Price, want)
			}
		}
	}
}

func TestCyclePhaseModel_AbsoluteYearConsistency(t *testing.T) {
	model := CyclePhaseModel{}
	anchor := 2027

	for k := 0; k < 20; k++ {
		byOffset := model.PriceForOffset(anchor, k).Price
		byYear, ok := model.PriceForAbsoluteYear(anchor+k, anchor)
		if !ok {
			t.Fatalf("k=%d: absolute-year lookup unexpectedly undefined", k)
		}
		if !byYear.Equal(byOffset) {
			t.Fatalf("k=%d: absolute-year price %s != offset price %s", k, byYear, byOffset)
		}
	}

	if _, ok := model.PriceForAbsoluteYear(anchor-1, anchor); ok {
		t.Fatalf("cycle must be undefined before the anchor year")
	}
}
