package decimal

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12345.67")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "12345.67" {
		t.Fatalf("expected 12345.67, got %s", m.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid input")
	}
}

func TestArithmetic(t *testing.T) {
	a := NewMoneyFromInt(100)
	b := NewMoneyFromInt(40)

	if !a.Add(b).Equal(NewMoneyFromInt(140)) {
		t.Fatalf("add failed")
	}
	if !a.Sub(b).Equal(NewMoneyFromInt(60)) {
		t.Fatalf("sub failed")
	}
	if !a.MulFloat(0.42).Equal(NewMoneyFromInt(42)) {
		t.Fatalf("mul float failed")
	}
	if !a.DivMoney(b).Equal(NewMoneyFromDecimal(decimal.NewFromFloat(2.5))) {
		t.Fatalf("div money failed")
	}
}

func TestRatio(t *testing.T) {
	price := NewMoneyFromInt(50000)
	fair := NewMoneyFromInt(100000)
	if !price.Ratio(fair).Equal(decimal.NewFromFloat(0.5)) {
		t.Fatalf("ratio failed: %s", price.Ratio(fair))
	}
}

func TestClampZero(t *testing.T) {
	if !NewMoneyFromInt(-5).ClampZero().IsZero() {
		t.Fatalf("negative amount must clamp to zero")
	}
	if !NewMoneyFromInt(5).ClampZero().Equal(NewMoneyFromInt(5)) {
		t.Fatalf("positive amount must pass through")
	}
}

func TestRoundSats(t *testing.T) {
	m := NewMoney(1.234567891)
	if m.RoundSats().Decimal.String() != "1.23456789" {
		t.Fatalf("expected satoshi rounding, got %s", m.RoundSats().Decimal.String())
	}
}

func TestMinMax(t *testing.T) {
	a := NewMoneyFromInt(1)
	b := NewMoneyFromInt(2)
	if !Min(a, b).Equal(a) || !Max(a, b).Equal(b) {
		t.Fatalf("min/max failed")
	}
}

func TestFormat(t *testing.T) {
	if got := NewMoneyFromInt(1234).Format(); got != "$1234.00" {
		t.Fatalf("expected $1234.00, got %s", got)
	}
}
