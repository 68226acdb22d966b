package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads plan inputs from a YAML file. Parse failures are
// returned as errors; validation violations are collected and returned as a
// message list so a caller can display all of them at once.
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlanInputs, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var inputs domain.PlanInputs
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &inputs, ValidateInputs(&inputs), nil
}

// ValidateInputs checks plan inputs and returns every violation as a
// human-readable message. An empty slice means the inputs are usable. It
// never rejects inputs the engine can still compute a deterministic result
// for; it flags the ones that make the result meaningless.
func ValidateInputs(inputs *domain.PlanInputs) []string {
	var msgs []string

	if !inputs.AnnualWithdrawal.IsPositive() {
		msgs = append(msgs, "annual withdrawal must be positive")
	}
	if inputs.BitcoinAmount.IsNegative() {
		msgs = append(msgs, "bitcoin amount cannot be negative")
	}
	if inputs.CashAmount.IsNegative() {
		msgs = append(msgs, "cash amount cannot be negative")
	}
	if inputs.MonthlySavingsAmount.IsNegative() {
		msgs = append(msgs, "monthly savings amount cannot be negative")
	}
	if inputs.YearsUntilRetirement < 0 {
		msgs = append(msgs, "years until retirement cannot be negative")
	}
	if inputs.YearsToRetirement < 0 {
		msgs = append(msgs, "years to retirement cannot be negative")
	}
	if inputs.CurrentPrice.IsNegative() {
		msgs = append(msgs, "current price cannot be negative")
	}

	noAssets := !inputs.BitcoinAmount.IsPositive() && !inputs.CashAmount.IsPositive()
	noSavings := !inputs.MonthlySavingsAmount.IsPositive() || inputs.ResolveAccumulationYears() == 0
	if noAssets && noSavings {
		msgs = append(msgs, "total assets are zero: provide bitcoin, cash, or a savings plan")
	}

	return msgs
}

// ExamplePlan creates a starter plan with plausible holdings and a
// five-year accumulation phase.
func ExamplePlan() *domain.PlanInputs {
	return &domain.PlanInputs{
		BitcoinAmount:           moneypkg.NewMoney(2.5),
		CashAmount:              moneypkg.NewMoneyFromInt(150000),
		AnnualWithdrawal:        moneypkg.NewMoneyFromInt(60000),
		YearsUntilRetirement:    5,
		YearsToRetirement:       5,
		MonthlySavingsAmount:    moneypkg.NewMoneyFromInt(1000),
		DoubleDownInBearMarkets: true,
		CurrentDate:             time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WriteExamplePlan writes the starter plan to a YAML file.
func (ip *InputParser) WriteExamplePlan(filename string) error {
	data, err := yaml.Marshal(ExamplePlan())
	if err != nil {
		return fmt.Errorf("failed to marshal example plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
