package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testPlan := "bitcoin_amount: 2.5\n" +
		"cash_amount: 150000\n" +
		"annual_withdrawal: 60000\n" +
		"years_until_retirement: 5\n" +
		"years_to_retirement: 3\n" +
		"monthly_savings_amount: 1000\n" +
		"double_down_in_bear_markets: true\n" +
		"current_price: 98000\n" +
		"current_date: 2025-07-01T00:00:00Z\n"

	filename := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(testPlan), 0644))

	parser := NewInputParser()
	inputs, problems, err := parser.LoadFromFile(filename)

	require.NoError(t, err)
	require.NotNil(t, inputs)
	assert.Empty(t, problems)
	assert.True(t, inputs.BitcoinAmount.Equal(moneypkg.NewMoney(2.5)))
	assert.True(t, inputs.AnnualWithdrawal.Equal(moneypkg.NewMoneyFromInt(60000)))
	assert.True(t, inputs.DoubleDownInBearMarkets)
	assert.Equal(t, 5, inputs.ResolveAccumulationYears())
	assert.Equal(t, 2025, inputs.CurrentDate.Year())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	inputs, _, err := parser.LoadFromFile("nonexistent_plan.yaml")
	require.Error(t, err)
	assert.Nil(t, inputs)
}

func TestLoadFromFile_MalformedYAML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("bitcoin_amount: [not a number"), 0644))

	parser := NewInputParser()
	_, _, err := parser.LoadFromFile(filename)
	require.Error(t, err)
}

func TestValidateInputs_CollectsAllViolations(t *testing.T) {
	inputs := &domain.PlanInputs{
		BitcoinAmount:        moneypkg.NewMoneyFromInt(-1),
		CashAmount:           moneypkg.NewMoneyFromInt(-5000),
		AnnualWithdrawal:     moneypkg.Zero(),
		YearsUntilRetirement: -2,
	}

	msgs := ValidateInputs(inputs)
	// One message per violation so a caller can display all of them at once.
	assert.GreaterOrEqual(t, len(msgs), 4)
}

func TestValidateInputs_ZeroTotalAssets(t *testing.T) {
	inputs := &domain.PlanInputs{
		AnnualWithdrawal: moneypkg.NewMoneyFromInt(30000),
	}

	msgs := ValidateInputs(inputs)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "total assets are zero")
}

func TestValidateInputs_SavingsPlanCountsAsAssets(t *testing.T) {
	inputs := &domain.PlanInputs{
		AnnualWithdrawal:     moneypkg.NewMoneyFromInt(30000),
		MonthlySavingsAmount: moneypkg.NewMoneyFromInt(500),
		YearsToRetirement:    10,
	}

	msgs := ValidateInputs(inputs)
	assert.Empty(t, msgs)
}

func TestValidateInputs_CleanPlan(t *testing.T) {
	msgs := ValidateInputs(ExamplePlan())
	assert.Empty(t, msgs)
}

func TestWriteExamplePlan_RoundTrips(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "example.yaml")
	parser := NewInputParser()
	require.NoError(t, parser.WriteExamplePlan(filename))

	inputs, problems, err := parser.LoadFromFile(filename)
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.True(t, inputs.BitcoinAmount.Equal(ExamplePlan().BitcoinAmount))
	assert.Equal(t, ExamplePlan().ResolveAccumulationYears(), inputs.ResolveAccumulationYears())
}
