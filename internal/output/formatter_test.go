package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

func sampleSummary() *domain.PlanSummary {
	return &domain.PlanSummary{
		Inputs: domain.PlanInputs{
			BitcoinAmount:    moneypkg.NewMoney(2.5),
			CashAmount:       moneypkg.NewMoneyFromInt(150000),
			AnnualWithdrawal: moneypkg.NewMoneyFromInt(60000),
			CurrentDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		RetirementYear: 2025,
		Ledger: []domain.LedgerRow{
			{
				Index:          0,
				Year:           2025,
				Phase:          domain.PhaseRetirementStart,
				Price:          moneypkg.NewMoneyFromInt(42000),
				FairValue:      moneypkg.NewMoneyFromInt(100000),
				FairValueRatio: decimal.NewFromFloat(0.42),
				Bitcoin:        moneypkg.NewMoney(2.5),
				Cash:           moneypkg.NewMoneyFromInt(150000),
				TotalValue:     moneypkg.NewMoneyFromInt(255000),
			},
			{
				Index:          1,
				Year:           2026,
				Phase:          domain.PhaseDeepBearFloor,
				Price:          moneypkg.NewMoneyFromInt(59000),
				FairValue:      moneypkg.NewMoneyFromInt(140000),
				FairValueRatio: decimal.NewFromFloat(0.42),
				CashUsed:       moneypkg.NewMoneyFromInt(60000),
				Strategy:       domain.StrategyHodlBitcoin,
				Bitcoin:        moneypkg.NewMoney(2.5),
				Cash:           moneypkg.NewMoneyFromInt(90000),
				TotalValue:     moneypkg.NewMoneyFromInt(237500),
			},
		},
		Survival: domain.SurvivalResult{
			Passes:           true,
			RemainingBitcoin: moneypkg.NewMoney(1.8),
			RemainingCash:    moneypkg.Zero(),
			RunwayYears:      decimal.NewFromFloat(25.4),
			FairValue:        moneypkg.NewMoneyFromInt(100000),
			FloorValue:       moneypkg.NewMoneyFromInt(42000),
		},
		FirstSurvivableYear: 2025,
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.NotNil(t, GetFormatterByName("console"))
	assert.NotNil(t, GetFormatterByName("csv"))
	assert.NotNil(t, GetFormatterByName("json"))
	assert.NotNil(t, GetFormatterByName("TABLE"), "aliases resolve case-insensitively")
	assert.Nil(t, GetFormatterByName("spreadsheet"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "csv", "json"}, names)
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleSummary())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "BITCOIN RETIREMENT PLAN")
	assert.Contains(t, text, "PASS")
	assert.Contains(t, text, "2026")
	assert.Contains(t, text, "Retirement Start")
}

func TestCSVExporter(t *testing.T) {
	data, err := CSVExporter{}.Format(sampleSummary())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 ledger rows
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "2026", records[2][0])
	assert.Equal(t, string(domain.PhaseDeepBearFloor), records[2][1])
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleSummary())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2025), decoded["retirement_year"])

	ledger, ok := decoded["ledger"].([]any)
	require.True(t, ok)
	assert.Len(t, ledger, 2)
}
