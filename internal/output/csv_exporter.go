package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
)

// CSVExporter writes one row per ledger year.
type CSVExporter struct{}

func (CSVExporter) Name() string      { return "csv" }
func (CSVExporter) Extension() string { return "csv" }

func (c CSVExporter) Format(summary *domain.PlanSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Phase", "Price", "FairValue", "FairValueRatio", "CashUsed", "BitcoinSold", "CashInvested", "BitcoinAdded", "Strategy", "Bitcoin", "Cash", "TotalValue", "Depleted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range summary.Ledger {
		record := []string{
			strconv.Itoa(row.Year),
			string(row.Phase),
			row.Price.StringFixed(2),
			row.FairValue.StringFixed(2),
			row.FairValueRatio.StringFixed(4),
			row.CashUsed.StringFixed(2),
			row.BitcoinSold.StringFixed(8),
			row.CashInvested.StringFixed(2),
			row.BitcoinAdded.StringFixed(8),
			string(row.Strategy),
			row.Bitcoin.StringFixed(8),
			row.Cash.StringFixed(2),
			row.TotalValue.StringFixed(2),
			strconv.FormatBool(row.Depleted),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
