package output

import (
	"encoding/json"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/domain"
)

// JSONFormatter emits the full plan summary as indented JSON for
// downstream tooling.
type JSONFormatter struct{}

func (JSONFormatter) Name() string      { return "json" }
func (JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(summary *domain.PlanSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
