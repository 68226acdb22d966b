package domain

// Phase labels a simulated year (or month) with its position in the
// modeled market cycle, or with a ledger-level marker for rows that do not
// ride the cycle (accumulation, retirement start, depletion).
type Phase string

const (
	PhaseDeepBearFloor      Phase = "deep_bear_floor"
	PhaseBearRecovery       Phase = "bear_recovery"
	PhaseBullMarket         Phase = "bull_market"
	PhaseBullPeakCorrection Phase = "bull_peak_correction"
	PhaseFairValue          Phase = "fair_value"
	PhaseCurrentYear        Phase = "current_year"

	// Ledger row markers outside the repeating cycle.
	PhaseAccumulation    Phase = "accumulation"
	PhaseRetirementStart Phase = "retirement_start"
	PhaseDepleted        Phase = "depleted"
)

// IsBear reports whether the phase prices below fair value. Contribution
// doubling in the accumulation projector applies to these phases.
func (p Phase) IsBear() bool {
	return p == PhaseDeepBearFloor || p == PhaseBearRecovery
}

// Label returns a human-readable name for console output.
func (p Phase) Label() string {
	switch p {
	case PhaseDeepBearFloor:
		return "Deep Bear (floor)"
	case PhaseBearRecovery:
		return "Bear Recovery"
	case PhaseBullMarket:
		return "Bull Market"
	case PhaseBullPeakCorrection:
		return "Bull Peak Correction"
	case PhaseFairValue:
		return "Fair Value"
	case PhaseCurrentYear:
		return "Current Year"
	case PhaseAccumulation:
		return "Accumulation"
	case PhaseRetirementStart:
		return "Retirement Start"
	case PhaseDepleted:
		return "Depleted"
	default:
		return string(p)
	}
}

// StrategyTag identifies the rationale behind a withdrawal split.
type StrategyTag string

const (
	StrategyEmergencyOnly StrategyTag = "emergency_only"
	StrategyHodlBitcoin   StrategyTag = "hodl_bitcoin"
	StrategyBalanced      StrategyTag = "balanced"
	StrategySpendBitcoin  StrategyTag = "spend_bitcoin"
)
