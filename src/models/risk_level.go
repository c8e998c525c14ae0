package models

// -----------------------------------------------------------------------------
// Risk Level (ordinal enum, matches backend values)
// -----------------------------------------------------------------------------

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// -----------------------------------------------------------------------------

// Rank returns the ordinal position of the level; unknown values rank lowest.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------

func (r RiskLevel) Valid() bool {
	return r.Rank() > 0
}
