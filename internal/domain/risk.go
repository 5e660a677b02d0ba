package domain

// Risk type constants
const (
	RiskFlood     = "flood"
	RiskSeismic   = "seismic"
	RiskSoil      = "soil"
	RiskLandslide = "landslide"
	RiskNoise     = "noise"
	RiskMining    = "mining"
)

// Risk level constants
const (
	RiskLevelLow     = "low"
	RiskLevelMedium  = "medium"
	RiskLevelHigh    = "high"
	RiskLevelUnknown = "unknown"
)

// RiskInfo is the outcome of a single hazard check. Exactly one RiskInfo per
// risk type is produced per evaluation.
type RiskInfo struct {
	RiskType    string `json:"risk_type"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	IsAtRisk    bool   `json:"is_at_risk"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// RiskReport aggregates the six hazard checks. Risks contains only the
// entries flagged at-risk.
type RiskReport struct {
	Risks      []RiskInfo `json:"risks"`
	TotalRisks int        `json:"total_risks"`
}
