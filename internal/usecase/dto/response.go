package dto

import "github.com/surroundings-microservice/internal/domain"

// PlacesResponse is the result of a single category search.
type PlacesResponse struct {
	Category string         `json:"category"`
	Places   []domain.Place `json:"places"`
	Total    int            `json:"total"`
}

// CategoryResult is one category slot inside a combined surroundings
// report. Found is false when the category search produced nothing within
// the radius.
type CategoryResult struct {
	Places []domain.Place `json:"places"`
	Found  bool           `json:"found"`
}

// SurroundingsResponse is the combined report across all place categories.
type SurroundingsResponse struct {
	Origin     domain.Point              `json:"origin"`
	RadiusM    float64                   `json:"radius_m"`
	Categories map[string]CategoryResult `json:"categories"`
}

// RiskReportResponse wraps the aggregated hazard evaluation.
type RiskReportResponse struct {
	Origin domain.Point      `json:"origin"`
	Risks  []domain.RiskInfo `json:"risks"`
	Total  int               `json:"total_risks"`
}

// NoiseResponse wraps the standalone noise evaluation.
type NoiseResponse struct {
	Origin domain.Point  `json:"origin"`
	Noise  *domain.Noise `json:"noise"`
}
