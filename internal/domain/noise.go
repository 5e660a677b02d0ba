package domain

// NoiseSource is a contributing noise emitter found during the noise check.
type NoiseSource struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
	ImpactDB   float64 `json:"impact_db"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// Noise is the full noise exposure result. Sources is populated only on the
// emitter-heuristic fallback path; the official map path reads the dB value
// directly.
type Noise struct {
	NoiseLevelDB float64       `json:"noise_level_db"`
	Quality      string        `json:"quality"`
	Level        string        `json:"level"`
	Description  string        `json:"description"`
	Color        string        `json:"color"`
	Sources      []NoiseSource `json:"sources,omitempty"`
	DataSource   string        `json:"data_source"`
}
