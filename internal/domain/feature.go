package domain

// RawFeature is a single map feature as returned by a feature provider
// (Overpass element or a planet_osm row), before normalization.
type RawFeature struct {
	ID   int64   `json:"id"`
	Type string  `json:"type"`
	Lat  float64 `json:"lat,omitempty"`
	Lon  float64 `json:"lon,omitempty"`
	// Ways and relations carry a representative point instead of node
	// coordinates.
	Center *Point            `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// RepresentativePoint resolves the feature to a single point. Node
// coordinates win; ways/relations fall back to their center. Features with
// neither are not point-resolvable and are dropped by the normalizer.
func (f *RawFeature) RepresentativePoint() (Point, bool) {
	if f.Lat != 0 || f.Lon != 0 {
		return Point{Lat: f.Lat, Lon: f.Lon}, true
	}
	if f.Center != nil {
		return *f.Center, true
	}
	return Point{}, false
}

// RouteMatrix holds per-destination road routing results from a single
// batched routing call. Durations are seconds, distances meters, indexed
// like the destination slice that produced them.
type RouteMatrix struct {
	Durations []float64 `json:"durations"`
	Distances []float64 `json:"distances"`
}

// NoiseReading is a single strategic-noise-map sample.
type NoiseReading struct {
	LevelDB float64 `json:"level_db"`
	// Source labels the layer that produced the value, e.g.
	// "geoportal:mazowieckie".
	Source string `json:"source"`
}

// LandslideRecord is a registry entry for a point inside a mapped landslide
// area.
type LandslideRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
}
