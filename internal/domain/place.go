package domain

// Place is a normalized nearby feature with distances and travel-time
// estimates from the parcel centroid.
type Place struct {
	Name      *string `json:"name,omitempty"`
	Kind      string  `json:"kind"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	DistanceM float64 `json:"distance_m"`
	WalkMin   int     `json:"walk_min"`
	BikeMin   int     `json:"bike_min"`
	CarMin    int     `json:"car_min"`
}
