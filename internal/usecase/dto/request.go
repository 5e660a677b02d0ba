package dto

// PointQuery locates a search around a single WGS84 point. RadiusM falls
// back to the configured default when omitted.
type PointQuery struct {
	Lat     float64 `query:"lat" json:"lat" validate:"required,min=-90,max=90"`
	Lon     float64 `query:"lon" json:"lon" validate:"required,min=-180,max=180"`
	RadiusM float64 `query:"radius_m" json:"radius_m" validate:"omitempty,min=50,max=50000"`
}

// ParcelRequest carries a cadastral parcel outline. Ring is a single
// exterior ring of [x, y] pairs ([lon, lat] for SRID 4326, metric
// easting/northing for SRID 2180). SRID defaults to 4326.
type ParcelRequest struct {
	ID          string      `json:"id"`
	SRID        int         `json:"srid" validate:"omitempty,oneof=4326 2180"`
	Ring        [][]float64 `json:"ring" validate:"required,min=3,dive,len=2"`
	Voivodeship string      `json:"voivodeship"`
	RadiusM     float64     `json:"radius_m" validate:"omitempty,min=50,max=50000"`
}
