package domain

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/surroundings-microservice/internal/pkg/errors"
	"github.com/surroundings-microservice/internal/pkg/utils"
)

// Supported coordinate reference systems for parcel geometry.
const (
	SRIDWGS84 = 4326
	SRIDCS92  = 2180
)

// Parcel is a cadastral land unit. Geometry is a polygon in the CRS tagged
// by SRID; all distance math downstream runs on the WGS84 centroid.
type Parcel struct {
	ID          string        `json:"id"`
	Voivodeship string        `json:"voivodeship,omitempty"`
	SRID        int           `json:"srid"`
	Geometry    *geom.Polygon `json:"-"`
}

// NewParcelFromRing builds a parcel from a single exterior ring of
// [x, y] (or [lon, lat] for WGS84) coordinate pairs.
func NewParcelFromRing(id string, srid int, ring [][]float64) (*Parcel, error) {
	if len(ring) < 3 {
		return nil, errors.ErrParcelGeometry
	}

	coords := make([]geom.Coord, 0, len(ring)+1)
	for _, pt := range ring {
		if len(pt) != 2 {
			return nil, errors.ErrParcelGeometry
		}
		coords = append(coords, geom.Coord{pt[0], pt[1]})
	}
	// close the ring if the caller did not
	if !coords[0].Equal(geom.XY, coords[len(coords)-1]) {
		coords = append(coords, coords[0])
	}

	polygon, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{coords})
	if err != nil {
		return nil, errors.ErrParcelGeometry
	}

	return &Parcel{ID: id, SRID: srid, Geometry: polygon}, nil
}

// Centroid returns the parcel's representative point in WGS84, converting
// from the parcel's CRS when needed.
func (p *Parcel) Centroid() (Point, error) {
	if p.Geometry == nil {
		return Point{}, errors.ErrParcelGeometry
	}

	c, err := xy.Centroid(p.Geometry)
	if err != nil {
		return Point{}, errors.ErrParcelGeometry
	}

	switch p.SRID {
	case SRIDCS92:
		lat, lon := utils.CS92ToWGS84(c[0], c[1])
		return Point{Lat: lat, Lon: lon}, nil
	case SRIDWGS84:
		return Point{Lat: c[1], Lon: c[0]}, nil
	default:
		return Point{}, errors.ErrParcelGeometry
	}
}
