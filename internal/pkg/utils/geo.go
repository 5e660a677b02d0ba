package utils

import "math"

const earthRadiusM = 6371000.0

// HaversineDistance returns the great-circle distance between two WGS84
// points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// ValidateCoordinates checks WGS84 coordinate bounds.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius checks the search radius bound (50 m - 50 km).
func ValidateRadius(radiusM float64) bool {
	return radiusM >= 50 && radiusM <= 50000
}

// EPSG:2180 (PL CS92): transverse Mercator on the GRS80 ellipsoid,
// central meridian 19°E, scale 0.9993, false easting 500000,
// false northing -5300000. Cadastral registries report parcel geometry in
// this CRS; all distance math downstream runs on WGS84.
const (
	grs80A  = 6378137.0
	grs80F  = 1.0 / 298.257222101
	cs92K0  = 0.9993
	cs92FE  = 500000.0
	cs92FN  = -5300000.0
	cs92Lon = 19.0 * math.Pi / 180.0
)

var (
	grs80E2  = grs80F * (2 - grs80F)
	grs80Ep2 = grs80E2 / (1 - grs80E2)
)

func meridionalArc(phi float64) float64 {
	e2 := grs80E2
	e4 := e2 * e2
	e6 := e4 * e2
	return grs80A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}

// CS92ToWGS84 converts EPSG:2180 easting/northing to WGS84 lat/lon degrees.
func CS92ToWGS84(easting, northing float64) (lat, lon float64) {
	e2 := grs80E2
	ep2 := grs80Ep2

	m := (northing - cs92FN) / cs92K0
	mu := m / (grs80A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := grs80A / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := grs80A * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := (easting - cs92FE) / (n1 * cs92K0)

	phi := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)
	lambda := cs92Lon + (d-
		(1+2*t1+c1)*math.Pow(d, 3)/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cosPhi1

	return phi * 180.0 / math.Pi, lambda * 180.0 / math.Pi
}

// WGS84ToCS92 converts WGS84 lat/lon degrees to EPSG:2180 easting/northing.
func WGS84ToCS92(lat, lon float64) (easting, northing float64) {
	e2 := grs80E2
	ep2 := grs80Ep2

	phi := lat * math.Pi / 180.0
	lambda := lon * math.Pi / 180.0

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := grs80A / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := (lambda - cs92Lon) * cosPhi

	m := meridionalArc(phi)

	easting = cs92FE + cs92K0*n*(a+
		(1-t+c)*math.Pow(a, 3)/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(a, 5)/120)
	northing = cs92FN + cs92K0*(m+n*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*math.Pow(a, 4)/24+
		(61-58*t+t*t+600*c-330*ep2)*math.Pow(a, 6)/720))

	return easting, northing
}
