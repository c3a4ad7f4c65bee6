package locations

import "github.com/tidwall/geodesic"

// Distance returns the length in kilometres of the geodesic between a and b
// on the WGS-84 ellipsoid.
func Distance(a, b Coordinate) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, nil, nil)
	return s12 / 1000.0
}
