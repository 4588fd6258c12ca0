package geo

import (
	"github.com/golang/geo/s2"
)

/*
ComputeTurnAngle. sudut counter-clockwise dari arah (junction -> approach) ke arah (junction -> departure), in [0,360).

	            270 (left)
	                |
	180 (straight) -+- approach (0, u-turn)
	                |
	            90 (right)

s2.TurnAngle(a,b,c) = exterior angle at b, positive for a left turn. so straight = 180 + 0, left = 180 + 90.
*/
func ComputeTurnAngle(approach, junction, departure Coordinate) float64 {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(approach.Lat, approach.Lon))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(junction.Lat, junction.Lon))
	c := s2.PointFromLatLng(s2.LatLngFromDegrees(departure.Lat, departure.Lon))
	if a == b || b == c {
		// degenerate geometry, treat as straight
		return 180
	}
	turn := s2.TurnAngle(a, b, c).Degrees()
	return NormalizeAngle(180 + turn)
}
