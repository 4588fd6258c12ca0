package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pointAt(from Coordinate, bearing, distKm float64) Coordinate {
	lat, lon := GetDestinationPoint(from.Lat, from.Lon, bearing, distKm)
	return NewCoordinate(lat, lon)
}

func TestComputeTurnAngle(t *testing.T) {
	junction := NewCoordinate(-7.7829, 110.3671)
	// approach dari selatan
	approach := pointAt(junction, 180, 0.05)

	tests := []struct {
		name          string
		departBearing float64
		expectedAngle float64
	}{
		{name: "straight", departBearing: 0, expectedAngle: 180},
		{name: "right", departBearing: 90, expectedAngle: 90},
		{name: "left", departBearing: 270, expectedAngle: 270},
		{name: "slight right", departBearing: 30, expectedAngle: 150},
		{name: "sharp left", departBearing: 225, expectedAngle: 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			departure := pointAt(junction, tt.departBearing, 0.05)
			angle := ComputeTurnAngle(approach, junction, departure)
			assert.InDelta(t, tt.expectedAngle, angle, 0.01)
			assert.GreaterOrEqual(t, angle, 0.0)
			assert.Less(t, angle, 360.0)
		})
	}
}

func TestComputeTurnAngleUTurn(t *testing.T) {
	junction := NewCoordinate(-7.7829, 110.3671)
	approach := pointAt(junction, 180, 0.05)
	back := pointAt(junction, 180, 0.08)

	angle := ComputeTurnAngle(approach, junction, back)
	assert.InDelta(t, 0, AngularDeviation(angle, 0), 0.01)
	assert.Less(t, angle, 360.0)
}

func TestNormalizeAngle(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeAngle(360))
	assert.Equal(t, 350.0, NormalizeAngle(-10))
	assert.Equal(t, 10.0, NormalizeAngle(370))
}

func TestAngularDeviation(t *testing.T) {
	assert.Equal(t, 20.0, AngularDeviation(350, 10))
	assert.Equal(t, 180.0, AngularDeviation(0, 180))
	assert.Equal(t, 35.0, AngularDeviation(145, 180))
}
