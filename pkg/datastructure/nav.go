package datastructure

import "github.com/lintang-b-s/navigatorx-guidance/pkg/geo"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewGeoCoordinates(coords []Coordinate) []geo.Coordinate {
	geoCoords := make([]geo.Coordinate, len(coords))
	for i, coord := range coords {
		geoCoords[i] = geo.NewCoordinate(coord.GetLat(), coord.GetLon())
	}
	return geoCoords
}

func (c Coordinate) ToGeoCoordinate() geo.Coordinate {

	return geo.NewCoordinate(c.GetLat(), c.GetLon())
}
