package controllers

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/http/usecases"
	"github.com/paulmach/orb/geojson"
)

type TurnService interface {
	TurnsAtEdge(edgeID int64) (usecases.Approach, error)
	TurnsAtJunction(lat, lon float64) (usecases.JunctionTurns, error)
	JunctionGeoJSON(lat, lon float64) (*geojson.FeatureCollection, error)
	Directions(edgeIDs []int64) ([]guidance.RouteStep, error)
}
