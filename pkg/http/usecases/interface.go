package usecases

import (
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/spatialindex"
)

type TurnStore interface {
	GetTurnTable(viaEdge da.Index) (da.TurnTable, error)
}

type TurnTableComputer interface {
	ComputeTurnTable(viaEdge da.Index) da.TurnTable
}

type SpatialIndex interface {
	NearestJunction(lat, lon, radius float64) (spatialindex.Junction, error)
}

type DirectionsBuilder interface {
	GetDrivingDirections(path []da.Index) ([]guidance.RouteStep, error)
}
