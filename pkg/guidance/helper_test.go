package guidance

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	junctionLat = -7.7829
	junctionLon = 110.3671
	armLengthKm = 0.05
)

/*
junctionFixture. satu junction di tengah, setiap arm = road segment dari center ke node di bearing tertentu.

	        arm(0)
	          |
	arm(270) -c- arm(90)
	          |
	        arm(180)   <- approach dari selatan: angle kandidat = 180 - bearing
*/
type junctionFixture struct {
	b            *datastructure.GraphBuilder
	center       datastructure.Index
	restrictions *datastructure.RestrictionMap
	g            *datastructure.Graph
}

func newJunctionFixture() *junctionFixture {
	b := datastructure.NewGraphBuilder()
	center := b.AddVertex(junctionLat, junctionLon, 1)
	return &junctionFixture{b: b, center: center, restrictions: datastructure.NewRestrictionMap()}
}

// arm adds a road center -> node at bearing. out = attributes of center->node, in = node->center.
func (f *junctionFixture) arm(bearing float64, out, in datastructure.RoadAttributes) datastructure.Index {
	lat, lon := geo.GetDestinationPoint(junctionLat, junctionLon, bearing, armLengthKm)
	node := f.b.AddVertex(lat, lon, int64(f.b.NumberOfVertices()+1))
	f.b.AddRoad(f.center, node, nil, out, in)
	return node
}

// twoWay adds a bidirectional arm.
func (f *junctionFixture) twoWay(bearing float64, attr datastructure.RoadAttributes) datastructure.Index {
	return f.arm(bearing, attr, attr)
}

// outgoing adds a oneway arm leaving the junction.
func (f *junctionFixture) outgoing(bearing float64, attr datastructure.RoadAttributes) datastructure.Index {
	return f.arm(bearing, attr, against(attr))
}

// incoming adds a oneway arm arriving at the junction.
func (f *junctionFixture) incoming(bearing float64, attr datastructure.RoadAttributes) datastructure.Index {
	return f.arm(bearing, against(attr), attr)
}

func (f *junctionFixture) build() *datastructure.Graph {
	f.g = f.b.Build()
	return f.g
}

func (f *junctionFixture) analysis(t *testing.T) *TurnAnalysis {
	t.Helper()
	if f.g == nil {
		f.build()
	}
	return NewTurnAnalysisFromGraph(f.g, f.restrictions, DefaultConfig(), zaptest.NewLogger(t))
}

func (f *junctionFixture) edge(t *testing.T, u, v datastructure.Index) datastructure.Index {
	t.Helper()
	e, ok := f.g.FindEdge(u, v)
	require.True(t, ok, "no edge %d -> %d", u, v)
	return e
}

func road(name string, class pkg.FunctionalRoadClass) datastructure.RoadAttributes {
	return datastructure.RoadAttributes{Name: name, RoadClass: class, TravelMode: pkg.TRAVEL_MODE_DRIVING}
}

func against(attr datastructure.RoadAttributes) datastructure.RoadAttributes {
	attr.Reversed = true
	return attr
}

func onRing(attr datastructure.RoadAttributes) datastructure.RoadAttributes {
	attr.Roundabout = true
	return attr
}

// bearingForAngle. bearing arm yang menghasilkan angle tertentu kalau approach dari selatan.
func bearingForAngle(angle float64) float64 {
	return geo.NormalizeAngle(180 - angle)
}

func candidateFor(t *testing.T, turns []TurnCandidate, e datastructure.Index) TurnCandidate {
	t.Helper()
	for _, c := range turns {
		if c.EdgeID == e {
			return c
		}
	}
	require.FailNow(t, "candidate not found", "edge %d", e)
	return TurnCandidate{}
}

func validCandidates(turns []TurnCandidate) []TurnCandidate {
	valid := make([]TurnCandidate, 0, len(turns))
	for _, c := range turns {
		if c.Valid {
			valid = append(valid, c)
		}
	}
	return valid
}
