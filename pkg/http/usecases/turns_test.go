package usecases

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/preprocessor"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const centerLat, centerLon = -7.7956, 110.3695

type mapStore struct {
	tables map[da.Index]da.TurnTable
	err    error
}

func (s *mapStore) GetTurnTable(viaEdge da.Index) (da.TurnTable, error) {
	if s.err != nil {
		return da.TurnTable{}, s.err
	}
	table, ok := s.tables[viaEdge]
	if !ok {
		return da.TurnTable{}, util.WrapErrorf(nil, util.ErrNotFound, "turn table of edge %d not found", viaEdge)
	}
	return table, nil
}

/*
simpang empat di titik nol Jogja, semua dua arah.

	      n
	      |
	w --- c --- e
	      |
	      s
*/
func newTestService(t *testing.T, store TurnStore) (*TurnService, *da.Graph, map[string]da.Index) {
	t.Helper()
	b := da.NewGraphBuilder()
	center := b.AddVertex(centerLat, centerLon, 1)
	nodes := map[string]da.Index{"center": center}
	for i, arm := range []struct {
		name    string
		bearing float64
		street  string
	}{
		{"north", 0, "Jalan Malioboro"},
		{"east", 90, "Jalan Mataram"},
		{"south", 180, "Jalan Malioboro"},
		{"west", 270, "Jalan Pasar Kembang"},
	} {
		lat, lon := geo.GetDestinationPoint(centerLat, centerLon, arm.bearing, 0.05)
		nodes[arm.name] = b.AddVertex(lat, lon, int64(i+2))
		attr := da.RoadAttributes{Name: arm.street, RoadClass: pkg.SECONDARY, TravelMode: pkg.TRAVEL_MODE_DRIVING}
		b.AddRoad(center, nodes[arm.name], nil, attr, attr)
	}
	g := b.Build()

	log := zaptest.NewLogger(t)
	rm := da.NewRestrictionMap()
	ta := guidance.NewTurnAnalysisFromGraph(g, rm, guidance.DefaultConfig(), log)
	p := preprocessor.NewPreprocessor(g, rm, ta, preprocessor.DefaultPenaltyConfig(), nil, log)

	rt := spatialindex.NewRtree()
	rt.Build(g, 0.01, log)

	return NewTurnService(log, g, store, p, rt, guidance.NewDirectionBuilder(g, ta), 0.2), g, nodes
}

func edge(t *testing.T, g *da.Graph, u, v da.Index) da.Index {
	t.Helper()
	e, ok := g.FindEdge(u, v)
	require.True(t, ok)
	return e
}

func errorCode(t *testing.T, err error) error {
	t.Helper()
	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	return uerr.Code()
}

func TestTurnsAtEdgeComputed(t *testing.T) {
	ts, g, nodes := newTestService(t, nil)
	via := edge(t, g, nodes["south"], nodes["center"])

	a, err := ts.TurnsAtEdge(int64(via))
	require.NoError(t, err)
	assert.False(t, a.FromStore)
	assert.Equal(t, via, a.ViaEdge)
	assert.Equal(t, nodes["south"], a.FromNode)
	assert.Equal(t, "Jalan Malioboro", a.StreetName)
	require.Len(t, a.Turns, 4)

	byEdge := make(map[da.Index]Turn)
	for _, turn := range a.Turns {
		byEdge[turn.Record.ToEdge] = turn
	}

	right := byEdge[edge(t, g, nodes["center"], nodes["east"])]
	assert.True(t, right.Announced)
	assert.Equal(t, guidance.NewTurnInstruction(guidance.TURN_TURN, guidance.DIRECTION_RIGHT), right.Instruction)
	assert.Equal(t, "Jalan Mataram", right.StreetName)
	assert.NotEmpty(t, right.Polyline)
	assert.Greater(t, right.Record.Penalty, 0.0)

	uTurn := byEdge[g.GetReverseEdge(via)]
	assert.False(t, uTurn.Record.Valid)
	assert.False(t, uTurn.Announced)
}

func TestTurnsAtEdgeFromStore(t *testing.T) {
	stored := da.TurnTable{ViaEdge: 0, FromNode: 0, Turns: []da.TurnRecord{
		{ToEdge: 1, Angle: 90, Valid: true, TurnType: uint8(guidance.TURN_TURN), Modifier: uint8(guidance.DIRECTION_RIGHT)},
	}}
	ts, _, _ := newTestService(t, &mapStore{tables: map[da.Index]da.TurnTable{0: stored}})

	a, err := ts.TurnsAtEdge(0)
	require.NoError(t, err)
	assert.True(t, a.FromStore)
	require.Len(t, a.Turns, 1)
	assert.Equal(t, stored.Turns[0], a.Turns[0].Record)
	assert.True(t, a.Turns[0].Announced)

	// edge lain tidak ada di store, dihitung langsung
	a, err = ts.TurnsAtEdge(1)
	require.NoError(t, err)
	assert.False(t, a.FromStore)
	assert.NotEmpty(t, a.Turns)
}

func TestTurnsAtEdgeErrors(t *testing.T) {
	ts, g, _ := newTestService(t, nil)

	_, err := ts.TurnsAtEdge(int64(g.NumberOfEdges()))
	require.Error(t, err)
	assert.Equal(t, util.ErrNotFound, errorCode(t, err))

	_, err = ts.TurnsAtEdge(-1)
	require.Error(t, err)
	assert.Equal(t, util.ErrNotFound, errorCode(t, err))

	broken, _, _ := newTestService(t, &mapStore{err: errors.New("value log truncated")})
	_, err = broken.TurnsAtEdge(0)
	require.Error(t, err)
	assert.Equal(t, util.ErrInternalServerError, errorCode(t, err))
}

func TestTurnsAtJunction(t *testing.T) {
	ts, g, nodes := newTestService(t, nil)

	qLat, qLon := geo.GetDestinationPoint(centerLat, centerLon, 45, 0.01)
	j, err := ts.TurnsAtJunction(qLat, qLon)
	require.NoError(t, err)
	assert.Equal(t, nodes["center"], j.Junction.Vertex)
	assert.Equal(t, 4, j.Junction.Degree)
	require.Len(t, j.Approaches, 4)

	for _, a := range j.Approaches {
		assert.Equal(t, nodes["center"], g.GetTarget(a.ViaEdge))
		assert.Len(t, a.Turns, 4)
	}

	_, err = ts.TurnsAtJunction(-6.2, 106.8)
	require.Error(t, err)
	assert.Equal(t, util.ErrNotFound, errorCode(t, err))
}

func TestJunctionGeoJSON(t *testing.T) {
	ts, _, nodes := newTestService(t, nil)

	fc, err := ts.JunctionGeoJSON(centerLat, centerLon)
	require.NoError(t, err)
	require.Len(t, fc.Features, 9)

	point, ok := fc.Features[0].Geometry.(orb.Point)
	require.True(t, ok)
	assert.InDelta(t, centerLon, point.Lon(), 1e-9)
	assert.InDelta(t, centerLat, point.Lat(), 1e-9)
	assert.Equal(t, nodes["center"], fc.Features[0].Properties["vertex"])

	roles := map[string]int{}
	for _, f := range fc.Features[1:] {
		ls, ok := f.Geometry.(orb.LineString)
		require.True(t, ok)
		assert.Len(t, ls, 2)
		roles[f.Properties["role"].(string)]++
	}
	assert.Equal(t, map[string]int{"approach": 4, "departure": 4}, roles)
}

func TestDirections(t *testing.T) {
	ts, g, nodes := newTestService(t, nil)

	steps, err := ts.Directions([]int64{
		int64(edge(t, g, nodes["south"], nodes["center"])),
		int64(edge(t, g, nodes["center"], nodes["east"])),
	})
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "Turn right onto Jalan Mataram", steps[1].Text)

	_, err = ts.Directions([]int64{int64(g.NumberOfEdges()) + 5})
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, errorCode(t, err))
}
