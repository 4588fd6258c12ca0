package osmparser

import (
	"context"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

/*
simpang empat di sekitar UGM:

	            2
	            |  (6 shape point)
	8 -- 5 ---- 1 ----> 4
	   (gate)   |
	            3

way 10 (3-1) dan 15 (1-6-2) Jalan Kaliurang, way 11 (1->4) oneway, way 12 (1-5-8) dengan gate di 5.
no_left_turn dari 10 lewat 1 ke 12. way 13 footway diabaikan.
*/
const crossingOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.7829" lon="110.3671" version="1"/>
  <node id="2" lat="-7.7820" lon="110.3671" version="1"/>
  <node id="3" lat="-7.7838" lon="110.3671" version="1"/>
  <node id="4" lat="-7.7829" lon="110.3680" version="1"/>
  <node id="5" lat="-7.7829" lon="110.3662" version="1">
    <tag k="barrier" v="gate"/>
  </node>
  <node id="6" lat="-7.78245" lon="110.36712" version="1"/>
  <node id="8" lat="-7.7829" lon="110.3657" version="1"/>
  <way id="10" version="1">
    <nd ref="3"/>
    <nd ref="1"/>
    <tag k="highway" v="primary"/>
    <tag k="name" v="Jalan Kaliurang"/>
  </way>
  <way id="15" version="1">
    <nd ref="1"/>
    <nd ref="6"/>
    <nd ref="2"/>
    <tag k="highway" v="primary"/>
    <tag k="name" v="Jalan Kaliurang"/>
  </way>
  <way id="11" version="1">
    <nd ref="1"/>
    <nd ref="4"/>
    <tag k="highway" v="secondary"/>
    <tag k="name" v="Jalan Colombo"/>
    <tag k="oneway" v="yes"/>
  </way>
  <way id="12" version="1">
    <nd ref="1"/>
    <nd ref="5"/>
    <nd ref="8"/>
    <tag k="highway" v="residential"/>
    <tag k="ref" v="Gang Gejayan"/>
  </way>
  <way id="13" version="1">
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
  </way>
  <relation id="20" version="1">
    <member type="way" ref="10" role="from"/>
    <member type="node" ref="1" role="via"/>
    <member type="way" ref="12" role="to"/>
    <tag k="type" v="restriction"/>
    <tag k="restriction" v="no_left_turn"/>
  </relation>
</osm>`

func stringScanner(data string) ScannerFactory {
	return func(ctx context.Context) (osm.Scanner, error) {
		return osmxml.New(ctx, strings.NewReader(data)), nil
	}
}

func parseCrossing(t *testing.T) (*OsmParser, *da.Graph, *da.RestrictionMap) {
	t.Helper()
	p := NewOSMParser(zaptest.NewLogger(t))
	g, rm, err := p.Parse(context.Background(), stringScanner(crossingOsm))
	require.NoError(t, err)
	return p, g, rm
}

func edgeBetween(t *testing.T, p *OsmParser, g *da.Graph, fromOsm, toOsm int64) da.Index {
	t.Helper()
	u, ok := p.nodeIDMap[fromOsm]
	require.True(t, ok, "osm node %d is not a vertex", fromOsm)
	v, ok := p.nodeIDMap[toOsm]
	require.True(t, ok, "osm node %d is not a vertex", toOsm)
	e, ok := g.FindEdge(u, v)
	require.True(t, ok, "no edge %d -> %d", fromOsm, toOsm)
	return e
}

func TestParseCrossing(t *testing.T) {
	p, g, rm := parseCrossing(t)

	// 6 cuma shape point
	require.Equal(t, 6, g.NumberOfVertices())
	require.Equal(t, 10, g.NumberOfEdges())
	_, ok := p.nodeIDMap[6]
	assert.False(t, ok)

	north := edgeBetween(t, p, g, 1, 2)
	assert.Equal(t, "Jalan Kaliurang", g.GetStreetName(north))
	assert.Equal(t, pkg.PRIMARY, g.GetEdgeData(north).RoadClass)
	assert.Equal(t, int64(15), g.GetOsmWayId(north))
	assert.Len(t, g.GetEdgeGeometry(north), 3)

	east := edgeBetween(t, p, g, 1, 4)
	assert.False(t, g.GetEdgeData(east).Reversed)
	assert.True(t, g.GetEdgeData(edgeBetween(t, p, g, 4, 1)).Reversed)

	west := edgeBetween(t, p, g, 1, 5)
	assert.Equal(t, "Gang Gejayan", g.GetStreetName(west))
	assert.True(t, g.IsBarrier(p.nodeIDMap[5]))
	assert.False(t, g.IsBarrier(p.nodeIDMap[1]))

	fromSouth := edgeBetween(t, p, g, 3, 1)
	assert.True(t, g.GetEdgeData(fromSouth).Restricted)
	assert.Equal(t, 1, rm.Len())
	assert.True(t, rm.IsRestricted(p.nodeIDMap[1], fromSouth, west))
	assert.False(t, rm.IsRestricted(p.nodeIDMap[1], fromSouth, north))
}

func TestParsedCrossingTurns(t *testing.T) {
	p, g, rm := parseCrossing(t)
	ta := guidance.NewTurnAnalysisFromGraph(g, rm, guidance.DefaultConfig(), zaptest.NewLogger(t))

	fromSouth := edgeBetween(t, p, g, 3, 1)
	turns := ta.ComputeTurns(p.nodeIDMap[3], fromSouth)
	require.Len(t, turns, 4)

	byEdge := make(map[da.Index]guidance.TurnCandidate)
	for _, c := range turns {
		byEdge[c.EdgeID] = c
	}

	assert.False(t, byEdge[edgeBetween(t, p, g, 1, 5)].Valid, "no_left_turn")
	assert.True(t, byEdge[edgeBetween(t, p, g, 1, 2)].Valid)
	assert.Equal(t, guidance.DIRECTION_STRAIGHT, byEdge[edgeBetween(t, p, g, 1, 2)].Instruction.Modifier)

	right := byEdge[edgeBetween(t, p, g, 1, 4)]
	assert.True(t, right.Valid)
	assert.Equal(t, guidance.DIRECTION_RIGHT, right.Instruction.Modifier)
}

func TestParseMissingFile(t *testing.T) {
	p := NewOSMParser(nil)
	_, _, err := p.ParseFile(context.Background(), "./does-not-exist.osm.pbf")
	assert.Error(t, err)
}

func tags(kv ...string) osm.Tags {
	tt := make(osm.Tags, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		tt = append(tt, osm.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return tt
}

func TestDirectionOf(t *testing.T) {
	testCases := []struct {
		name string
		tags osm.Tags
		want wayDirection
	}{
		{"two way", tags("highway", "primary"), wayDirection{true, true}},
		{"oneway yes", tags("highway", "primary", "oneway", "yes"), wayDirection{true, false}},
		{"oneway reversed", tags("highway", "primary", "oneway", "-1"), wayDirection{false, true}},
		{"roundabout implies oneway", tags("highway", "primary", "junction", "roundabout"), wayDirection{true, false}},
		{"motorway implies oneway", tags("highway", "motorway"), wayDirection{true, false}},
		{"motorway explicitly two way", tags("highway", "motorway", "oneway", "no"), wayDirection{true, true}},
		{"no vehicles forward", tags("highway", "primary", "vehicle:forward", "no"), wayDirection{false, true}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, directionOf(&osm.Way{Tags: tt.tags}))
		})
	}
}

func TestTravelModeAndBarrier(t *testing.T) {
	assert.Equal(t, pkg.TRAVEL_MODE_DRIVING, travelModeOf(tags("highway", "service")))
	assert.Equal(t, pkg.TRAVEL_MODE_INACCESSIBLE, travelModeOf(tags("highway", "service", "access", "private")))
	// tag yang lebih spesifik menang
	assert.Equal(t, pkg.TRAVEL_MODE_DRIVING, travelModeOf(tags("access", "no", "motorcar", "yes")))
	assert.Equal(t, pkg.TRAVEL_MODE_INACCESSIBLE, travelModeOf(tags("motor_vehicle", "yes", "motorcar", "no")))
	assert.Equal(t, pkg.TRAVEL_MODE_FERRY, travelModeOf(tags("route", "ferry")))

	assert.True(t, isBarrier(tags("barrier", "gate")))
	assert.True(t, isBarrier(tags("barrier", "bollard", "access", "no")))
	assert.False(t, isBarrier(tags("barrier", "lift_gate", "access", "yes")))
	assert.False(t, isBarrier(tags("barrier", "fence")))
}

func TestParseRestrictionKind(t *testing.T) {
	assert.Equal(t, NO_U_TURN, parseRestrictionKind("no_u_turn"))
	assert.True(t, parseRestrictionKind("only_straight_on").IsOnly())
	assert.False(t, parseRestrictionKind("no_entry").IsOnly())
	assert.Equal(t, UNKNOWN_RESTRICTION, parseRestrictionKind("give_way"))
}
