package guidance

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"github.com/stretchr/testify/assert"
)

/*
approach dari selatan yang melengkung, segmen terakhir datang dari barat daya:

	        c ---- east
	       /
	shape (225)
	      |
	    south
*/
func TestCandidateAngleFollowsCurvedApproach(t *testing.T) {
	kaliurang := road("Jalan Kaliurang", pkg.SECONDARY)

	straight := newJunctionFixture()
	straightSouth := straight.twoWay(180, kaliurang)
	straightEast := straight.twoWay(90, road("Jalan Colombo", pkg.SECONDARY))
	straight.build()
	turns := straight.analysis(t).ComputeTurns(straightSouth, straight.edge(t, straightSouth, straight.center))
	assert.InDelta(t, 90, candidateFor(t, turns, straight.edge(t, straight.center, straightEast)).Angle, 1)

	curved := newJunctionFixture()
	southLat, southLon := geo.GetDestinationPoint(junctionLat, junctionLon, 180, armLengthKm)
	shapeLat, shapeLon := geo.GetDestinationPoint(junctionLat, junctionLon, 225, armLengthKm/2)
	south := curved.b.AddVertex(southLat, southLon, 2)
	curved.b.AddRoad(curved.center, south, []datastructure.Coordinate{
		datastructure.NewCoordinate(junctionLat, junctionLon),
		datastructure.NewCoordinate(shapeLat, shapeLon),
		datastructure.NewCoordinate(southLat, southLon),
	}, kaliurang, kaliurang)
	east := curved.twoWay(90, road("Jalan Colombo", pkg.SECONDARY))
	curved.build()

	turns = curved.analysis(t).ComputeTurns(south, curved.edge(t, south, curved.center))
	right := candidateFor(t, turns, curved.edge(t, curved.center, east))
	assert.InDelta(t, 135, right.Angle, 1)
	assert.Equal(t, DIRECTION_RIGHT, right.Instruction.Modifier)
}
