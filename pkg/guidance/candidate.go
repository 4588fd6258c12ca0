package guidance

import (
	"cmp"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"golang.org/x/exp/slices"
)

// minimal angle of a non-reverse candidate. angle 0 is reserved for the reverse arm.
const minCandidateAngle = 1e-6

type TurnCandidate struct {
	EdgeID      datastructure.Index `json:"edge_id"`
	Valid       bool                `json:"valid"`
	Angle       float64             `json:"angle"`
	Instruction TurnInstruction     `json:"instruction"`
	Confidence  float64             `json:"confidence"`

	segregated bool // result of merging the two carriageways of a divided road
}

func (c TurnCandidate) IsReverse() bool {
	return c.Angle == 0
}

func (c TurnCandidate) deviation() float64 {
	return geo.AngularDeviation(c.Angle, STRAIGHT_ANGLE)
}

func compareCandidates(a, b TurnCandidate) int {
	if a.Angle != b.Angle {
		return cmp.Compare(a.Angle, b.Angle)
	}
	return cmp.Compare(a.EdgeID, b.EdgeID)
}

func sortCandidates(candidates []TurnCandidate) {
	slices.SortFunc(candidates, compareCandidates)
}

// left and right neighbour in the circular angle order. left = counter-clockwise = bigger angle.
func leftOf(i, n int) int {
	return (i + 1) % n
}

func rightOf(i, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}
