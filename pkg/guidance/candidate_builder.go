package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
)

/*
buildCandidates. semua out edge dari turnNode jadi kandidat.

	       e2
	       |
	e3 ----v---- e1        v = turnNode
	       |
	     viaEdge (dari fromNode)

angle diukur counter-clockwise dari arah v->fromNode ke arah v->head(e), pakai shape point terdekat dengan v (bukan garis lurus node ke node).
twin dari viaEdge = reverse arm, angle 0.
*/
func (ta *TurnAnalysis) buildCandidates(ctx *turnContext) {
	v := ctx.turnNode
	reverseEdge := ta.graph.GetReverseEdge(ctx.viaEdge)
	isBarrier := ta.barriers.IsBarrier(v)

	onlyTo, hasOnly := datastructure.INVALID_INDEX, false
	if ctx.inData.Restricted {
		onlyTo, hasOnly = ta.restrictions.OnlyTurn(v, ctx.viaEdge)
	}

	junction := ta.graph.GetVertexCoordinate(v)
	approach := ta.geometry.GeometryPointAdjacentTo(ctx.viaEdge, true)

	candidates := make([]TurnCandidate, 0, ta.graph.GetOutDegree(v))
	ta.graph.ForOutEdgesOf(v, func(e, head datastructure.Index) {
		data := ta.graph.GetEdgeData(e)
		valid := !data.Reversed && data.TravelMode != pkg.TRAVEL_MODE_INACCESSIBLE

		if hasOnly && e != onlyTo {
			valid = false
		}

		var angle float64
		if e == reverseEdge {
			// u-turn cuma boleh di dead end (atau barrier).
			if !isBarrier && ta.countBidirectional(v) > 1 {
				valid = false
			}
			angle = 0
		} else {
			if isBarrier {
				valid = false
			}
			departure := ta.geometry.GeometryPointAdjacentTo(e, false)
			angle = geo.ComputeTurnAngle(approach.ToGeoCoordinate(), junction.ToGeoCoordinate(),
				departure.ToGeoCoordinate())
			if angle < minCandidateAngle {
				angle = minCandidateAngle
			}
		}

		if valid && ctx.inData.Restricted && ta.restrictions.IsRestricted(v, ctx.viaEdge, e) {
			valid = false
		}

		candidates = append(candidates, TurnCandidate{
			EdgeID:      e,
			Valid:       valid,
			Angle:       angle,
			Instruction: TurnInstruction{Type: TURN_INVALID, Modifier: DIRECTION_UTURN},
		})
	})

	sortCandidates(candidates)
	ctx.candidates = candidates
}

// countBidirectional. jumlah jalan dua arah di v. out edge e bisa dilewati balik kalau twin-nya tidak reversed.
func (ta *TurnAnalysis) countBidirectional(v datastructure.Index) int {
	count := 0
	ta.graph.ForOutEdgesOf(v, func(e, _ datastructure.Index) {
		if ta.graph.GetEdgeData(e).Reversed {
			return
		}
		if !ta.graph.GetEdgeData(ta.graph.GetReverseEdge(e)).Reversed {
			count++
		}
	})
	return count
}
