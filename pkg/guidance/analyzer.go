package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
)

// AnalyzeTurn assigns the maneuver for one candidate from its angle and the road classes and names of both edges.
func (ta *TurnAnalysis) AnalyzeTurn(viaEdge datastructure.Index, c TurnCandidate) TurnInstruction {
	if c.IsReverse() {
		return UTurn()
	}
	in, out := ta.graph.GetEdgeData(viaEdge), ta.edgeData(c)
	dir := ta.direction(c.Angle)

	switch {
	case !in.RoadClass.IsRamp() && out.RoadClass.IsRamp():
		return NewTurnInstruction(TURN_RAMP, dir)
	case in.RoadClass.IsRamp() && out.RoadClass.IsMotorway():
		return NewTurnInstruction(TURN_MERGE, dir)
	}

	if dir == DIRECTION_STRAIGHT {
		if in.NameID == out.NameID || isLaneContinuation(in, out) {
			return NewTurnInstruction(TURN_GO_STRAIGHT, dir)
		}
		return NewTurnInstruction(TURN_NAME_CHANGES, dir)
	}
	return NewTurnInstruction(TURN_TURN, dir)
}

// isLaneContinuation. motorway signage does not follow street names, staying on the same class is never a name change.
func isLaneContinuation(in, out datastructure.EdgeData) bool {
	return in.RoadClass == out.RoadClass && (in.RoadClass.IsMotorway() || in.RoadClass.IsRamp())
}

func (ta *TurnAnalysis) turnOrRamp(ctx *turnContext, c TurnCandidate) TurnType {
	out := ta.edgeData(c)
	if !ctx.inData.RoadClass.IsRamp() && out.RoadClass.IsRamp() {
		return TURN_RAMP
	}
	return TURN_TURN
}

// noTurnOrNewName. instruction for a continuation that needs no real maneuver.
func (ta *TurnAnalysis) noTurnOrNewName(ctx *turnContext, c TurnCandidate) TurnInstruction {
	dir := ta.direction(c.Angle)
	if dir == DIRECTION_UTURN {
		return UTurn()
	}
	out := ta.edgeData(c)
	if ctx.inData.NameID == out.NameID || isLaneContinuation(ctx.inData, out) {
		return NoTurn(dir)
	}
	return NewTurnInstruction(TURN_NAME_CHANGES, dir)
}

func (ta *TurnAnalysis) getInstructionForObvious(ctx *turnContext, c TurnCandidate) TurnInstruction {
	if ta.turnOrRamp(ctx, c) == TURN_RAMP {
		return NewTurnInstruction(TURN_RAMP, ta.direction(c.Angle))
	}
	return ta.noTurnOrNewName(ctx, c)
}

// confidence. roundabout instructions and u-turns do not come from a sector, so there is no boundary to be close to.
func (ta *TurnAnalysis) confidence(c TurnCandidate) float64 {
	if c.isFixed() || c.Instruction.IsUTurn() {
		return 1
	}
	return ta.config.Sectors.Confidence(c.Angle)
}

/*
analyzeCandidates. default instruction untuk semua kandidat yang belum di-set roundabout stage, lalu dispatch ke
handler sesuai bentuk junction.

	reverse arm      -> UTurn
	tidak valid      -> Invalid (modifier = sector)
	valid            -> AnalyzeTurn
*/
func (ta *TurnAnalysis) analyzeCandidates(ctx *turnContext) {
	for i := range ctx.candidates {
		c := &ctx.candidates[i]
		switch {
		case c.isFixed():
		case c.IsReverse():
			c.Instruction = UTurn()
		case !c.Valid:
			c.Instruction = NewTurnInstruction(TURN_INVALID, ta.direction(c.Angle))
		default:
			c.Instruction = ta.AnalyzeTurn(ctx.viaEdge, *c)
		}
		c.Confidence = ta.confidence(*c)
	}

	if ctx.onRoundabout {
		return
	}

	switch ctx.kind {
	case JUNCTION_MOTORWAY:
		ta.handleMotorwayJunction(ctx)
	case JUNCTION_BASIC:
		ta.dispatchByArity(ctx)
	}
}
