package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"go.uber.org/zap"
)

// classifyJunction. arity = approach arm + valid continuations the roundabout stage did not decide.
func (ta *TurnAnalysis) classifyJunction(ctx *turnContext) {
	ctx.arity = 1 + len(activeCandidates(ctx))

	switch {
	case ctx.onRoundabout:
		ctx.kind = JUNCTION_OTHER
	case ta.isMotorwayJunction(ctx):
		ctx.kind = JUNCTION_MOTORWAY
	case ta.isBasicJunction(ctx):
		ctx.kind = JUNCTION_BASIC
	default:
		ctx.kind = JUNCTION_OTHER
	}
}

// activeCandidates. index kandidat valid, bukan reverse arm, dan belum di-set oleh roundabout stage. urut sesuai angle.
func activeCandidates(ctx *turnContext) []int {
	active := make([]int, 0, len(ctx.candidates))
	for i, c := range ctx.candidates {
		if c.Valid && !c.IsReverse() && !c.isFixed() {
			active = append(active, i)
		}
	}
	return active
}

/*
isMotorwayJunction. semua jalan yang bukan reverse arm cuma merge/split (dalam 35 derajat dari lurus), tidak ada jalan biasa,
dan ada motorway/trunk.

	in ====>  ====== motorway
	          \
	           `---- ramp
*/
func (ta *TurnAnalysis) isMotorwayJunction(ctx *turnContext) bool {
	hasMotorway := false
	for _, c := range ctx.candidates {
		if c.isFixed() {
			return false
		}
		nearReverse := geo.AngularDeviation(c.Angle, 0) < NARROW_TURN_ANGLE
		if (!nearReverse && c.deviation() > NARROW_TURN_ANGLE) || (c.Valid && nearReverse) {
			return false
		}
		out := ta.edgeData(c)
		switch {
		case out.RoadClass.IsMotorway():
			if c.Valid {
				hasMotorway = true
			}
		case !out.RoadClass.IsRamp():
			return false
		}
	}
	return hasMotorway || ctx.inData.RoadClass.IsMotorway()
}

func (ta *TurnAnalysis) isBasicJunction(ctx *turnContext) bool {
	for _, c := range ctx.candidates {
		if ta.edgeData(c).RoadClass.IsMotorway() {
			return false
		}
	}
	return !ctx.inData.RoadClass.IsMotorway()
}

func (ta *TurnAnalysis) dispatchByArity(ctx *turnContext) {
	active := activeCandidates(ctx)
	switch ctx.arity {
	case 1:
		ta.handleDeadEnd(ctx)
	case 2:
		// single continuation, the AnalyzeTurn result stands.
	case 3:
		ta.handleThreeWayTurn(ctx, active)
	case 4:
		ta.handleFourWayTurn(ctx, active)
	default:
		// complex junction: sector assignment from AnalyzeTurn, conflicts are left to the optimizer.
	}
}

func (ta *TurnAnalysis) handleDeadEnd(ctx *turnContext) {
	if len(ctx.candidates) == 0 || !ctx.candidates[0].IsReverse() {
		ta.log.Debug("dead end without reverse arm", zap.Uint32("via_edge", uint32(ctx.viaEdge)))
		return
	}
	ctx.candidates[0].Instruction = UTurn()
}

func isObviousOfTwo(turn, other TurnCandidate) bool {
	td, od := turn.deviation(), other.deviation()
	return (td < NARROW_TURN_ANGLE && od > 85) || od/td > OBVIOUS_OF_TWO_RATIO
}

/*
handleThreeWayTurn. dua kandidat, first di kanan (angle lebih kecil), second di kiri.

	fork:           T-junction:        cross left:     cross right:
	  \ /             ---+---            |               |
	   |                 |            ---+               +---
	   |                 |               |               |
*/
func (ta *TurnAnalysis) handleThreeWayTurn(ctx *turnContext, active []int) {
	first, second := &ctx.candidates[active[0]], &ctx.candidates[active[1]]
	firstData, secondData := ta.edgeData(*first), ta.edgeData(*second)
	inName := ctx.inData.NameID

	switch {
	case first.deviation() < NARROW_TURN_ANGLE && second.deviation() < NARROW_TURN_ANGLE:
		if first.deviation() < MAXIMAL_ALLOWED_NO_TURN_DEVIATION {
			first.Instruction = ta.getInstructionForObvious(ctx, *first)
		} else {
			first.Instruction = NewTurnInstruction(ta.forkOrRamp(ctx, *first), DIRECTION_SLIGHT_RIGHT)
		}
		if second.deviation() < MAXIMAL_ALLOWED_NO_TURN_DEVIATION {
			second.Instruction = ta.getInstructionForObvious(ctx, *second)
		} else {
			second.Instruction = NewTurnInstruction(ta.forkOrRamp(ctx, *second), DIRECTION_SLIGHT_LEFT)
		}

	case geo.AngularDeviation(first.Angle, 90) < NARROW_TURN_ANGLE &&
		geo.AngularDeviation(second.Angle, 270) < NARROW_TURN_ANGLE &&
		geo.AngularDeviation(first.Angle, second.Angle) > NARROW_TURN_ANGLE:
		first.Instruction = NewTurnInstruction(ta.endOfRoadOrRamp(ctx, *first), DIRECTION_RIGHT)
		second.Instruction = NewTurnInstruction(ta.endOfRoadOrRamp(ctx, *second), DIRECTION_LEFT)

	case first.deviation() < NARROW_TURN_ANGLE && geo.AngularDeviation(second.Angle, 270) < NARROW_TURN_ANGLE:
		first.Instruction = ta.getInstructionForObvious(ctx, *first)
		second.Instruction = NewTurnInstruction(ta.turnOrRamp(ctx, *second), DIRECTION_LEFT)

	case second.deviation() < NARROW_TURN_ANGLE && geo.AngularDeviation(first.Angle, 90) < NARROW_TURN_ANGLE:
		second.Instruction = ta.getInstructionForObvious(ctx, *second)
		first.Instruction = NewTurnInstruction(ta.turnOrRamp(ctx, *first), DIRECTION_RIGHT)

	case firstData.NameID != pkg.INVALID_NAME_ID && firstData.NameID == secondData.NameID:
		// masuk ke jalan yang sama di kedua arah
		first.Instruction = ta.mergeOrTurn(ctx, *first, *second)
		second.Instruction = ta.mergeOrTurn(ctx, *second, *first)

	case inName != pkg.INVALID_NAME_ID && firstData.NameID == inName:
		first.Instruction = ta.continueOrNoTurn(*first, *second)
		second.Instruction = NewTurnInstruction(ta.turnOrRamp(ctx, *second), ta.direction(second.Angle))

	case inName != pkg.INVALID_NAME_ID && secondData.NameID == inName:
		second.Instruction = ta.continueOrNoTurn(*second, *first)
		first.Instruction = NewTurnInstruction(ta.turnOrRamp(ctx, *first), ta.direction(first.Angle))

	default:
		first.Instruction = ta.obviousOrTurn(ctx, *first, *second)
		second.Instruction = ta.obviousOrTurn(ctx, *second, *first)
	}
}

func (ta *TurnAnalysis) forkOrRamp(ctx *turnContext, c TurnCandidate) TurnType {
	if ta.turnOrRamp(ctx, c) == TURN_RAMP {
		return TURN_RAMP
	}
	return TURN_FORK
}

func (ta *TurnAnalysis) endOfRoadOrRamp(ctx *turnContext, c TurnCandidate) TurnType {
	if ta.turnOrRamp(ctx, c) == TURN_RAMP {
		return TURN_RAMP
	}
	return TURN_END_OF_ROAD
}

func (ta *TurnAnalysis) mergeOrTurn(ctx *turnContext, c, other TurnCandidate) TurnInstruction {
	t := ta.turnOrRamp(ctx, c)
	if t == TURN_TURN && isObviousOfTwo(c, other) {
		t = TURN_MERGE
	}
	return NewTurnInstruction(t, ta.direction(c.Angle))
}

func (ta *TurnAnalysis) continueOrNoTurn(c, other TurnCandidate) TurnInstruction {
	if isObviousOfTwo(c, other) {
		return NoTurn(DIRECTION_STRAIGHT)
	}
	return NewTurnInstruction(TURN_CONTINUE, ta.direction(c.Angle))
}

func (ta *TurnAnalysis) obviousOrTurn(ctx *turnContext, c, other TurnCandidate) TurnInstruction {
	dir := ta.direction(c.Angle)
	t := ta.turnOrRamp(ctx, c)
	if t == TURN_RAMP || !isObviousOfTwo(c, other) {
		return NewTurnInstruction(t, dir)
	}
	if ctx.inData.NameID != pkg.INVALID_NAME_ID || ta.edgeData(c).NameID != pkg.INVALID_NAME_ID {
		return NewTurnInstruction(TURN_NAME_CHANGES, dir)
	}
	return NoTurn(dir)
}

/*
handleFourWayTurn. simple cross kalau ketiga kandidat dekat 90/180/270:

	   |
	---+---
	   |
	   ^ in

selain itu staggered junction, pakai hasil AnalyzeTurn (sector).
*/
func (ta *TurnAnalysis) handleFourWayTurn(ctx *turnContext, active []int) {
	right, straight, left := &ctx.candidates[active[0]], &ctx.candidates[active[1]], &ctx.candidates[active[2]]
	if geo.AngularDeviation(right.Angle, 90) >= NARROW_TURN_ANGLE ||
		straight.deviation() >= NARROW_TURN_ANGLE ||
		geo.AngularDeviation(left.Angle, 270) >= NARROW_TURN_ANGLE {
		return
	}
	right.Instruction = NewTurnInstruction(ta.turnOrRamp(ctx, *right), DIRECTION_RIGHT)
	left.Instruction = NewTurnInstruction(ta.turnOrRamp(ctx, *left), DIRECTION_LEFT)
}
