package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"go.uber.org/zap"
)

/*
handleMotorwayJunction. di junction motorway posisi kandidat dipakai apa adanya (termasuk yang tidak valid),
candidates[0] = reverse arm:

	from motorway:           from ramp:
	  [2] ===                  ====== [1]
	  in ===< ramp [1]         ramp >/
	                           ====== [2] (upstream, invalid)
*/
func (ta *TurnAnalysis) handleMotorwayJunction(ctx *turnContext) {
	if ctx.inData.RoadClass.IsMotorway() {
		ta.handleFromMotorway(ctx)
	} else {
		ta.handleMotorwayRamp(ctx)
	}
}

func (ta *TurnAnalysis) isMotorway(c TurnCandidate) bool {
	return ta.edgeData(c).RoadClass.IsMotorway()
}

// findContinue. kandidat motorway dengan nama yang sama dengan approach, atau motorway yang paling lurus.
func (ta *TurnAnalysis) findContinue(ctx *turnContext) int {
	candidates := ctx.candidates
	for i, c := range candidates {
		if c.IsReverse() || !c.Valid {
			continue
		}
		out := ta.edgeData(c)
		if out.NameID != pkg.INVALID_NAME_ID && out.NameID == ctx.inData.NameID && out.RoadClass.IsMotorway() {
			return i
		}
	}

	best, bestDeviation := -1, 180.0
	for i, c := range candidates {
		if c.IsReverse() || !c.Valid || !ta.isMotorway(c) {
			continue
		}
		if c.deviation() < bestDeviation {
			best, bestDeviation = i, c.deviation()
		}
	}
	return best
}

func (ta *TurnAnalysis) handleFromMotorway(ctx *turnContext) {
	candidates := ctx.candidates
	n := len(candidates)

	continueIdx := ta.findContinue(ctx)
	if continueIdx < 0 {
		switch {
		case n == 2:
			if candidates[1].Valid {
				candidates[1].Instruction = NoTurn(ta.direction(candidates[1].Angle))
			}
		case n == 3:
			if candidates[1].Valid && candidates[2].Valid {
				candidates[1].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_RIGHT)
				candidates[2].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_LEFT)
			} else {
				for i := 1; i < n; i++ {
					if candidates[i].Valid {
						candidates[i].Instruction = NoTurn(ta.direction(candidates[i].Angle))
					}
				}
			}
		default:
			ta.fallbackTurnAssignmentMotorway(ctx)
		}
		return
	}

	exitingMotorways := 0
	for _, c := range candidates {
		if c.Valid && !c.IsReverse() && ta.isMotorway(c) {
			exitingMotorways++
		}
	}

	switch {
	case exitingMotorways == 1:
		if n == 2 {
			candidates[1].Instruction = ta.noTurnOrNewName(ctx, candidates[1])
			return
		}
		continueAngle := candidates[continueIdx].Angle
		for i := range candidates {
			c := &candidates[i]
			if !c.Valid || c.IsReverse() {
				continue
			}
			switch {
			case i == continueIdx:
				c.Instruction = NoTurn(DIRECTION_STRAIGHT)
			case c.Angle < continueAngle:
				// exit di kanan
				dir := DIRECTION_SLIGHT_RIGHT
				if c.Angle < 145 {
					dir = DIRECTION_RIGHT
				}
				c.Instruction = NewTurnInstruction(TURN_RAMP, dir)
			default:
				dir := DIRECTION_SLIGHT_LEFT
				if c.Angle > 215 {
					dir = DIRECTION_LEFT
				}
				c.Instruction = NewTurnInstruction(TURN_RAMP, dir)
			}
		}
	case exitingMotorways == 2 && n == 3:
		// motorway split
		candidates[1].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_RIGHT)
		candidates[2].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_LEFT)
	default:
		ta.log.Debug("unhandled motorway junction, using fallback",
			zap.Uint32("via_edge", uint32(ctx.viaEdge)), zap.Int("exiting_motorways", exitingMotorways))
		ta.fallbackTurnAssignmentMotorway(ctx)
	}
}

func (ta *TurnAnalysis) handleMotorwayRamp(ctx *turnContext) {
	candidates := ctx.candidates
	n := len(candidates)

	switch {
	case n == 2:
		if candidates[1].Valid {
			candidates[1].Instruction = ta.noTurnOrNewName(ctx, candidates[1])
		}
	case n == 3 && candidates[1].Valid != candidates[2].Valid:
		// ramp masuk ke motorway
		if candidates[1].Valid {
			candidates[1].Instruction = ta.rampMerge(ctx, candidates[1], DIRECTION_SLIGHT_LEFT)
		} else {
			candidates[2].Instruction = ta.rampMerge(ctx, candidates[2], DIRECTION_SLIGHT_RIGHT)
		}
	case n == 3 && candidates[1].Valid && candidates[2].Valid:
		firstMotorway, secondMotorway := ta.isMotorway(candidates[1]), ta.isMotorway(candidates[2])
		switch {
		case firstMotorway && secondMotorway:
			candidates[1].Instruction = NewTurnInstruction(TURN_MERGE, DIRECTION_SLIGHT_RIGHT)
			candidates[2].Instruction = NewTurnInstruction(TURN_MERGE, DIRECTION_SLIGHT_LEFT)
		case firstMotorway:
			candidates[1].Instruction = NewTurnInstruction(TURN_MERGE, DIRECTION_SLIGHT_RIGHT)
			candidates[2].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_LEFT)
		case secondMotorway:
			candidates[1].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_RIGHT)
			candidates[2].Instruction = NewTurnInstruction(TURN_MERGE, DIRECTION_SLIGHT_LEFT)
		default:
			// ramp split
			candidates[1].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_RIGHT)
			candidates[2].Instruction = NewTurnInstruction(TURN_FORK, DIRECTION_SLIGHT_LEFT)
		}
	default:
		ta.fallbackTurnAssignmentMotorway(ctx)
	}
}

// rampMerge. modifier = arah pindah lajur waktu masuk motorway, bukan arah geometris.
func (ta *TurnAnalysis) rampMerge(ctx *turnContext, c TurnCandidate, slight DirectionModifier) TurnInstruction {
	if !ta.isMotorway(c) {
		return ta.noTurnOrNewName(ctx, c)
	}
	if c.deviation() < NARROW_TURN_ANGLE {
		return NewTurnInstruction(TURN_MERGE, slight)
	}
	return NewTurnInstruction(TURN_MERGE, ta.direction(c.Angle))
}

func (ta *TurnAnalysis) fallbackTurnAssignmentMotorway(ctx *turnContext) {
	for i := range ctx.candidates {
		c := &ctx.candidates[i]
		if !c.Valid || c.IsReverse() {
			continue
		}
		t := ta.turnOrRamp(ctx, *c)
		if t == TURN_TURN && ta.isMotorway(*c) {
			t = TURN_MERGE
		}
		switch {
		case c.deviation() < FUZZY_ANGLE_DIFFERENCE:
			c.Instruction = NewTurnInstruction(t, DIRECTION_STRAIGHT)
		case c.Angle > STRAIGHT_ANGLE:
			c.Instruction = NewTurnInstruction(t, DIRECTION_SLIGHT_LEFT)
		default:
			c.Instruction = NewTurnInstruction(t, DIRECTION_SLIGHT_RIGHT)
		}
	}
}
