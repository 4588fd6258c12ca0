package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
	"go.uber.org/zap"
)

const (
	RESOLVE_TO_RIGHT = true
	RESOLVE_TO_LEFT  = false
)

func (ta *TurnAnalysis) optimizeCandidates(ctx *turnContext) {
	if ctx.onRoundabout || len(ctx.candidates) == 0 {
		return
	}
	ta.optimizeRamps(ctx)
	ta.suppressDegenerate(ctx)
	ta.resolveConflicts(ctx)
}

/*
optimizeRamps. ramp yang dipecah jadi acceleration lane + ramp sebenarnya:

	ramp ====> v ====> (nama sama, lurus)  -> NoTurn, cukup satu instruksi ramp
	            \
	             `---> ramp lain

ramp dengan modifier slight di-set ulang: kanan dari continuation = SlightRight, kiri = SlightLeft.
*/
func (ta *TurnAnalysis) optimizeRamps(ctx *turnContext) {
	candidates := ctx.candidates
	continueIdx := -1
	for i := range candidates {
		c := &candidates[i]
		if c.Instruction.IsUTurn() || !c.Valid || c.isFixed() {
			continue
		}
		if ta.edgeData(*c).NameID == ctx.inData.NameID {
			continueIdx = i
			if c.deviation() < NARROW_TURN_ANGLE && ctx.inData.RoadClass.IsRamp() {
				c.Instruction.Type = TURN_NO_TURN
			}
			break
		}
	}
	if continueIdx < 0 {
		return
	}

	toTheRight := true
	for i := range candidates {
		c := &candidates[i]
		if i == continueIdx {
			toTheRight = false
			continue
		}
		if c.Instruction.Type != TURN_RAMP || !c.Instruction.Modifier.IsSlight() {
			continue
		}
		if toTheRight {
			c.Instruction.Modifier = DIRECTION_SLIGHT_RIGHT
		} else {
			c.Instruction.Modifier = DIRECTION_SLIGHT_LEFT
		}
	}
}

// suppressDegenerate. two valid candidates of the same class at (almost) the same angle: the less confident one is not announced.
func (ta *TurnAnalysis) suppressDegenerate(ctx *turnContext) {
	candidates := ctx.candidates
	n := len(candidates)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		j := leftOf(i, n)
		if i == j {
			continue
		}
		a, b := &candidates[i], &candidates[j]
		if !a.Valid || !b.Valid || a.IsReverse() || b.IsReverse() || a.isFixed() || b.isFixed() {
			continue
		}
		if a.Instruction.Type == TURN_NO_TURN || b.Instruction.Type == TURN_NO_TURN {
			continue
		}
		if geo.AngularDeviation(a.Angle, b.Angle) >= ta.config.DegenerateAngle {
			continue
		}
		if ta.edgeData(*a).RoadClass != ta.edgeData(*b).RoadClass {
			continue
		}

		loser := b
		if a.Confidence < b.Confidence || (a.Confidence == b.Confidence && a.EdgeID > b.EdgeID) {
			loser = a
		}
		loser.Instruction.Type = TURN_NO_TURN
		ta.log.Debug("degenerate turn angles, identical road duplicated?",
			zap.Uint32("edge", uint32(a.EdgeID)), zap.Uint32("other_edge", uint32(b.EdgeID)),
			zap.Float64("angle", a.Angle))
	}
}

func keepStraight(angle float64) bool {
	return geo.AngularDeviation(angle, STRAIGHT_ANGLE) < KEEP_STRAIGHT_DEVIATION
}

/*
resolveConflicts. dua (atau lebih) tetangga dengan instruksi yang sama, misal dua "turn slight right":

	   c2  c1
	    \  |
	     \ |
	-----  v
	       ^ in

c1 digeser ke kanan (slight right -> right) atau c2 ke kiri, tergantung confidence.
*/
func (ta *TurnAnalysis) resolveConflicts(ctx *turnContext) {
	candidates := ctx.candidates
	n := len(candidates)
	getLeft := func(i int) int { return leftOf(i, n) }
	getRight := func(i int) int { return rightOf(i, n) }

	// beberapa u-turn (misal jalan kecil parkiran di samping jalan)
	if candidates[0].Instruction.IsUTurn() && candidates[0].IsReverse() && n > 1 {
		if l := &candidates[getLeft(0)]; l.Instruction.IsUTurn() && !l.IsReverse() {
			l.Instruction.Modifier = DIRECTION_SHARP_LEFT
		}
		if r := &candidates[getRight(0)]; r.Instruction.IsUTurn() && !r.IsReverse() {
			r.Instruction.Modifier = DIRECTION_SHARP_RIGHT
		}
	}

	for turnIndex := 0; turnIndex < n; turnIndex++ {
		turn := &candidates[turnIndex]
		if !turn.Instruction.IsBasic() || turn.Instruction.IsUTurn() || turn.isFixed() {
			continue
		}
		left := &candidates[getLeft(turnIndex)]
		if !isConflict(turn.Instruction, left.Instruction) {
			continue
		}

		conflictBegin := turnIndex
		conflictEnd := getLeft(turnIndex)
		conflictSize := 2
		for getLeft(conflictEnd) != conflictBegin &&
			isConflict(candidates[conflictEnd].Instruction, candidates[getLeft(conflictEnd)].Instruction) {
			conflictEnd = getLeft(conflictEnd)
			conflictSize++
		}
		if conflictEnd < conflictBegin {
			turnIndex = n
		} else {
			turnIndex = conflictEnd
		}

		leftOfEnd := &candidates[getLeft(conflictEnd)].Instruction
		rightOfBegin := &candidates[getRight(conflictBegin)].Instruction
		leftOfLeftOfEnd := candidates[getLeft(getLeft(conflictEnd))].Instruction
		rightOfRightOfBegin := candidates[getRight(getRight(conflictBegin))].Instruction
		atEnd := &candidates[conflictEnd]
		atBegin := &candidates[conflictBegin]

		if conflictSize == 2 {
			if turn.Instruction.Modifier == DIRECTION_STRAIGHT &&
				leftOfEnd.Modifier != DIRECTION_SLIGHT_LEFT && rightOfBegin.Modifier != DIRECTION_SLIGHT_RIGHT {
				// yang hampir lurus tetap straight, dihitung sebagai resolved.
				resolved := 0
				if keepStraight(atEnd.Angle) || resolve(&atEnd.Instruction, *leftOfEnd, RESOLVE_TO_LEFT) {
					resolved++
				}
				if keepStraight(atBegin.Angle) || resolve(&atBegin.Instruction, *rightOfBegin, RESOLVE_TO_RIGHT) {
					resolved++
				}
				if resolved >= 1 && (!keepStraight(atBegin.Angle) || !keepStraight(atEnd.Angle)) {
					continue
				}
			}

			if atBegin.Confidence < atEnd.Confidence {
				if resolve(&atBegin.Instruction, *rightOfBegin, RESOLVE_TO_RIGHT) ||
					resolve(&atEnd.Instruction, *leftOfEnd, RESOLVE_TO_LEFT) {
					continue
				}
			} else {
				if resolve(&atEnd.Instruction, *leftOfEnd, RESOLVE_TO_LEFT) ||
					resolve(&atBegin.Instruction, *rightOfBegin, RESOLVE_TO_RIGHT) {
					continue
				}
			}

			if turn.Instruction.IsSlightTurn() || turn.Instruction.IsSharpTurn() {
				m := turn.Instruction.Modifier
				if m == DIRECTION_SLIGHT_RIGHT || m == DIRECTION_SHARP_LEFT {
					resolveTransitive(&atBegin.Instruction, rightOfBegin, rightOfRightOfBegin, RESOLVE_TO_RIGHT)
				} else {
					resolveTransitive(&atEnd.Instruction, leftOfEnd, leftOfLeftOfEnd, RESOLVE_TO_LEFT)
				}
			}
			continue
		}

		if conflictSize > 3 {
			ta.log.Debug("conflict larger than three, resolving the outer turns only",
				zap.Uint32("node", uint32(ctx.turnNode)), zap.Int("size", conflictSize))
		}

		slight, sharp := turn.Instruction.IsSlightTurn(), turn.Instruction.IsSharpTurn()
		if !resolve(&atBegin.Instruction, *rightOfBegin, RESOLVE_TO_RIGHT) {
			if slight {
				resolveTransitive(&atBegin.Instruction, rightOfBegin, rightOfRightOfBegin, RESOLVE_TO_RIGHT)
			} else if sharp {
				resolveTransitive(&atEnd.Instruction, leftOfEnd, leftOfLeftOfEnd, RESOLVE_TO_LEFT)
			}
		}
		if !resolve(&atEnd.Instruction, *leftOfEnd, RESOLVE_TO_LEFT) {
			if slight {
				resolveTransitive(&atEnd.Instruction, leftOfEnd, leftOfLeftOfEnd, RESOLVE_TO_LEFT)
			} else if sharp {
				resolveTransitive(&atBegin.Instruction, rightOfBegin, rightOfRightOfBegin, RESOLVE_TO_RIGHT)
			}
		}
	}
}
