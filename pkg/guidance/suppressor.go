package guidance

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
)

func (ta *TurnAnalysis) isLowPriority(c TurnCandidate) bool {
	return ta.edgeData(c).RoadClass.IsLowPriority()
}

// hasValidRatio. center jauh lebih lurus dibanding tetangga di sisi yang sama.
func hasValidRatio(left, center, right TurnCandidate) bool {
	angleLeft, angleRight := STRAIGHT_ANGLE, STRAIGHT_ANGLE
	if left.Angle > STRAIGHT_ANGLE {
		angleLeft = left.deviation()
	}
	if right.Angle < STRAIGHT_ANGLE {
		angleRight = right.deviation()
	}
	self := center.deviation()
	if self >= NARROW_TURN_ANGLE {
		return false
	}
	if center.Angle < STRAIGHT_ANGLE {
		return angleRight > self && angleLeft/self > DISTINCTION_RATIO
	}
	return angleLeft > self && angleRight/self > DISTINCTION_RATIO
}

/*
isObviousChoice. candidates[i] tidak perlu diumumkan kalau salah satu:
  - satu-satunya kandidat valid (selain putar balik)
  - satu-satunya jalan yang bukan low priority
  - hampir lurus (< 2 derajat)
  - satu-satunya lanjutan non-ramp dengan nama yang sama, dan tidak berbelok lebih dari 35 derajat
  - di sector straight, confidence tinggi, tidak ada kandidat valid lain dalam 35 derajat
  - tetangga kiri/kanan belok jauh lebih tajam (distinction ratio)
  - nama sama dan deviasi < 17.5 derajat
*/
func (ta *TurnAnalysis) isObviousChoice(ctx *turnContext, i int) bool {
	candidates := ctx.candidates
	n := len(candidates)
	c := candidates[i]
	if !c.Valid || c.IsReverse() || c.isFixed() {
		return false
	}
	in, out := ctx.inData, ta.edgeData(c)

	others := make([]TurnCandidate, 0, n)
	for j, o := range candidates {
		if j != i && o.Valid && !o.IsReverse() {
			others = append(others, o)
		}
	}
	if len(others) == 0 {
		return true
	}

	if !out.RoadClass.IsLowPriority() {
		onlyNormalRoad := true
		for _, o := range others {
			if !ta.isLowPriority(o) {
				onlyNormalRoad = false
				break
			}
		}
		if onlyNormalRoad {
			return true
		}
	}

	deviation := c.deviation()
	if deviation < MAXIMAL_ALLOWED_NO_TURN_DEVIATION {
		return true
	}

	sameName := out.NameID != pkg.INVALID_NAME_ID && out.NameID == in.NameID
	if sameName && !out.RoadClass.IsRamp() && deviation < NARROW_TURN_ANGLE {
		only := true
		for _, o := range others {
			od := ta.edgeData(o)
			if od.NameID == out.NameID && !od.RoadClass.IsRamp() {
				only = false
				break
			}
		}
		if only {
			return true
		}
	}

	if ta.direction(c.Angle) == DIRECTION_STRAIGHT && c.Confidence > ta.config.ObviousConfidence {
		competitor := false
		for _, o := range others {
			if geo.AngularDeviation(c.Angle, o.Angle) < NARROW_TURN_ANGLE {
				competitor = true
				break
			}
		}
		if !competitor {
			return true
		}
	}

	if n > 2 && hasValidRatio(candidates[leftOf(i, n)], c, candidates[rightOf(i, n)]) {
		return true
	}

	return sameName && deviation < NARROW_TURN_ANGLE/2
}

func (ta *TurnAnalysis) slightTowards(c *TurnCandidate, obviousAngle float64) {
	if c.Angle < obviousAngle {
		c.Instruction.Modifier = DIRECTION_SLIGHT_RIGHT
	} else {
		c.Instruction.Modifier = DIRECTION_SLIGHT_LEFT
	}
}

/*
suppressTurns. turunkan instruksi yang jelas (obvious) jadi NoTurn / NameChanges. validity dan angle tidak pernah diubah,
jadi turn penalty tetap dihitung dari geometri aslinya.
*/
func (ta *TurnAnalysis) suppressTurns(ctx *turnContext) {
	if ctx.onRoundabout || len(ctx.candidates) == 0 {
		return
	}
	candidates := ctx.candidates
	n := len(candidates)
	in := ctx.inData

	if ctx.arity == 3 && ta.suppressNextToLowPriority(ctx) {
		return
	}

	hasObviousWithSameName := false
	obviousWithSameNameAngle := 0.0
	for i, c := range candidates {
		if ta.edgeData(c).NameID == in.NameID && ta.isObviousChoice(ctx, i) {
			hasObviousWithSameName = true
			obviousWithSameNameAngle = c.Angle
			break
		}
	}

	for i := range candidates {
		c := &candidates[i]
		if !c.Instruction.IsBasic() || c.isFixed() {
			continue
		}
		out := ta.edgeData(*c)
		if out.NameID != pkg.INVALID_NAME_ID && out.NameID == in.NameID && !c.Instruction.IsUTurn() &&
			!hasObviousWithSameName {
			c.Instruction.Type = TURN_CONTINUE
		}

		if !c.Valid || c.Instruction.IsUTurn() {
			continue
		}

		// belokan sangat kecil jadi straight, kalau tetangganya bukan pilihan lurus/slight
		left, right := candidates[leftOf(i, n)], candidates[rightOf(i, n)]
		if (!ta.direction(left.Angle).IsSlight() || !left.Valid) &&
			(!ta.direction(right.Angle).IsSlight() || !right.Valid) &&
			c.deviation() < FUZZY_ANGLE_DIFFERENCE {
			c.Instruction.Modifier = DIRECTION_STRAIGHT
		}

		if in.TravelMode != out.TravelMode {
			// mode change selalu diumumkan
			continue
		}

		switch {
		case ta.isObviousChoice(ctx, i):
			switch {
			case in.NameID == out.NameID:
				c.Instruction.Type = TURN_NO_TURN
			case !hasObviousWithSameName:
				switch {
				case in.RoadClass.IsRamp() && !out.RoadClass.IsRamp():
					c.Instruction = NewTurnInstruction(TURN_MERGE, c.Instruction.Modifier.Mirror())
				case c.Instruction.Type == TURN_GO_STRAIGHT || c.Instruction.Type == TURN_NAME_CHANGES:
					c.Instruction.Type = TURN_NO_TURN
				case canBeSuppressed(c.Instruction.Type):
					c.Instruction.Type = TURN_NAME_CHANGES
				}
			default:
				ta.slightTowards(c, obviousWithSameNameAngle)
			}
		case c.Instruction.Modifier == DIRECTION_STRAIGHT && hasObviousWithSameName:
			ta.slightTowards(c, obviousWithSameNameAngle)
		}
	}
}

/*
suppressNextToLowPriority. dua pilihan, satu jalan biasa hampir lurus dan satu jalan kecil (service, track):

	service
	  \   main
	   \  |
	    \ |
	      v
	      ^ in

jalan biasa tidak perlu diumumkan.
*/
func (ta *TurnAnalysis) suppressNextToLowPriority(ctx *turnContext) bool {
	active := activeCandidates(ctx)
	if len(active) != 2 {
		return false
	}
	a, b := &ctx.candidates[active[0]], &ctx.candidates[active[1]]
	aLow, bLow := ta.isLowPriority(*a), ta.isLowPriority(*b)
	if aLow == bLow {
		return false
	}
	main := a
	if aLow {
		main = b
	}
	if main.deviation() >= NARROW_TURN_ANGLE || !main.Instruction.IsBasic() {
		return false
	}
	if ta.edgeData(*main).NameID == ctx.inData.NameID {
		main.Instruction.Type = TURN_NO_TURN
	} else {
		main.Instruction.Type = TURN_NAME_CHANGES
	}
	return true
}
