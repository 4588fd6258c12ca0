package guidance

import "go.uber.org/zap"

/*
handleRoundabouts.

	on roundabout (viaEdge bagian dari ring):
	  kandidat di ring      -> StayOnRoundabout
	  kandidat keluar ring  -> LeaveRoundabout
	belum di roundabout tapi bisa masuk:
	  kandidat di ring      -> EnterRoundabout
	  kandidat lain         -> diklasifikasi seperti biasa

reverse arm selalu UTurn. kandidat yang sudah di-set di sini tidak disentuh lagi oleh stage berikutnya.
*/
func (ta *TurnAnalysis) handleRoundabouts(ctx *turnContext) {
	ctx.onRoundabout = ctx.inData.Roundabout
	for _, c := range ctx.candidates {
		if c.IsReverse() {
			continue
		}
		if ta.edgeData(c).Roundabout {
			ctx.canEnter = true
		} else {
			ctx.canExit = true
		}
	}

	if !ctx.onRoundabout && !ctx.canEnter {
		return
	}

	for i := range ctx.candidates {
		c := &ctx.candidates[i]
		if c.IsReverse() {
			c.Instruction = UTurn()
			continue
		}
		if !c.Valid {
			continue
		}
		dir := ta.direction(c.Angle)
		ring := ta.edgeData(*c).Roundabout
		switch {
		case ctx.onRoundabout && ring:
			c.Instruction = NewTurnInstruction(TURN_STAY_ON_ROUNDABOUT, dir)
		case ctx.onRoundabout:
			c.Instruction = NewTurnInstruction(TURN_LEAVE_ROUNDABOUT, dir)
		case ring:
			c.Instruction = NewTurnInstruction(TURN_ENTER_ROUNDABOUT, dir)
		}
	}

	if ctx.onRoundabout {
		ta.log.Debug("approach on roundabout",
			zap.Uint32("via_edge", uint32(ctx.viaEdge)), zap.Bool("can_exit", ctx.canExit))
	}
}

// isFixed. instruction already decided by the roundabout stage.
func (c TurnCandidate) isFixed() bool {
	return c.Instruction.IsRoundabout()
}
