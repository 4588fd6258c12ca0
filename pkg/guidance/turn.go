package guidance

import "fmt"

type TurnType uint8

const (
	TURN_INVALID TurnType = iota // unset, or the candidate is not passable
	TURN_NO_TURN                 // nothing to announce
	TURN_GO_STRAIGHT
	TURN_TURN
	TURN_UTURN
	TURN_RAMP
	TURN_CONTINUE // stay on the same named road through a turn
	TURN_MERGE
	TURN_FORK
	TURN_END_OF_ROAD
	TURN_ENTER_ROUNDABOUT
	TURN_STAY_ON_ROUNDABOUT
	TURN_LEAVE_ROUNDABOUT
	TURN_NAME_CHANGES
	TURN_START_AT_END_OF_STREET
	TURN_REACHED_YOUR_DESTINATION
	TURN_REACH_VIA_LOCATION

	// internal only, must never reach rendering
	TURN_ACCESS_RESTRICTION_FLAG
	TURN_ACCESS_RESTRICTION_PENALTY
	TURN_ENTER_AGAINST_ALLOWED_DIRECTION
	TURN_LEAVE_AGAINST_ALLOWED_DIRECTION
)

func (t TurnType) String() string {
	switch t {
	case TURN_INVALID:
		return "invalid"
	case TURN_NO_TURN:
		return "no turn"
	case TURN_GO_STRAIGHT:
		return "go straight"
	case TURN_TURN:
		return "turn"
	case TURN_UTURN:
		return "uturn"
	case TURN_RAMP:
		return "ramp"
	case TURN_CONTINUE:
		return "continue"
	case TURN_MERGE:
		return "merge"
	case TURN_FORK:
		return "fork"
	case TURN_END_OF_ROAD:
		return "end of road"
	case TURN_ENTER_ROUNDABOUT:
		return "enter roundabout"
	case TURN_STAY_ON_ROUNDABOUT:
		return "stay on roundabout"
	case TURN_LEAVE_ROUNDABOUT:
		return "leave roundabout"
	case TURN_NAME_CHANGES:
		return "name changes"
	case TURN_START_AT_END_OF_STREET:
		return "depart"
	case TURN_REACHED_YOUR_DESTINATION:
		return "arrive"
	case TURN_REACH_VIA_LOCATION:
		return "reach via location"
	case TURN_ACCESS_RESTRICTION_FLAG:
		return "access restriction flag"
	case TURN_ACCESS_RESTRICTION_PENALTY:
		return "access restriction penalty"
	case TURN_ENTER_AGAINST_ALLOWED_DIRECTION:
		return "enter against allowed direction"
	case TURN_LEAVE_AGAINST_ALLOWED_DIRECTION:
		return "leave against allowed direction"
	default:
		return fmt.Sprintf("turn type(%d)", uint8(t))
	}
}

// DirectionModifier. urut dari kanan ke kiri (clockwise -> counter-clockwise), sama seperti urutan sudut kandidat.
type DirectionModifier uint8

const (
	DIRECTION_UTURN DirectionModifier = iota
	DIRECTION_SHARP_RIGHT
	DIRECTION_RIGHT
	DIRECTION_SLIGHT_RIGHT
	DIRECTION_STRAIGHT
	DIRECTION_SLIGHT_LEFT
	DIRECTION_LEFT
	DIRECTION_SHARP_LEFT
)

func (d DirectionModifier) String() string {
	switch d {
	case DIRECTION_UTURN:
		return "uturn"
	case DIRECTION_SHARP_RIGHT:
		return "sharp right"
	case DIRECTION_RIGHT:
		return "right"
	case DIRECTION_SLIGHT_RIGHT:
		return "slight right"
	case DIRECTION_STRAIGHT:
		return "straight"
	case DIRECTION_SLIGHT_LEFT:
		return "slight left"
	case DIRECTION_LEFT:
		return "left"
	case DIRECTION_SHARP_LEFT:
		return "sharp left"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Mirror swaps left and right.
func (d DirectionModifier) Mirror() DirectionModifier {
	switch d {
	case DIRECTION_SHARP_RIGHT:
		return DIRECTION_SHARP_LEFT
	case DIRECTION_RIGHT:
		return DIRECTION_LEFT
	case DIRECTION_SLIGHT_RIGHT:
		return DIRECTION_SLIGHT_LEFT
	case DIRECTION_SLIGHT_LEFT:
		return DIRECTION_SLIGHT_RIGHT
	case DIRECTION_LEFT:
		return DIRECTION_RIGHT
	case DIRECTION_SHARP_LEFT:
		return DIRECTION_SHARP_RIGHT
	default:
		return d
	}
}

// Shift moves the modifier one sector clockwise (toRight) or counter-clockwise. saturates at
// SharpRight and SharpLeft, a shift never produces UTurn.
func (d DirectionModifier) Shift(toRight bool) DirectionModifier {
	if d == DIRECTION_UTURN {
		return d
	}
	if toRight {
		if d == DIRECTION_SHARP_RIGHT {
			return d
		}
		return d - 1
	}
	if d == DIRECTION_SHARP_LEFT {
		return d
	}
	return d + 1
}

func (d DirectionModifier) IsSlight() bool {
	return d == DIRECTION_SLIGHT_RIGHT || d == DIRECTION_SLIGHT_LEFT || d == DIRECTION_STRAIGHT
}

func (d DirectionModifier) IsSharp() bool {
	return d == DIRECTION_SHARP_RIGHT || d == DIRECTION_SHARP_LEFT
}

type TurnInstruction struct {
	Type     TurnType          `json:"type"`
	Modifier DirectionModifier `json:"modifier"`
}

func NewTurnInstruction(t TurnType, d DirectionModifier) TurnInstruction {
	return TurnInstruction{Type: t, Modifier: d}
}

func NoTurn(d DirectionModifier) TurnInstruction {
	return TurnInstruction{Type: TURN_NO_TURN, Modifier: d}
}

func UTurn() TurnInstruction {
	return TurnInstruction{Type: TURN_UTURN, Modifier: DIRECTION_UTURN}
}

// Depart and Arrive are assigned by route assembly, never by the junction pipeline.
func Depart() TurnInstruction {
	return TurnInstruction{Type: TURN_START_AT_END_OF_STREET, Modifier: DIRECTION_STRAIGHT}
}

func Arrive() TurnInstruction {
	return TurnInstruction{Type: TURN_REACHED_YOUR_DESTINATION, Modifier: DIRECTION_STRAIGHT}
}

func (ti TurnInstruction) String() string {
	return ti.Type.String() + " " + ti.Modifier.String()
}

func (ti TurnInstruction) IsUTurn() bool {
	return ti.Modifier == DIRECTION_UTURN
}

// IsBasic. instruction yang masih boleh diubah oleh optimizer/suppressor.
func (ti TurnInstruction) IsBasic() bool {
	switch ti.Type {
	case TURN_TURN, TURN_END_OF_ROAD, TURN_GO_STRAIGHT, TURN_NAME_CHANGES, TURN_CONTINUE:
		return true
	default:
		return false
	}
}

func (ti TurnInstruction) IsRoundabout() bool {
	switch ti.Type {
	case TURN_ENTER_ROUNDABOUT, TURN_STAY_ON_ROUNDABOUT, TURN_LEAVE_ROUNDABOUT:
		return true
	default:
		return false
	}
}

func (ti TurnInstruction) IsSlightTurn() bool {
	return ti.IsBasic() && (ti.Modifier == DIRECTION_SLIGHT_RIGHT || ti.Modifier == DIRECTION_SLIGHT_LEFT)
}

func (ti TurnInstruction) IsSharpTurn() bool {
	return ti.IsBasic() && ti.Modifier.IsSharp()
}

func (ti TurnInstruction) IsStraight() bool {
	return ti.IsBasic() && ti.Modifier == DIRECTION_STRAIGHT
}

// IsInternal. restriction markers (and ReachViaLocation) never leave the routing core.
func (ti TurnInstruction) IsInternal() bool {
	switch ti.Type {
	case TURN_ACCESS_RESTRICTION_FLAG, TURN_ACCESS_RESTRICTION_PENALTY,
		TURN_ENTER_AGAINST_ALLOWED_DIRECTION, TURN_LEAVE_AGAINST_ALLOWED_DIRECTION,
		TURN_REACH_VIA_LOCATION:
		return true
	default:
		return false
	}
}

func canBeSuppressed(t TurnType) bool {
	return t == TURN_TURN
}

// isConflict. two neighbouring instructions that would be announced the same way.
func isConflict(first, second TurnInstruction) bool {
	return (first.Type == second.Type && first.Modifier == second.Modifier) ||
		(first.IsStraight() && second.IsStraight())
}

// resolve shifts instruction one sector away from its neighbour. fails when the shift is not possible
// or would collide with the neighbour's modifier.
func resolve(instruction *TurnInstruction, neighbour TurnInstruction, toRight bool) bool {
	shifted := instruction.Modifier.Shift(toRight)
	if shifted == instruction.Modifier || shifted == neighbour.Modifier {
		return false
	}
	instruction.Modifier = shifted
	return true
}

// resolveTransitive makes room by shifting the neighbour first.
func resolveTransitive(first, second *TurnInstruction, third TurnInstruction, toRight bool) bool {
	if resolve(second, third, toRight) {
		return resolve(first, *second, toRight)
	}
	return false
}
