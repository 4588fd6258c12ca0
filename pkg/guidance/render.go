package guidance

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
)

type Maneuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier,omitempty"`
}

// IsAnnounced. NoTurn dan Invalid tidak pernah dirender.
func IsAnnounced(ti TurnInstruction) bool {
	return ti.Type != TURN_NO_TURN && ti.Type != TURN_INVALID && !ti.IsInternal()
}

func maneuverType(t TurnType) string {
	switch t {
	case TURN_GO_STRAIGHT:
		return "continue"
	case TURN_TURN:
		return "turn"
	case TURN_UTURN:
		return "turn"
	case TURN_RAMP:
		return "on ramp"
	case TURN_CONTINUE:
		return "continue"
	case TURN_MERGE:
		return "merge"
	case TURN_FORK:
		return "fork"
	case TURN_END_OF_ROAD:
		return "end of road"
	case TURN_ENTER_ROUNDABOUT:
		return "roundabout"
	case TURN_STAY_ON_ROUNDABOUT:
		return "roundabout turn"
	case TURN_LEAVE_ROUNDABOUT:
		return "exit roundabout"
	case TURN_NAME_CHANGES:
		return "new name"
	case TURN_START_AT_END_OF_STREET:
		return "depart"
	case TURN_REACHED_YOUR_DESTINATION:
		return "arrive"
	case TURN_INVALID, TURN_NO_TURN, TURN_REACH_VIA_LOCATION,
		TURN_ACCESS_RESTRICTION_FLAG, TURN_ACCESS_RESTRICTION_PENALTY,
		TURN_ENTER_AGAINST_ALLOWED_DIRECTION, TURN_LEAVE_AGAINST_ALLOWED_DIRECTION:
		util.AssertPanic(false, fmt.Sprintf("turn type %q must not reach rendering", t.String()))
		return ""
	default:
		util.AssertPanic(false, fmt.Sprintf("unhandled turn type %d", uint8(t)))
		return ""
	}
}

// Render maps an announced instruction to its maneuver tokens. panics on instructions that must never leave the routing core.
func Render(ti TurnInstruction) Maneuver {
	m := Maneuver{Type: maneuverType(ti.Type)}
	switch ti.Type {
	case TURN_START_AT_END_OF_STREET, TURN_REACHED_YOUR_DESTINATION:
		// depart/arrive carry no modifier
	default:
		m.Modifier = ti.Modifier.String()
	}
	return m
}

// Describe. english only, one line per step.
func Describe(ti TurnInstruction, streetName string) string {
	m := Render(ti)
	onto := ""
	if streetName != "" {
		onto = " onto " + streetName
	}
	switch ti.Type {
	case TURN_START_AT_END_OF_STREET:
		if streetName == "" {
			return "Depart"
		}
		return "Depart on " + streetName
	case TURN_REACHED_YOUR_DESTINATION:
		return "You have arrived at your destination"
	case TURN_UTURN:
		return "Make a U-turn" + onto
	case TURN_ENTER_ROUNDABOUT:
		return "Enter the roundabout"
	case TURN_STAY_ON_ROUNDABOUT:
		return "Stay on the roundabout"
	case TURN_LEAVE_ROUNDABOUT:
		return "Exit the roundabout" + onto
	case TURN_NAME_CHANGES:
		if streetName == "" {
			return "Continue " + m.Modifier
		}
		return "Continue " + m.Modifier + " on " + streetName
	case TURN_GO_STRAIGHT, TURN_CONTINUE:
		return "Continue " + m.Modifier + onto
	case TURN_RAMP:
		return "Take the ramp on the " + m.Modifier + onto
	case TURN_MERGE:
		return "Merge " + m.Modifier + onto
	case TURN_FORK:
		return "Keep " + m.Modifier + " at the fork" + onto
	case TURN_END_OF_ROAD:
		return "At the end of the road turn " + m.Modifier + onto
	default:
		return "Turn " + m.Modifier + onto
	}
}
