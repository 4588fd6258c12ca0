package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		ins  TurnInstruction
		want Maneuver
	}{
		{NewTurnInstruction(TURN_TURN, DIRECTION_LEFT), Maneuver{Type: "turn", Modifier: "left"}},
		{NewTurnInstruction(TURN_NAME_CHANGES, DIRECTION_STRAIGHT), Maneuver{Type: "new name", Modifier: "straight"}},
		{NewTurnInstruction(TURN_RAMP, DIRECTION_SLIGHT_RIGHT), Maneuver{Type: "on ramp", Modifier: "slight right"}},
		{NewTurnInstruction(TURN_END_OF_ROAD, DIRECTION_RIGHT), Maneuver{Type: "end of road", Modifier: "right"}},
		{UTurn(), Maneuver{Type: "turn", Modifier: "uturn"}},
		{Depart(), Maneuver{Type: "depart"}},
		{Arrive(), Maneuver{Type: "arrive"}},
	}

	for _, tt := range testCases {
		t.Run(tt.ins.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.ins))
		})
	}
}

func TestRenderPanicsOnInternalTypes(t *testing.T) {
	for _, typ := range []TurnType{
		TURN_INVALID, TURN_NO_TURN, TURN_REACH_VIA_LOCATION,
		TURN_ACCESS_RESTRICTION_FLAG, TURN_ACCESS_RESTRICTION_PENALTY,
		TURN_ENTER_AGAINST_ALLOWED_DIRECTION, TURN_LEAVE_AGAINST_ALLOWED_DIRECTION,
	} {
		ins := NewTurnInstruction(typ, DIRECTION_STRAIGHT)
		assert.False(t, IsAnnounced(ins))
		assert.Panics(t, func() { Render(ins) }, typ.String())
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Turn right onto Jalan Kaliurang",
		Describe(NewTurnInstruction(TURN_TURN, DIRECTION_RIGHT), "Jalan Kaliurang"))
	assert.Equal(t, "Depart on Jalan Utama", Describe(Depart(), "Jalan Utama"))
	assert.Equal(t, "Take the ramp on the slight right",
		Describe(NewTurnInstruction(TURN_RAMP, DIRECTION_SLIGHT_RIGHT), ""))
}
