package guidance

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/stretchr/testify/assert"
)

func TestDirectionModifierShift(t *testing.T) {
	testCases := []struct {
		name    string
		d       DirectionModifier
		toRight bool
		want    DirectionModifier
	}{
		{"straight to right", DIRECTION_STRAIGHT, RESOLVE_TO_RIGHT, DIRECTION_SLIGHT_RIGHT},
		{"straight to left", DIRECTION_STRAIGHT, RESOLVE_TO_LEFT, DIRECTION_SLIGHT_LEFT},
		{"sharp right saturates", DIRECTION_SHARP_RIGHT, RESOLVE_TO_RIGHT, DIRECTION_SHARP_RIGHT},
		{"sharp left saturates", DIRECTION_SHARP_LEFT, RESOLVE_TO_LEFT, DIRECTION_SHARP_LEFT},
		{"uturn stays", DIRECTION_UTURN, RESOLVE_TO_LEFT, DIRECTION_UTURN},
		{"sharp left back to left", DIRECTION_SHARP_LEFT, RESOLVE_TO_RIGHT, DIRECTION_LEFT},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Shift(tt.toRight))
		})
	}
}

func TestDirectionModifierMirror(t *testing.T) {
	for d := DIRECTION_UTURN; d <= DIRECTION_SHARP_LEFT; d++ {
		assert.Equal(t, d, d.Mirror().Mirror())
	}
	assert.Equal(t, DIRECTION_SLIGHT_LEFT, DIRECTION_SLIGHT_RIGHT.Mirror())
	assert.Equal(t, DIRECTION_STRAIGHT, DIRECTION_STRAIGHT.Mirror())
}

func TestResolve(t *testing.T) {
	ins := NewTurnInstruction(TURN_TURN, DIRECTION_SLIGHT_RIGHT)
	neighbour := NewTurnInstruction(TURN_TURN, DIRECTION_SLIGHT_RIGHT)
	assert.True(t, isConflict(ins, neighbour))

	assert.True(t, resolve(&ins, NewTurnInstruction(TURN_TURN, DIRECTION_SHARP_RIGHT), RESOLVE_TO_RIGHT))
	assert.Equal(t, DIRECTION_RIGHT, ins.Modifier)

	// geser ke modifier tetangga = gagal
	ins = NewTurnInstruction(TURN_TURN, DIRECTION_SLIGHT_RIGHT)
	assert.False(t, resolve(&ins, NewTurnInstruction(TURN_TURN, DIRECTION_RIGHT), RESOLVE_TO_RIGHT))
	assert.Equal(t, DIRECTION_SLIGHT_RIGHT, ins.Modifier)

	second := NewTurnInstruction(TURN_TURN, DIRECTION_RIGHT)
	assert.True(t, resolveTransitive(&ins, &second, NewTurnInstruction(TURN_UTURN, DIRECTION_UTURN), RESOLVE_TO_RIGHT))
	assert.Equal(t, DIRECTION_SHARP_RIGHT, second.Modifier)
	assert.Equal(t, DIRECTION_RIGHT, ins.Modifier)
}

func TestIsConflictStraight(t *testing.T) {
	assert.True(t, isConflict(NewTurnInstruction(TURN_GO_STRAIGHT, DIRECTION_STRAIGHT),
		NewTurnInstruction(TURN_NAME_CHANGES, DIRECTION_STRAIGHT)))
	assert.False(t, isConflict(NewTurnInstruction(TURN_RAMP, DIRECTION_STRAIGHT),
		NewTurnInstruction(TURN_GO_STRAIGHT, DIRECTION_STRAIGHT)))
}

func TestResolveConflictsTwoSlightRights(t *testing.T) {
	f := newJunctionFixture()
	south := f.twoWay(180, road("Jalan Gejayan", pkg.RESIDENTIAL))
	outer := f.twoWay(bearingForAngle(145), road("Jalan Selokan", pkg.RESIDENTIAL))
	inner := f.twoWay(bearingForAngle(160), road("Jalan Colombo", pkg.RESIDENTIAL))
	f.twoWay(bearingForAngle(270), road("Jalan Kaliurang", pkg.RESIDENTIAL))
	f.twoWay(bearingForAngle(90), road("Jalan Affandi", pkg.RESIDENTIAL))
	f.build()
	ta := f.analysis(t)

	turns := ta.ComputeTurns(south, f.edge(t, south, f.center))
	outerIns := candidateFor(t, turns, f.edge(t, f.center, outer)).Instruction
	innerIns := candidateFor(t, turns, f.edge(t, f.center, inner)).Instruction
	assert.NotEqual(t, outerIns, innerIns)
}
