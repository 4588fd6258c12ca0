package preprocessor

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnPenalty(t *testing.T) {
	pc := DefaultPenaltyConfig()

	testCases := []struct {
		name string
		c    guidance.TurnCandidate
		want float64
	}{
		{"invalid", guidance.TurnCandidate{Angle: 90, Valid: false}, pkg.INF_WEIGHT},
		{"straight", guidance.TurnCandidate{Angle: 180, Valid: true}, 0},
		{"right", guidance.TurnCandidate{Angle: 90, Valid: true}, DEFAULT_TURN_SECONDS / DEFAULT_TURN_BIAS},
		{"left", guidance.TurnCandidate{Angle: 270, Valid: true}, DEFAULT_TURN_SECONDS * DEFAULT_TURN_BIAS},
		{"uturn", guidance.TurnCandidate{Angle: 0, Valid: true, Instruction: guidance.UTurn()},
			4*DEFAULT_TURN_SECONDS/DEFAULT_TURN_BIAS + DEFAULT_UTURN_SECONDS},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pc.TurnPenalty(tt.c), 1e-9)
		})
	}

	// makin tajam makin mahal
	slight := pc.TurnPenalty(guidance.TurnCandidate{Angle: 160, Valid: true})
	sharp := pc.TurnPenalty(guidance.TurnCandidate{Angle: 40, Valid: true})
	assert.Less(t, slight, sharp)
}

func TestNewPenaltyConfigFromViper(t *testing.T) {
	v := viper.New()
	v.Set("penalty.turn_bias", 1.4)

	pc, err := NewPenaltyConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 1.4, pc.TurnBias)
	assert.Equal(t, DEFAULT_TURN_SECONDS, pc.TurnSeconds)
	assert.Equal(t, DEFAULT_UTURN_SECONDS, pc.UTurnSeconds)

	v.Set("penalty.turn_bias", 0)
	_, err = NewPenaltyConfigFromViper(v)
	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, util.ErrBadParamInput, uerr.Code())
}
