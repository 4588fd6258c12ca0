package preprocessor

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/spf13/viper"
)

const (
	DEFAULT_TURN_SECONDS  = 7.5
	DEFAULT_TURN_BIAS     = 1.075
	DEFAULT_UTURN_SECONDS = 20.0
)

type PenaltyConfig struct {
	TurnSeconds  float64 `mapstructure:"turn_seconds"`  // penalty belokan 90 derajat sebelum bias
	TurnBias     float64 `mapstructure:"turn_bias"`     // > 1: belok kanan lebih murah dari belok kiri
	UTurnSeconds float64 `mapstructure:"uturn_seconds"` // tambahan untuk putar balik
}

func DefaultPenaltyConfig() PenaltyConfig {
	return PenaltyConfig{
		TurnSeconds:  DEFAULT_TURN_SECONDS,
		TurnBias:     DEFAULT_TURN_BIAS,
		UTurnSeconds: DEFAULT_UTURN_SECONDS,
	}
}

func NewPenaltyConfigFromViper(v *viper.Viper) (PenaltyConfig, error) {
	v.SetDefault("penalty.turn_seconds", DEFAULT_TURN_SECONDS)
	v.SetDefault("penalty.turn_bias", DEFAULT_TURN_BIAS)
	v.SetDefault("penalty.uturn_seconds", DEFAULT_UTURN_SECONDS)

	var settings struct {
		Penalty PenaltyConfig `mapstructure:"penalty"`
	}
	if err := v.Unmarshal(&settings); err != nil {
		return PenaltyConfig{}, fmt.Errorf("unmarshal penalty config: %w", err)
	}
	if err := settings.Penalty.Validate(); err != nil {
		return PenaltyConfig{}, err
	}
	return settings.Penalty, nil
}

func (pc PenaltyConfig) Validate() error {
	if pc.TurnSeconds < 0 || pc.UTurnSeconds < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "turn penalties must not be negative")
	}
	if pc.TurnBias <= 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "turn bias must be positive, got %f", pc.TurnBias)
	}
	return nil
}

/*
TurnPenalty. kuadratik terhadap deviasi dari lurus, dalam detik:

	dev = 180 - angle          (dev > 0 belok kanan, dev < 0 belok kiri)
	penalty = dev^2 * TurnSeconds / 90^2 / TurnBias   kalau dev >= 0
	penalty = dev^2 * TurnSeconds / 90^2 * TurnBias   kalau dev < 0

putar balik ditambah UTurnSeconds. kandidat yang tidak valid = pkg.INF_WEIGHT.
*/
func (pc PenaltyConfig) TurnPenalty(c guidance.TurnCandidate) float64 {
	if !c.Valid {
		return pkg.INF_WEIGHT
	}

	dev := guidance.STRAIGHT_ANGLE - c.Angle
	k := pc.TurnSeconds / (90.0 * 90.0)
	penalty := dev * dev * k
	if dev >= 0 {
		penalty /= pc.TurnBias
	} else {
		penalty *= pc.TurnBias
	}

	if c.Instruction.IsUTurn() {
		penalty += pc.UTurnSeconds
	}
	return penalty
}
