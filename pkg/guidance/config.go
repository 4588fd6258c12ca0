package guidance

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/spf13/viper"
)

/*
sector boundaries, in degree (counter-clockwise angle, 180 = straight).

	         SHARP_LEFT
	  300 ------------------ 360/0 (u-turn)
	 LEFT                     SHARP_RIGHT
	  220                      60
	SLIGHT_LEFT              RIGHT
	  190 ---- STRAIGHT ---- 140
	           170  SLIGHT_RIGHT

a candidate exactly on a boundary belongs to the sector closer to straight.
*/
const (
	DEFAULT_UTURN_DEVIATION           = 0.0
	DEFAULT_SHARP_RIGHT_RIGHT         = 60.0
	DEFAULT_RIGHT_SLIGHT_RIGHT        = 140.0
	DEFAULT_SLIGHT_RIGHT_STRAIGHT     = 170.0
	DEFAULT_STRAIGHT_SLIGHT_LEFT      = 190.0
	DEFAULT_SLIGHT_LEFT_LEFT          = 220.0
	DEFAULT_LEFT_SHARP_LEFT           = 300.0
	DEFAULT_OBVIOUS_CONFIDENCE        = 0.9
	DEFAULT_DEGENERATE_ANGLE          = 1.0
	STRAIGHT_ANGLE                    = 180.0
	MAXIMAL_ALLOWED_NO_TURN_DEVIATION = 2.0
	NARROW_TURN_ANGLE                 = 35.0
	FUZZY_ANGLE_DIFFERENCE            = 15.0
	DISTINCTION_RATIO                 = 2.0
	KEEP_STRAIGHT_DEVIATION           = 5.0
	SEGREGATED_MERGE_ANGLE            = 60.0
	OBVIOUS_OF_TWO_RATIO              = 1.4
)

type Sectors struct {
	UTurnDeviation      float64 `mapstructure:"uturn_deviation"`
	SharpRightRight     float64 `mapstructure:"sharp_right_right"`
	RightSlightRight    float64 `mapstructure:"right_slight_right"`
	SlightRightStraight float64 `mapstructure:"slight_right_straight"`
	StraightSlightLeft  float64 `mapstructure:"straight_slight_left"`
	SlightLeftLeft      float64 `mapstructure:"slight_left_left"`
	LeftSharpLeft       float64 `mapstructure:"left_sharp_left"`
}

type Config struct {
	Sectors           Sectors `mapstructure:"sectors"`
	ObviousConfidence float64 `mapstructure:"obvious_confidence"`
	DegenerateAngle   float64 `mapstructure:"degenerate_angle"`
}

func DefaultConfig() Config {
	return Config{
		Sectors: Sectors{
			UTurnDeviation:      DEFAULT_UTURN_DEVIATION,
			SharpRightRight:     DEFAULT_SHARP_RIGHT_RIGHT,
			RightSlightRight:    DEFAULT_RIGHT_SLIGHT_RIGHT,
			SlightRightStraight: DEFAULT_SLIGHT_RIGHT_STRAIGHT,
			StraightSlightLeft:  DEFAULT_STRAIGHT_SLIGHT_LEFT,
			SlightLeftLeft:      DEFAULT_SLIGHT_LEFT_LEFT,
			LeftSharpLeft:       DEFAULT_LEFT_SHARP_LEFT,
		},
		ObviousConfidence: DEFAULT_OBVIOUS_CONFIDENCE,
		DegenerateAngle:   DEFAULT_DEGENERATE_ANGLE,
	}
}

func setViperDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("guidance.sectors.uturn_deviation", d.Sectors.UTurnDeviation)
	v.SetDefault("guidance.sectors.sharp_right_right", d.Sectors.SharpRightRight)
	v.SetDefault("guidance.sectors.right_slight_right", d.Sectors.RightSlightRight)
	v.SetDefault("guidance.sectors.slight_right_straight", d.Sectors.SlightRightStraight)
	v.SetDefault("guidance.sectors.straight_slight_left", d.Sectors.StraightSlightLeft)
	v.SetDefault("guidance.sectors.slight_left_left", d.Sectors.SlightLeftLeft)
	v.SetDefault("guidance.sectors.left_sharp_left", d.Sectors.LeftSharpLeft)
	v.SetDefault("guidance.obvious_confidence", d.ObviousConfidence)
	v.SetDefault("guidance.degenerate_angle", d.DegenerateAngle)
}

// NewConfigFromViper reads the "guidance" section, falling back to the defaults above.
func NewConfigFromViper(v *viper.Viper) (Config, error) {
	setViperDefaults(v)
	// Unmarshal (bukan UnmarshalKey) supaya default per key ikut ter-merge dengan nilai dari config file/env.
	var settings struct {
		Guidance Config `mapstructure:"guidance"`
	}
	if err := v.Unmarshal(&settings); err != nil {
		return Config{}, fmt.Errorf("unmarshal guidance config: %w", err)
	}
	if err := settings.Guidance.Validate(); err != nil {
		return Config{}, err
	}
	return settings.Guidance, nil
}

func (c Config) Validate() error {
	s := c.Sectors
	bounds := []float64{s.UTurnDeviation, s.SharpRightRight, s.RightSlightRight, s.SlightRightStraight,
		s.StraightSlightLeft, s.SlightLeftLeft, s.LeftSharpLeft, 360 - s.UTurnDeviation}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return util.WrapErrorf(nil, util.ErrBadParamInput,
				"guidance sectors must be strictly increasing, got %v", bounds)
		}
	}
	if s.UTurnDeviation < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "uturn deviation must not be negative")
	}
	if c.ObviousConfidence < 0 || c.ObviousConfidence > 1 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "obvious confidence must be in [0,1], got %f",
			c.ObviousConfidence)
	}
	return nil
}

// Direction maps an angle in [0,360) to its sector.
func (s Sectors) Direction(angle float64) DirectionModifier {
	switch {
	case angle <= s.UTurnDeviation || angle >= 360-s.UTurnDeviation:
		return DIRECTION_UTURN
	case angle < s.SharpRightRight:
		return DIRECTION_SHARP_RIGHT
	case angle < s.RightSlightRight:
		return DIRECTION_RIGHT
	case angle < s.SlightRightStraight:
		return DIRECTION_SLIGHT_RIGHT
	case angle <= s.StraightSlightLeft:
		return DIRECTION_STRAIGHT
	case angle <= s.SlightLeftLeft:
		return DIRECTION_SLIGHT_LEFT
	case angle <= s.LeftSharpLeft:
		return DIRECTION_LEFT
	default:
		return DIRECTION_SHARP_LEFT
	}
}

// bounds of the sector of modifier d, lo < hi.
func (s Sectors) bounds(d DirectionModifier) (float64, float64) {
	switch d {
	case DIRECTION_SHARP_RIGHT:
		return s.UTurnDeviation, s.SharpRightRight
	case DIRECTION_RIGHT:
		return s.SharpRightRight, s.RightSlightRight
	case DIRECTION_SLIGHT_RIGHT:
		return s.RightSlightRight, s.SlightRightStraight
	case DIRECTION_STRAIGHT:
		return s.SlightRightStraight, s.StraightSlightLeft
	case DIRECTION_SLIGHT_LEFT:
		return s.StraightSlightLeft, s.SlightLeftLeft
	case DIRECTION_LEFT:
		return s.SlightLeftLeft, s.LeftSharpLeft
	case DIRECTION_SHARP_LEFT:
		return s.LeftSharpLeft, 360 - s.UTurnDeviation
	default:
		return 0, 0
	}
}

/*
Confidence. jarak sudut ke boundary sector terdekat dibagi setengah lebar sector, in [0,1].
1 = tepat di tengah sector, 0 = tepat di boundary.
*/
func (s Sectors) Confidence(angle float64) float64 {
	d := s.Direction(angle)
	if d == DIRECTION_UTURN {
		return 1
	}
	lo, hi := s.bounds(d)
	halfWidth := (hi - lo) / 2
	if halfWidth <= 0 {
		return 0
	}
	dist := angle - lo
	if hi-angle < dist {
		dist = hi - angle
	}
	return util.Clamp(dist/halfWidth, 0, 1)
}
