package pkg

import "go.uber.org/zap"

const (
	INF_WEIGHT float64 = 1e15

	// INVALID_NAME_ID is the name id of unnamed roads. two unnamed roads never share a name.
	INVALID_NAME_ID uint32 = 0
)

const (
	DEBUG = false
)

type FunctionalRoadClass uint8

// ordered from most to least important. LOW_PRIORITY_ROAD = road yang cuma ada buat connectivity
const (
	UNKNOWN FunctionalRoadClass = iota
	MOTORWAY
	MOTORWAY_LINK
	TRUNK
	TRUNK_LINK
	PRIMARY
	PRIMARY_LINK
	SECONDARY
	SECONDARY_LINK
	TERTIARY
	TERTIARY_LINK
	UNCLASSIFIED
	RESIDENTIAL
	SERVICE
	LIVING_STREET
	LOW_PRIORITY_ROAD
)

var roadClassNames = [...]string{
	UNKNOWN:           "unknown",
	MOTORWAY:          "motorway",
	MOTORWAY_LINK:     "motorway_link",
	TRUNK:             "trunk",
	TRUNK_LINK:        "trunk_link",
	PRIMARY:           "primary",
	PRIMARY_LINK:      "primary_link",
	SECONDARY:         "secondary",
	SECONDARY_LINK:    "secondary_link",
	TERTIARY:          "tertiary",
	TERTIARY_LINK:     "tertiary_link",
	UNCLASSIFIED:      "unclassified",
	RESIDENTIAL:       "residential",
	SERVICE:           "service",
	LIVING_STREET:     "living_street",
	LOW_PRIORITY_ROAD: "low_priority",
}

func (c FunctionalRoadClass) String() string {
	if int(c) < len(roadClassNames) {
		return roadClassNames[c]
	}
	return "unknown"
}

// FunctionalRoadClassFromTag. map osm highway tag value ke FunctionalRoadClass.
// https://wiki.openstreetmap.org/wiki/Key:highway
func FunctionalRoadClassFromTag(value string, log *zap.Logger) FunctionalRoadClass {
	switch value {
	case "motorway":
		return MOTORWAY
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk":
		return TRUNK
	case "trunk_link":
		return TRUNK_LINK
	case "primary":
		return PRIMARY
	case "primary_link":
		return PRIMARY_LINK
	case "secondary":
		return SECONDARY
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary":
		return TERTIARY
	case "tertiary_link":
		return TERTIARY_LINK
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "living_street":
		return LIVING_STREET
	case "track", "road", "path", "driveway":
		return LOW_PRIORITY_ROAD
	default:
		if log != nil {
			log.Debug("unknown road class encountered", zap.String("highway", value))
		}
		return UNKNOWN
	}
}

// IsRamp. primary_link and below are too small to be announced as ramps.
func (c FunctionalRoadClass) IsRamp() bool {
	return c == MOTORWAY_LINK || c == TRUNK_LINK
}

func (c FunctionalRoadClass) IsMotorway() bool {
	return c == MOTORWAY || c == TRUNK
}

func (c FunctionalRoadClass) IsLowPriority() bool {
	return c == LOW_PRIORITY_ROAD || c == SERVICE
}

type TravelMode uint8

const (
	TRAVEL_MODE_INACCESSIBLE TravelMode = iota
	TRAVEL_MODE_DRIVING
	TRAVEL_MODE_CYCLING
	TRAVEL_MODE_WALKING
	TRAVEL_MODE_FERRY
	TRAVEL_MODE_TRAIN
	TRAVEL_MODE_PUSHING_BIKE
	TRAVEL_MODE_MOVABLE_BRIDGE
	TRAVEL_MODE_STEPS_UP
	TRAVEL_MODE_STEPS_DOWN
	TRAVEL_MODE_RIVER_UP
	TRAVEL_MODE_RIVER_DOWN
	TRAVEL_MODE_ROUTE
)

func (m TravelMode) String() string {
	switch m {
	case TRAVEL_MODE_INACCESSIBLE:
		return "inaccessible"
	case TRAVEL_MODE_DRIVING:
		return "driving"
	case TRAVEL_MODE_CYCLING:
		return "cycling"
	case TRAVEL_MODE_WALKING:
		return "walking"
	case TRAVEL_MODE_FERRY:
		return "ferry"
	case TRAVEL_MODE_TRAIN:
		return "train"
	case TRAVEL_MODE_PUSHING_BIKE:
		return "pushing bike"
	case TRAVEL_MODE_MOVABLE_BRIDGE:
		return "movable bridge"
	case TRAVEL_MODE_STEPS_UP:
		return "steps up"
	case TRAVEL_MODE_STEPS_DOWN:
		return "steps down"
	case TRAVEL_MODE_RIVER_UP:
		return "river upstream"
	case TRAVEL_MODE_RIVER_DOWN:
		return "river downstream"
	case TRAVEL_MODE_ROUTE:
		return "route"
	default:
		return "other"
	}
}
