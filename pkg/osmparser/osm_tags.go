package osmparser

import (
	"strings"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/paulmach/osm"
)

type NodeType uint8

const (
	END_NODE NodeType = iota + 1
	BETWEEN_NODE
	JUNCTION_NODE
)

type RestrictionKind uint8

const (
	NO_LEFT_TURN RestrictionKind = iota
	NO_RIGHT_TURN
	NO_STRAIGHT_ON
	NO_U_TURN
	NO_ENTRY
	ONLY_LEFT_TURN
	ONLY_RIGHT_TURN
	ONLY_STRAIGHT_ON
	ONLY_U_TURN
	UNKNOWN_RESTRICTION
)

func (k RestrictionKind) IsOnly() bool {
	return k == ONLY_LEFT_TURN || k == ONLY_RIGHT_TURN || k == ONLY_STRAIGHT_ON || k == ONLY_U_TURN
}

// https://wiki.openstreetmap.org/wiki/Relation:restriction
func parseRestrictionKind(value string) RestrictionKind {
	switch value {
	case "no_left_turn":
		return NO_LEFT_TURN
	case "no_right_turn":
		return NO_RIGHT_TURN
	case "no_straight_on":
		return NO_STRAIGHT_ON
	case "no_u_turn":
		return NO_U_TURN
	case "no_entry", "no_exit":
		return NO_ENTRY
	case "only_left_turn":
		return ONLY_LEFT_TURN
	case "only_right_turn":
		return ONLY_RIGHT_TURN
	case "only_straight_on":
		return ONLY_STRAIGHT_ON
	case "only_u_turn":
		return ONLY_U_TURN
	default:
		return UNKNOWN_RESTRICTION
	}
}

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"service":        {},
		"road":           {},
		"track":          {},
		"unclassified":   {},
		"living_street":  {},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// barrier dengan access != no tetap bisa dilewati, contoh: portal FMIPA UGM yang cuma buka di jam tertentu
	// (https://www.openstreetmap.org/node/8837559088)
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}

	// dari yang paling umum ke yang paling spesifik. tag yang lebih spesifik menang.
	accessTagHierarchy = []string{"access", "vehicle", "motor_vehicle", "motorcar"}
)

func acceptOsmWay(way *osm.Way) bool {
	if way.Tags.Find("area") == "yes" {
		return false
	}
	if isFerry(way.Tags) {
		return true
	}
	_, ok := acceptedHighway[way.Tags.Find("highway")]
	return ok
}

func isFerry(tags osm.Tags) bool {
	return tags.Find("route") == "ferry"
}

func isRoundabout(tags osm.Tags) bool {
	junction := tags.Find("junction")
	return junction == "roundabout" || junction == "circular"
}

func isRestricted(value string) bool {
	return value == "no" || value == "private" || value == "restricted"
}

func isPermissive(value string) bool {
	switch value {
	case "yes", "designated", "permissive", "destination", "delivery", "customers", "official":
		return true
	}
	return false
}

// accessAllowed. nil kalau tidak ada tag access sama sekali.
func accessAllowed(tags osm.Tags) *bool {
	var allowed *bool
	for _, key := range accessTagHierarchy {
		val := tags.Find(key)
		switch {
		case isRestricted(val):
			no := false
			allowed = &no
		case isPermissive(val):
			yes := true
			allowed = &yes
		}
	}
	return allowed
}

func travelModeOf(tags osm.Tags) pkg.TravelMode {
	if allowed := accessAllowed(tags); allowed != nil && !*allowed {
		return pkg.TRAVEL_MODE_INACCESSIBLE
	}
	if isFerry(tags) {
		return pkg.TRAVEL_MODE_FERRY
	}
	return pkg.TRAVEL_MODE_DRIVING
}

func isBarrier(tags osm.Tags) bool {
	if _, ok := acceptedBarrierType[tags.Find("barrier")]; !ok {
		return false
	}
	allowed := accessAllowed(tags)
	return allowed == nil || !*allowed
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

type wayDirection struct {
	forward  bool
	backward bool
}

/*
directionOf. arah yang boleh dilewati di sepanjang way (forward = urutan node).
oneway=yes/true/1, oneway=-1, junction=roundabout dan motorway implisit oneway.
*/
func directionOf(way *osm.Way) wayDirection {
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	oneway := strings.ToLower(way.Tags.Find("oneway"))

	dir := wayDirection{forward: true, backward: true}
	switch oneway {
	case "yes", "true", "1":
		dir.backward = false
	case "-1", "reverse":
		dir.forward = false
	case "no", "false", "0":
	default:
		highway := way.Tags.Find("highway")
		if isRoundabout(way.Tags) || highway == "motorway" {
			dir.backward = false
		}
	}

	if okvf || okmvf {
		dir.forward = false
	}
	if okvb || okmvb {
		dir.backward = false
	}
	return dir
}

func streetName(tags osm.Tags) string {
	if name := tags.Find("name"); name != "" {
		return name
	}
	return tags.Find("ref")
}
