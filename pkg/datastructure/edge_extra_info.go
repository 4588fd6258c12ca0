package datastructure

import "github.com/lintang-b-s/navigatorx-guidance/pkg"

const (
	edgeFlagReversed uint8 = 1 << iota
	edgeFlagRestricted
)

type EdgeExtraInfo struct {
	startPointsIndex Index
	endPointsIndex   Index
	streetName       int
	roadClass        pkg.FunctionalRoadClass
	travelMode       pkg.TravelMode
	flags            uint8
	osmWayId         int64
}

func NewEdgeExtraInfo(streetName int, roadClass pkg.FunctionalRoadClass, travelMode pkg.TravelMode,
	reversed bool, startPointsIdx, endPointsIdx Index, osmWayId int64) EdgeExtraInfo {
	info := EdgeExtraInfo{
		streetName:       streetName,
		roadClass:        roadClass,
		travelMode:       travelMode,
		startPointsIndex: startPointsIdx,
		endPointsIndex:   endPointsIdx,
		osmWayId:         osmWayId,
	}
	if reversed {
		info.flags |= edgeFlagReversed
	}
	return info
}

func (e *EdgeExtraInfo) GetStreetName() int {
	return e.streetName
}

func (e *EdgeExtraInfo) GetOsmWayId() int64 {
	return e.osmWayId
}

func (e *EdgeExtraInfo) isReversed() bool {
	return e.flags&edgeFlagReversed != 0
}

func (e *EdgeExtraInfo) isRestricted() bool {
	return e.flags&edgeFlagRestricted != 0
}
