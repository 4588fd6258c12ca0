package datastructure

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
)

type GraphStorage struct {
	globalPoints []Coordinate

	/*
		32 bit -> 32 boolean flag for roundabout & barrier

		idx in flag array = floor(edgeID/32)
		idx in flag = edgeID % 32
	*/
	roundaboutFlag []uint32
	nodeBarrier    []uint32

	mapEdgeInfo []EdgeExtraInfo

	tagStringIDMap util.IDMap
}

func NewGraphStorage() *GraphStorage {
	return &GraphStorage{
		mapEdgeInfo:    make([]EdgeExtraInfo, 0),
		tagStringIDMap: util.NewIdMap(),
		roundaboutFlag: make([]uint32, 0),
		nodeBarrier:    make([]uint32, 0),
		globalPoints:   make([]Coordinate, 0),
	}
}

func BuildGraphStorage(globalPoints []Coordinate, roundaboutFlag []uint32, nodeBarrier []uint32,
	mapEdgeInfo []EdgeExtraInfo, tagStringIDMap util.IDMap) *GraphStorage {
	return &GraphStorage{globalPoints: globalPoints, roundaboutFlag: roundaboutFlag,
		nodeBarrier: nodeBarrier, mapEdgeInfo: mapEdgeInfo, tagStringIDMap: tagStringIDMap}
}

func setFlag(flags []uint32, id Index) []uint32 {
	index := int(id / 32)
	if len(flags) <= index {
		flags = append(flags, make([]uint32, index-len(flags)+1)...)
	}
	flags[index] |= 1 << (id % 32)
	return flags
}

func getFlag(flags []uint32, id Index) bool {
	index := int(id / 32)
	if index >= len(flags) {
		return false
	}
	return (flags[index] & (1 << (id % 32))) != 0
}

func (gs *GraphStorage) SetRoundabout(edgeID Index, isRoundabout bool) {
	if isRoundabout {
		gs.roundaboutFlag = setFlag(gs.roundaboutFlag, edgeID)
	}
}

func (gs *GraphStorage) SetBarrier(nodeID Index) {
	gs.nodeBarrier = setFlag(gs.nodeBarrier, nodeID)
}

func (gs *GraphStorage) GetBarrier(nodeID Index) bool {
	return getFlag(gs.nodeBarrier, nodeID)
}

func (gs *GraphStorage) SetRestricted(edgeID Index) {
	gs.mapEdgeInfo[edgeID].flags |= edgeFlagRestricted
}

func (gs *GraphStorage) GetName(nameID int) string {
	return gs.tagStringIDMap.GetStr(nameID)
}

// GetEdgeGeometry. shape points of the edge from tail to head, both endpoints included.
// twin edges share the same points, the reversed one has startPointsIndex > endPointsIndex.
func (gs *GraphStorage) GetEdgeGeometry(edgeID Index) []Coordinate {
	edge := gs.mapEdgeInfo[edgeID]
	startIndex := int(edge.startPointsIndex)
	endIndex := int(edge.endPointsIndex)
	if startIndex <= endIndex {
		return gs.globalPoints[startIndex:endIndex]
	}

	edgePoints := make([]Coordinate, 0, startIndex-endIndex)
	for i := startIndex - 1; i >= endIndex; i-- {
		edgePoints = append(edgePoints, gs.globalPoints[i])
	}

	return edgePoints
}

// return edgeExtraInfo, isRoundabout
func (gs *GraphStorage) GetEdgeExtraInfo(edgeID Index) (EdgeExtraInfo, bool) {
	return gs.mapEdgeInfo[edgeID], getFlag(gs.roundaboutFlag, edgeID)
}

func (gs *GraphStorage) AppendGlobalPoints(edgePoints []Coordinate) {
	gs.globalPoints = append(gs.globalPoints, edgePoints...)
}

func (gs *GraphStorage) AppendMapEdgeInfo(edgeInfo EdgeExtraInfo) {
	gs.mapEdgeInfo = append(gs.mapEdgeInfo, edgeInfo)
}

func (gs *GraphStorage) GetGlobalPointsCount() int {
	return len(gs.globalPoints)
}
