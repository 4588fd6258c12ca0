package datastructure

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/geo"
)

// RoadAttributes. attribute satu arah dari road segment.
type RoadAttributes struct {
	Name       string
	RoadClass  pkg.FunctionalRoadClass
	TravelMode pkg.TravelMode
	Reversed   bool
	Roundabout bool
	OsmWayID   int64
}

type rawEdge struct {
	tail, head Index
	twin       int // index into builder.edges
	dist       float64
	info       EdgeExtraInfo
	roundabout bool
}

// GraphBuilder collects vertices and road segments and produces a CSR Graph.
type GraphBuilder struct {
	vertices []*Vertex
	edges    []rawEdge
	storage  *GraphStorage
	barriers []Index
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0),
		edges:    make([]rawEdge, 0),
		storage:  NewGraphStorage(),
	}
}

func (b *GraphBuilder) AddVertex(lat, lon float64, osmId int64) Index {
	id := Index(len(b.vertices))
	v := NewVertex(lat, lon, id)
	v.SetOsmId(osmId)
	b.vertices = append(b.vertices, v)
	return id
}

func (b *GraphBuilder) SetBarrier(u Index) {
	b.barriers = append(b.barriers, u)
}

func (b *GraphBuilder) NumberOfVertices() int {
	return len(b.vertices)
}

/*
AddRoad. tambah road segment tail -> head sebagai dua twin edge.
points = polyline dari tail ke head, termasuk kedua endpoint. kalau kosong pakai koordinat vertex.
forward = attribute edge tail->head, backward = attribute edge head->tail.
*/
func (b *GraphBuilder) AddRoad(tail, head Index, points []Coordinate, forward, backward RoadAttributes) {
	if len(points) < 2 {
		points = []Coordinate{
			NewCoordinate(b.vertices[tail].lat, b.vertices[tail].lon),
			NewCoordinate(b.vertices[head].lat, b.vertices[head].lon),
		}
	}

	dist := 0.0
	for i := 1; i < len(points); i++ {
		dist += geo.CalculateHaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}
	dist *= 1000

	start := Index(b.storage.GetGlobalPointsCount())
	b.storage.AppendGlobalPoints(points)
	end := Index(b.storage.GetGlobalPointsCount())

	fwdIdx := len(b.edges)
	bwdIdx := fwdIdx + 1

	b.edges = append(b.edges, rawEdge{
		tail: tail, head: head, twin: bwdIdx, dist: dist,
		info: NewEdgeExtraInfo(b.storage.tagStringIDMap.GetID(forward.Name), forward.RoadClass, forward.TravelMode,
			forward.Reversed, start, end, forward.OsmWayID),
		roundabout: forward.Roundabout,
	})
	b.edges = append(b.edges, rawEdge{
		tail: head, head: tail, twin: fwdIdx, dist: dist,
		info: NewEdgeExtraInfo(b.storage.tagStringIDMap.GetID(backward.Name), backward.RoadClass, backward.TravelMode,
			backward.Reversed, end, start, backward.OsmWayID),
		roundabout: backward.Roundabout,
	})
}

// Build sorts edges by tail (stable, so insertion order breaks ties) and assigns final edge ids.
func (b *GraphBuilder) Build() *Graph {
	order := make([]int, len(b.edges))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.edges[order[i]].tail < b.edges[order[j]].tail
	})

	newID := make([]Index, len(b.edges))
	for id, old := range order {
		newID[old] = Index(id)
	}

	outEdges := make([]*OutEdge, len(b.edges))
	mapEdgeInfo := make([]EdgeExtraInfo, len(b.edges))
	for id, old := range order {
		raw := b.edges[old]
		outEdges[id] = NewOutEdge(Index(id), raw.tail, raw.head, newID[raw.twin], raw.dist)
		mapEdgeInfo[id] = raw.info
		b.storage.SetRoundabout(Index(id), raw.roundabout)
	}
	for _, info := range mapEdgeInfo {
		b.storage.AppendMapEdgeInfo(info)
	}

	vertices := make([]*Vertex, len(b.vertices)+1)
	copy(vertices, b.vertices)
	vertices[len(b.vertices)] = NewVertex(0, 0, Index(len(b.vertices)))

	e := 0
	for u := 0; u <= len(b.vertices); u++ {
		vertices[u].SetFirstOut(Index(e))
		for e < len(outEdges) && int(outEdges[e].tail) == u {
			e++
		}
	}

	for _, u := range b.barriers {
		b.storage.SetBarrier(u)
	}

	return NewGraph(vertices, outEdges, b.storage)
}
