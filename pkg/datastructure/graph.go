package datastructure

import (
	"math"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
)

type Index uint32

const (
	INVALID_INDEX Index = math.MaxUint32
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id       Index
	osmId    int64
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) SetOsmId(osmId int64) {
	v.osmId = osmId
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

// OutEdge. directed edge tail -> head. every road segment is stored twice (one per direction),
// twin = the edge of the same segment in the opposite direction.
type OutEdge struct {
	dist   float64 // meter
	edgeId Index
	tail   Index
	head   Index
	twin   Index
}

func NewOutEdge(edgeId, tail, head, twin Index, dist float64) *OutEdge {
	return &OutEdge{
		edgeId: edgeId,
		tail:   tail,
		head:   head,
		twin:   twin,
		dist:   dist,
	}
}

// EdgeData. everything turn classification needs to know about one directed edge.
type EdgeData struct {
	NameID     uint32
	RoadClass  pkg.FunctionalRoadClass
	TravelMode pkg.TravelMode
	Reversed   bool // travelling along this edge goes against a oneway
	Roundabout bool
	Restricted bool // turn restrictions may apply when leaving this edge
	OsmWayID   int64
}

// Graph. compressed sparse row road graph. out edges of vertex u are outEdges[vertices[u].firstOut : vertices[u+1].firstOut].
// vertices has one dummy vertex at the end.
type Graph struct {
	vertices     []*Vertex
	outEdges     []*OutEdge
	graphStorage *GraphStorage
	boundingBox  *BoundingBox
}

func NewGraph(vertices []*Vertex, outEdges []*OutEdge, graphStorage *GraphStorage) *Graph {
	g := &Graph{vertices: vertices, outEdges: outEdges, graphStorage: graphStorage}
	g.computeBoundingBox()
	return g
}

func (g *Graph) computeBoundingBox() {
	minLat, minLon := math.MaxFloat64, math.MaxFloat64
	maxLat, maxLon := -math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < g.NumberOfVertices(); i++ {
		v := g.vertices[i]
		minLat = math.Min(minLat, v.lat)
		minLon = math.Min(minLon, v.lon)
		maxLat = math.Max(maxLat, v.lat)
		maxLon = math.Max(maxLon, v.lon)
	}
	g.boundingBox = NewBoundingBox(minLat, minLon, maxLat, maxLon)
}

func (g *Graph) NumberOfVertices() int {
	if len(g.vertices) == 0 {
		return 0
	}
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetOutDegree(u Index) int {
	return int(g.vertices[u+1].firstOut - g.vertices[u].firstOut)
}

func (g *Graph) GetTarget(e Index) Index {
	return g.outEdges[e].head
}

func (g *Graph) GetSource(e Index) Index {
	return g.outEdges[e].tail
}

// GetEdgeLength in meter.
func (g *Graph) GetEdgeLength(e Index) float64 {
	return g.outEdges[e].dist
}

func (g *Graph) GetReverseEdge(e Index) Index {
	return g.outEdges[e].twin
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e Index, head Index)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(e, g.outEdges[e].head)
	}
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.vertices[u].lat, g.vertices[u].lon
}

func (g *Graph) GetVertexCoordinate(u Index) Coordinate {
	return NewCoordinate(g.vertices[u].lat, g.vertices[u].lon)
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

func (g *Graph) GetEdgeData(e Index) EdgeData {
	info, roundabout := g.graphStorage.GetEdgeExtraInfo(e)
	return EdgeData{
		NameID:     uint32(info.streetName),
		RoadClass:  info.roadClass,
		TravelMode: info.travelMode,
		Reversed:   info.isReversed(),
		Roundabout: roundabout,
		Restricted: info.isRestricted(),
		OsmWayID:   info.osmWayId,
	}
}

func (g *Graph) IsRoundabout(e Index) bool {
	_, roundabout := g.graphStorage.GetEdgeExtraInfo(e)
	return roundabout
}

func (g *Graph) IsBarrier(u Index) bool {
	return g.graphStorage.GetBarrier(u)
}

func (g *Graph) GetStreetName(e Index) string {
	info, _ := g.graphStorage.GetEdgeExtraInfo(e)
	return g.graphStorage.GetName(info.streetName)
}

func (g *Graph) GetOsmWayId(e Index) int64 {
	info, _ := g.graphStorage.GetEdgeExtraInfo(e)
	return info.osmWayId
}

func (g *Graph) SetRestricted(e Index) {
	g.graphStorage.SetRestricted(e)
}

// FindEdge returns the first edge u -> v.
func (g *Graph) FindEdge(u, v Index) (Index, bool) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		if g.outEdges[e].head == v {
			return e, true
		}
	}
	return INVALID_INDEX, false
}
