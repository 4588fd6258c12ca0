package guidance

import "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"

// Graph. read-only view of the road graph, never mutated while turns are computed.
type Graph interface {
	ForOutEdgesOf(u datastructure.Index, handle func(e datastructure.Index, head datastructure.Index))
	GetOutDegree(u datastructure.Index) int
	GetTarget(e datastructure.Index) datastructure.Index
	GetSource(e datastructure.Index) datastructure.Index
	GetReverseEdge(e datastructure.Index) datastructure.Index
	GetEdgeData(e datastructure.Index) datastructure.EdgeData
	GetVertexCoordinate(u datastructure.Index) datastructure.Coordinate
}

type RestrictionMap interface {
	IsRestricted(via, fromEdge, toEdge datastructure.Index) bool
	OnlyTurn(via, fromEdge datastructure.Index) (datastructure.Index, bool)
}

type BarrierSet interface {
	IsBarrier(u datastructure.Index) bool
}

// GeometryResolver. shape point next to one end of an edge, so curved roads do not bias the turn angle.
type GeometryResolver interface {
	GeometryPointAdjacentTo(e datastructure.Index, atTarget bool) datastructure.Coordinate
}
