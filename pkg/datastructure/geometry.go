package datastructure

// GeometryPointAdjacentTo. shape point yang paling dekat dengan salah satu ujung edge.
// atTarget = true: titik sebelum head, dipakai buat bearing approach.
// atTarget = false: titik setelah tail, dipakai buat bearing departure.
//
//	tail ---- p1 ---- p2 ---- head
//	          ^(false)  ^(true)
func (g *Graph) GeometryPointAdjacentTo(e Index, atTarget bool) Coordinate {
	points := g.graphStorage.GetEdgeGeometry(e)
	if len(points) < 2 {
		// edge without stored geometry, fall back to the opposite vertex
		if atTarget {
			return g.GetVertexCoordinate(g.outEdges[e].tail)
		}
		return g.GetVertexCoordinate(g.outEdges[e].head)
	}
	if atTarget {
		return points[len(points)-2]
	}
	return points[1]
}

func (g *Graph) GetEdgeGeometry(e Index) []Coordinate {
	return g.graphStorage.GetEdgeGeometry(e)
}
