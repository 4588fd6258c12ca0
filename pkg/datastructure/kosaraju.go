package datastructure

import (
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
)

// SCCResult. hasil kosaraju: componentOf[u] = id komponen vertex u. komponen diurutkan menurut urutan ditemukan.
type SCCResult struct {
	componentOf []Index
	sizes       []int
}

func (r *SCCResult) NumberOfComponents() int {
	return len(r.sizes)
}

func (r *SCCResult) ComponentOf(u Index) Index {
	return r.componentOf[u]
}

func (r *SCCResult) ComponentSize(c Index) int {
	return r.sizes[c]
}

// LargestComponent returns the id of the biggest component, the smallest id on ties.
func (r *SCCResult) LargestComponent() Index {
	best := INVALID_INDEX
	bestSize := -1
	for c, size := range r.sizes {
		if size > bestSize {
			best, bestSize = Index(c), size
		}
	}
	return best
}

// InLargestComponent reports whether both endpoints of e sit in the biggest component.
func (r *SCCResult) InLargestComponent(g *Graph, e Index) bool {
	if len(r.sizes) == 0 {
		return false
	}
	largest := r.LargestComponent()
	return r.componentOf[g.GetSource(e)] == largest && r.componentOf[g.GetTarget(e)] == largest
}

// isDrivable. edge yang boleh dilewati: tidak melawan oneway dan bukan akses privat.
func (g *Graph) isDrivable(e Index) bool {
	data := g.GetEdgeData(e)
	return !data.Reversed && data.TravelMode != pkg.TRAVEL_MODE_INACCESSIBLE
}

/*
StronglyConnectedComponents. kosaraju di node-based graph, hanya lewat edge yang drivable.
turn restriction tidak diperhitungkan, jadi komponennya bisa sedikit lebih besar dari yang sebenarnya reachable.

dfs dibuat iteratif karena road network bisa punya jutaan vertex.
*/
func (g *Graph) StronglyConnectedComponents() *SCCResult {
	n := g.NumberOfVertices()

	// adjacency terbalik: inEdges[v] = tail dari edge drivable yang masuk v
	inEdges := make([][]Index, n)
	for e := Index(0); e < Index(g.NumberOfEdges()); e++ {
		if !g.isDrivable(e) {
			continue
		}
		inEdges[g.GetTarget(e)] = append(inEdges[g.GetTarget(e)], g.GetSource(e))
	}

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for s := Index(0); s < Index(n); s++ {
		if !visited[s] {
			g.forwardDfs(s, visited, &order)
		}
	}
	order = util.ReverseG[Index](order)

	componentOf := make([]Index, n)
	for i := range componentOf {
		componentOf[i] = INVALID_INDEX
	}
	sizes := make([]int, 0)

	stack := make([]Index, 0)
	for _, s := range order {
		if componentOf[s] != INVALID_INDEX {
			continue
		}
		c := Index(len(sizes))
		size := 0
		componentOf[s] = c
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			for _, u := range inEdges[v] {
				if componentOf[u] == INVALID_INDEX {
					componentOf[u] = c
					stack = append(stack, u)
				}
			}
		}
		sizes = append(sizes, size)
	}

	return &SCCResult{componentOf: componentOf, sizes: sizes}
}

type dfsFrame struct {
	v    Index
	next Index // edge berikutnya yang belum dicek
}

// forwardDfs appends vertices to order in post-order.
func (g *Graph) forwardDfs(s Index, visited []bool, order *[]Index) {
	visited[s] = true
	stack := []dfsFrame{{v: s, next: g.vertices[s].firstOut}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		end := g.vertices[top.v+1].firstOut
		pushed := false
		for top.next < end {
			e := top.next
			top.next++
			head := g.outEdges[e].head
			if visited[head] || !g.isDrivable(e) {
				continue
			}
			visited[head] = true
			stack = append(stack, dfsFrame{v: head, next: g.vertices[head].firstOut})
			pushed = true
			break
		}
		if !pushed {
			*order = append(*order, top.v)
			stack = stack[:len(stack)-1]
		}
	}
}
