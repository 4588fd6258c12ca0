package datastructure

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
a <-> b -> c      d <-> e  (d-e akses privat)
*/
func TestStronglyConnectedComponents(t *testing.T) {
	b := NewGraphBuilder()
	va := b.AddVertex(-7.0, 110.0, 1)
	vb := b.AddVertex(-7.0, 110.001, 2)
	vc := b.AddVertex(-7.0, 110.002, 3)
	vd := b.AddVertex(-7.01, 110.0, 4)
	ve := b.AddVertex(-7.01, 110.001, 5)

	b.AddRoad(va, vb, nil, roadAttr("Jalan Malioboro", false), roadAttr("Jalan Malioboro", false))
	b.AddRoad(vb, vc, nil, roadAttr("Jalan Mataram", false), roadAttr("Jalan Mataram", true))
	private := RoadAttributes{Name: "Jalan Privat", RoadClass: pkg.SERVICE, TravelMode: pkg.TRAVEL_MODE_INACCESSIBLE}
	b.AddRoad(vd, ve, nil, private, private)
	g := b.Build()

	scc := g.StronglyConnectedComponents()
	require.Equal(t, 4, scc.NumberOfComponents())

	assert.Equal(t, scc.ComponentOf(va), scc.ComponentOf(vb))
	assert.NotEqual(t, scc.ComponentOf(vb), scc.ComponentOf(vc))
	assert.NotEqual(t, scc.ComponentOf(vd), scc.ComponentOf(ve))

	largest := scc.LargestComponent()
	assert.Equal(t, scc.ComponentOf(va), largest)
	assert.Equal(t, 2, scc.ComponentSize(largest))

	ab, ok := g.FindEdge(va, vb)
	require.True(t, ok)
	bc, ok := g.FindEdge(vb, vc)
	require.True(t, ok)
	assert.True(t, scc.InLargestComponent(g, ab))
	assert.False(t, scc.InLargestComponent(g, bc))
}
