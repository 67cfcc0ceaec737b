package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfep/geomprop/topology"
)

// TestGraph_EdgesAndNeighbors verifies sorted, deduplicated enumeration and
// basic membership queries.
func TestGraph_EdgesAndNeighbors(t *testing.T) {
	g := topology.NewGraph()
	require.NoError(t, g.AddEdge(2, 0))
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(0, 1), "re-adding an edge must be a no-op")
	g.AddNode(7)

	assert.Equal(t, []int{0, 1, 2, 7}, g.Nodes(), "nodes must be sorted")
	assert.Equal(t, []int{1, 2}, g.Neighbors(0), "neighbors must be sorted")
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}}, g.Edges(), "edges once, low-high order")
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge(1, 0), "edges are undirected")
	assert.False(t, g.HasEdge(0, 7))
	assert.Nil(t, g.Neighbors(99), "unknown node yields nil neighbors")
}

// TestGraph_SelfBond verifies that a self-edge is rejected.
func TestGraph_SelfBond(t *testing.T) {
	g := topology.NewGraph()
	assert.ErrorIs(t, g.AddEdge(3, 3), topology.ErrSelfBond)
}

// TestGraph_HasPathWithin checks the bounded-hop reachability query used to
// gate 1-4 interaction terms.
func TestGraph_HasPathWithin(t *testing.T) {
	g := topology.NewGraph()
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}

	assert.True(t, g.HasPathWithin(0, 3, 3), "three bonds away is reachable")
	assert.False(t, g.HasPathWithin(0, 4, 3), "four bonds away is not")
	assert.True(t, g.HasPathWithin(2, 2, 0), "a node reaches itself")
	assert.False(t, g.HasPathWithin(0, 9, 3), "unknown node is unreachable")
}

// TestGraph_CloneIsIndependent verifies that mutating a clone does not leak
// into the original.
func TestGraph_CloneIsIndependent(t *testing.T) {
	g := topology.NewGraph()
	require.NoError(t, g.AddEdge(0, 1))

	c := g.Clone()
	require.NoError(t, c.AddEdge(1, 2))

	assert.False(t, g.HasEdge(1, 2), "original must not see the clone's edge")
	assert.True(t, c.HasEdge(0, 1))
}

// TestResidue_AtomBookkeeping covers duplicate atoms, bonds to unknown atoms
// and sorted atom enumeration.
func TestResidue_AtomBookkeeping(t *testing.T) {
	r := topology.NewResidue()
	require.NoError(t, r.AddAtom(topology.Atom{Index: 1, Element: "C"}))
	require.NoError(t, r.AddAtom(topology.Atom{Index: 0, Element: "H"}))

	assert.ErrorIs(t, r.AddAtom(topology.Atom{Index: 1, Element: "N"}), topology.ErrDuplicateAtom)
	assert.ErrorIs(t, r.AddBond(0, 5), topology.ErrAtomNotFound)
	require.NoError(t, r.AddBond(0, 1))

	atoms := r.Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, 0, atoms[0].Index, "atoms must be sorted by index")
	assert.True(t, atoms[0].Element.IsHydrogen())
	assert.False(t, atoms[1].Element.IsHydrogen())

	_, err := r.Atom(9)
	assert.ErrorIs(t, err, topology.ErrAtomNotFound)
}

// TestResidue_RingQueries verifies ring metadata intersection helpers.
func TestResidue_RingQueries(t *testing.T) {
	r := topology.NewResidue()
	require.NoError(t, r.AddAtom(topology.Atom{Index: 0, Element: "C", Rings: []int{0}}))
	require.NoError(t, r.AddAtom(topology.Atom{Index: 1, Element: "C", Rings: []int{0, 1}}))
	require.NoError(t, r.AddAtom(topology.Atom{Index: 2, Element: "C", Rings: []int{1}}))
	require.NoError(t, r.AddAtom(topology.Atom{Index: 3, Element: "C"}))

	assert.Equal(t, []int{0}, r.SharedRings(0, 1))
	assert.Empty(t, r.SharedRings(0, 2), "atoms in different rings share nothing")
	assert.Empty(t, r.SharedRings(0, 3), "acyclic atom shares nothing")
	assert.Equal(t, []int{0, 1}, r.RingAtoms(0))
	assert.Equal(t, []int{1, 2}, r.RingAtoms(1))
}

// TestAssignRings_SingleCycle derives ring membership for a five-membered
// ring with an acyclic tail.
func TestAssignRings_SingleCycle(t *testing.T) {
	r := topology.NewResidue()
	for i := 0; i < 6; i++ {
		require.NoError(t, r.AddAtom(topology.Atom{Index: i, Element: "C"}))
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}, {4, 5}} {
		require.NoError(t, r.AddBond(e[0], e[1]))
	}

	topology.AssignRings(r)

	for i := 0; i < 5; i++ {
		assert.Equal(t, []int{0}, r.RingsOf(i), "ring atom %d", i)
	}
	assert.Empty(t, r.RingsOf(5), "tail atom must stay acyclic")
}

// TestAssignRings_FusedCycles verifies that two cycles sharing an atom get
// distinct ring IDs and the shared atom belongs to both.
func TestAssignRings_FusedCycles(t *testing.T) {
	r := topology.NewResidue()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.AddAtom(topology.Atom{Index: i, Element: "C"}))
	}
	// Triangles 0-1-2 and 2-3-4 joined at atom 2.
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}, {3, 4}, {4, 2}} {
		require.NoError(t, r.AddBond(e[0], e[1]))
	}

	topology.AssignRings(r)

	assert.Len(t, r.RingsOf(2), 2, "shared atom belongs to both rings")
	assert.Len(t, r.RingsOf(0), 1)
	assert.Len(t, r.RingsOf(3), 1)
	assert.Empty(t, r.SharedRings(0, 3), "atoms of different rings share no ring")
	assert.NotEmpty(t, r.SharedRings(0, 1, 2), "triangle atoms share a ring")
}

// TestAssignRings_Rerun verifies that a second run replaces, not appends,
// ring assignments.
func TestAssignRings_Rerun(t *testing.T) {
	r := topology.NewResidue()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.AddAtom(topology.Atom{Index: i, Element: "C"}))
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}} {
		require.NoError(t, r.AddBond(e[0], e[1]))
	}

	topology.AssignRings(r)
	topology.AssignRings(r)

	assert.Equal(t, []int{0}, r.RingsOf(0), "IDs must not accumulate across runs")
}
