package growth_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/forcefield"
	"github.com/openfep/geomprop/growth"
	"github.com/openfep/geomprop/order"
	"github.com/openfep/geomprop/topology"
)

// chainFixture builds a four-atom chain residue, its term table and the plan
// that places atom 3 onto positioned atoms 0-2.
func chainFixture(t *testing.T) (*topology.Residue, *forcefield.Set, *order.Result) {
	t.Helper()
	res := topology.NewResidue()
	for i, el := range []topology.Element{"C", "C", "C", "H"} {
		require.NoError(t, res.AddAtom(topology.Atom{Index: i, Element: el}))
	}
	for _, b := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		require.NoError(t, res.AddBond(b[0], b[1]))
	}

	full := &forcefield.Set{
		Bonds: []forcefield.BondTerm{
			{I: 0, J: 1, R0: 0.15, K: 250000},
			{I: 1, J: 2, R0: 0.15, K: 250000},
			{I: 2, J: 3, R0: 0.11, K: 280000},
		},
		Angles: []forcefield.AngleTerm{
			{I: 0, J: 1, K: 2, Theta0: 1.9, ForceK: 400},
			{I: 1, J: 2, K: 3, Theta0: 1.9, ForceK: 350},
		},
		Torsions: []forcefield.TorsionTerm{
			{I: 0, J: 1, K: 2, L: 3, Periodicity: 3, Phase: 0, ForceK: 4},
		},
		Pairs: []forcefield.PairTerm{
			{I: 0, J: 3, ChargeProd: 0.005, Sigma: 0.25, Epsilon: 0.3},
		},
	}

	ord, err := order.Plan(res, []int{3}, []int{0, 1, 2}, nil)
	require.NoError(t, err)

	return res, full, ord
}

// chainPositions returns a bent, non-degenerate conformation of the chain.
func chainPositions() []r3.Vec {
	return []r3.Vec{
		{},
		{X: 0.15},
		{X: 0.25, Y: 0.11},
		{X: 0.21, Y: 0.2, Z: 0.05},
	}
}

// TestBuild_StageRouting verifies the core/growth split by placement rank.
func TestBuild_StageRouting(t *testing.T) {
	res, full, ord := chainFixture(t)

	model, err := growth.Build(full, ord, res, growth.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, model.Core.Bonds, 2, "bonds among positioned atoms are core")
	require.Len(t, model.Growth.Bonds, 1)
	assert.Equal(t, 1, model.Growth.Bonds[0].Stage)
	assert.Equal(t, 3, model.Growth.Bonds[0].J)

	require.Len(t, model.Core.Angles, 1)
	require.Len(t, model.Growth.Angles, 1)
	require.Len(t, model.Growth.Torsions, 1)
	require.Len(t, model.Growth.Pairs, 1, "1-4 pair three bonds apart survives")
	assert.Empty(t, model.Core.Pairs, "core-core exceptions are dropped, not core terms")

	assert.Empty(t, model.Special.OmittedBonds)
	assert.Empty(t, model.NeglectedAngles)
}

// TestBuild_ClosureIdentity verifies core + growth == final exactly on a
// fully built conformation, and that VerifyClosure accepts it.
func TestBuild_ClosureIdentity(t *testing.T) {
	res, full, ord := chainFixture(t)
	model, err := growth.Build(full, ord, res, growth.DefaultOptions())
	require.NoError(t, err)

	pos := chainPositions()
	sum := model.Core.TotalEnergy(pos) + model.Growth.TotalEnergy(pos)
	assert.InDelta(t, model.Final.TotalEnergy(pos), sum, 1e-9)
	assert.NoError(t, model.VerifyClosure(pos))
}

// TestBuild_NeglectAngles routes a staged angle that was not used for
// placement out of the growth and final systems.
func TestBuild_NeglectAngles(t *testing.T) {
	res, full, ord := chainFixture(t)
	stray := forcefield.AngleTerm{I: 0, J: 2, K: 3, Theta0: 2.0, ForceK: 300}
	full.Angles = append(full.Angles, stray)

	opts := growth.DefaultOptions()
	opts.NeglectAngles = true
	model, err := growth.Build(full, ord, res, opts)
	require.NoError(t, err)

	require.Len(t, model.NeglectedAngles, 1)
	assert.Equal(t, stray, model.NeglectedAngles[0])
	assert.Len(t, model.Growth.Angles, 1, "the placement angle stays")
	assert.Len(t, model.Final.Angles, 2, "the neglected term is zeroed in the final system")

	// The closure identity must still hold with the term neglected.
	pos := chainPositions()
	assert.NoError(t, model.VerifyClosure(pos))
}

// TestBuild_OmittedTerms verifies that terms crossing an omitted bond are
// set aside from every system, and that a 1-4 pair with no clean short path
// is omitted as well.
func TestBuild_OmittedTerms(t *testing.T) {
	res := topology.NewResidue()
	for i := 0; i < 4; i++ {
		require.NoError(t, res.AddAtom(topology.Atom{Index: i, Element: "C"}))
	}
	for _, b := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		require.NoError(t, res.AddBond(b[0], b[1]))
	}

	// Hand-built plan whose connectivity graph lost the 2-3 bond.
	conn := topology.NewGraph()
	require.NoError(t, conn.AddEdge(0, 1))
	require.NoError(t, conn.AddEdge(1, 2))
	conn.AddNode(3)
	ord := &order.Result{
		Quads:        []order.Quad{{3, 2, 1, 0}},
		LogChoice:    []float64{0},
		Connectivity: conn,
		OmittedEdges: [][2]int{{2, 3}},
	}

	full := &forcefield.Set{
		Bonds:    []forcefield.BondTerm{{I: 2, J: 3, R0: 0.15, K: 250000}},
		Angles:   []forcefield.AngleTerm{{I: 1, J: 2, K: 3, Theta0: 1.9, ForceK: 400}},
		Torsions: []forcefield.TorsionTerm{{I: 0, J: 1, K: 2, L: 3, Periodicity: 2, Phase: 0, ForceK: 2}},
		Pairs:    []forcefield.PairTerm{{I: 0, J: 3, ChargeProd: 0.004, Sigma: 0.3, Epsilon: 0.2}},
	}

	model, err := growth.Build(full, ord, res, growth.DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, model.Special.OmittedBonds, 1)
	assert.Len(t, model.Special.OmittedAngles, 1)
	assert.Len(t, model.Special.OmittedTorsions, 1)
	assert.Len(t, model.Special.Omitted14s, 1, "atom 3 is unreachable in the connectivity graph")

	assert.Empty(t, model.Growth.Bonds)
	assert.Empty(t, model.Final.Bonds, "omitted terms are zeroed in the final system")
	assert.Empty(t, model.Growth.Pairs)
}

// TestBuild_RingBiasTorsions verifies injection of the eclipsing bias for
// placements fully inside one ring: the anchored first placement reaches
// outside the ring and gets no bias, the two closure placements do.
func TestBuild_RingBiasTorsions(t *testing.T) {
	ring := []int{0}
	res := topology.NewResidue()
	require.NoError(t, res.AddAtom(topology.Atom{Index: 0, Element: "C"}))
	for i := 1; i < 6; i++ {
		require.NoError(t, res.AddAtom(topology.Atom{Index: i, Element: "C", Rings: ring}))
	}
	for _, b := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {1, 5}} {
		require.NoError(t, res.AddBond(b[0], b[1]))
	}
	ord, err := order.Plan(res, []int{3, 4, 5}, []int{0, 1, 2}, nil)
	require.NoError(t, err)

	model, err := growth.Build(&forcefield.Set{}, ord, res, growth.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, model.Special.ExtraTorsions, 2, "one bias per fully in-ring placement")
	for _, bias := range model.Special.ExtraTorsions {
		assert.Equal(t, 1, bias.Periodicity)
		assert.InDelta(t, math.Pi, bias.Phase, 1e-15)
		assert.InDelta(t, 502.08, bias.ForceK, 1e-12)
	}
	assert.Len(t, model.Growth.Torsions, 2)
	assert.Len(t, model.Final.Torsions, 2, "biases also enter the final system for closure")

	// Disabled injection leaves the systems bias-free.
	opts := growth.DefaultOptions()
	opts.AddRingTorsions = false
	bare, err := growth.Build(&forcefield.Set{}, ord, res, opts)
	require.NoError(t, err)
	assert.Empty(t, bare.Special.ExtraTorsions)
	assert.Empty(t, bare.Growth.Torsions)
}

// TestVerifyClosure_Mismatch verifies the loud failure when the systems
// disagree.
func TestVerifyClosure_Mismatch(t *testing.T) {
	model := &growth.Model{
		Growth: &growth.System{},
		Core:   &growth.System{},
		Final: &growth.System{
			Bonds: []growth.StagedBond{{BondTerm: forcefield.BondTerm{I: 0, J: 1, R0: 0.1, K: 100000}}},
		},
	}
	pos := []r3.Vec{{}, {X: 0.2}}

	err := model.VerifyClosure(pos)
	assert.ErrorIs(t, err, growth.ErrEnergyMismatch)
}
