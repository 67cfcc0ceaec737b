package geometry_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfep/geomprop/forcefield"
	"github.com/openfep/geomprop/geometry"
	"github.com/openfep/geomprop/topology"
)

// ExampleEngine_Propose grows a terminal hydrogen onto a three-carbon
// fragment and scores the resulting coordinates in reverse.
func ExampleEngine_Propose() {
	res := topology.NewResidue()
	for i, el := range []topology.Element{"C", "C", "C", "H"} {
		_ = res.AddAtom(topology.Atom{Index: i, Element: el})
	}
	for _, b := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		_ = res.AddBond(b[0], b[1])
	}

	terms := &forcefield.Set{
		Bonds: []forcefield.BondTerm{
			{I: 0, J: 1, R0: 0.15, K: 250000},
			{I: 1, J: 2, R0: 0.15, K: 250000},
			{I: 2, J: 3, R0: 0.109, K: 280000},
		},
		Angles: []forcefield.AngleTerm{
			{I: 0, J: 1, K: 2, Theta0: 1.9, ForceK: 400},
			{I: 1, J: 2, K: 3, Theta0: 1.92, ForceK: 350},
		},
	}

	prop := &geometry.Proposal{
		Residue:    res,
		Terms:      terms,
		ToPlace:    []int{3},
		Positioned: []int{0, 1, 2},
		Positions:  []r3.Vec{{}, {X: 0.15}, {X: 0.25, Y: 0.11}, {}},
	}

	eng, err := geometry.New(geometry.DefaultOptions())
	if err != nil {
		fmt.Println("engine:", err)

		return
	}

	const beta = 0.4009 // mol/kJ at 300 K
	fwd, err := eng.Propose(prop, beta)
	if err != nil {
		fmt.Println("propose:", err)

		return
	}
	fmt.Printf("placed %d atom(s)\n", len(fwd.Records))

	scorer, _ := geometry.New(geometry.DefaultOptions())
	prop.Positions = fwd.Positions
	rev, err := scorer.LogPReverse(prop, beta)
	if err != nil {
		fmt.Println("reverse:", err)

		return
	}
	fmt.Printf("forward and reverse agree: %v\n", abs(fwd.LogP-rev.LogP) < 1e-6)
	// Output:
	// placed 1 atom(s)
	// forward and reverse agree: true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
