package topology

import "sort"

// AssignRings derives a cycle basis from the residue's 2-D bond graph and
// writes sequential ring IDs onto the atoms' Rings metadata, replacing any
// prior assignment. It is a convenience for callers whose topology provider
// does not annotate ring membership; nothing here inspects 3-D structure.
//
// The basis is built from a depth-first spanning forest: every non-tree
// (back) edge closes exactly one fundamental cycle, recovered by walking the
// two endpoints up to their lowest common ancestor.
//
// Complexity: O(V + E·V) worst case (each back edge walks tree paths).
func AssignRings(r *Residue) {
	for _, a := range r.atoms {
		a.Rings = nil
	}

	g := r.bonds
	parent := make(map[int]int)
	depth := make(map[int]int)
	visited := make(map[int]bool)
	var backEdges [][2]int

	// Iterative DFS over sorted nodes for deterministic ring numbering.
	for _, root := range g.Nodes() {
		if visited[root] {
			continue
		}
		parent[root] = -1
		depth[root] = 0
		stack := []int{root}
		visited[root] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, v := range g.Neighbors(u) {
				if !visited[v] {
					visited[v] = true
					parent[v] = u
					depth[v] = depth[u] + 1
					stack = append(stack, v)
					continue
				}
				// Record each back edge once; tree edges are skipped.
				if v != parent[u] && u < v {
					backEdges = append(backEdges, [2]int{u, v})
				}
			}
		}
	}

	sort.Slice(backEdges, func(i, j int) bool {
		if backEdges[i][0] != backEdges[j][0] {
			return backEdges[i][0] < backEdges[j][0]
		}

		return backEdges[i][1] < backEdges[j][1]
	})

	for ringID, e := range backEdges {
		for _, idx := range fundamentalCycle(e[0], e[1], parent, depth) {
			r.atoms[idx].Rings = append(r.atoms[idx].Rings, ringID)
		}
	}

	for _, a := range r.atoms {
		sort.Ints(a.Rings)
	}
}

// fundamentalCycle returns the atoms of the cycle closed by back edge (u, v):
// both tree paths up to the lowest common ancestor, inclusive.
func fundamentalCycle(u, v int, parent, depth map[int]int) []int {
	cycle := make(map[int]struct{})
	for depth[u] > depth[v] {
		cycle[u] = struct{}{}
		u = parent[u]
	}
	for depth[v] > depth[u] {
		cycle[v] = struct{}{}
		v = parent[v]
	}
	for u != v {
		cycle[u] = struct{}{}
		cycle[v] = struct{}{}
		u = parent[u]
		v = parent[v]
	}
	cycle[u] = struct{}{} // the common ancestor

	out := make([]int, 0, len(cycle))
	for idx := range cycle {
		out = append(out, idx)
	}
	sort.Ints(out)

	return out
}
