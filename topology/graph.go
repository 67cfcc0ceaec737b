package topology

import "sort"

// Graph is an undirected graph over integer atom indices, stored as
// adjacency sets. Iteration methods return sorted slices so that algorithms
// drawing uniformly from enumerated options are reproducible under a fixed
// random seed.
type Graph struct {
	adj map[int]map[int]struct{}
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{adj: make(map[int]map[int]struct{})}
}

// AddNode inserts node id if absent.
// Complexity: O(1).
func (g *Graph) AddNode(id int) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[int]struct{})
	}
}

// AddEdge inserts the undirected edge (u, v), adding missing endpoints.
// Returns ErrSelfBond when u == v.
// Complexity: O(1).
func (g *Graph) AddEdge(u, v int) error {
	if u == v {
		return ErrSelfBond
	}
	g.AddNode(u)
	g.AddNode(v)
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}

	return nil
}

// HasNode reports whether node id is present.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.adj[id]

	return ok
}

// HasEdge reports whether the undirected edge (u, v) is present.
func (g *Graph) HasEdge(u, v int) bool {
	nbrs, ok := g.adj[u]
	if !ok {
		return false
	}
	_, ok = nbrs[v]

	return ok
}

// Neighbors returns the sorted neighbor indices of node id. The result is a
// fresh slice owned by the caller; missing nodes yield nil.
// Complexity: O(deg·log deg).
func (g *Graph) Neighbors(id int) []int {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	sort.Ints(out)

	return out
}

// Nodes returns all node indices in ascending order.
// Complexity: O(V·log V).
func (g *Graph) Nodes() []int {
	out := make([]int, 0, len(g.adj))
	for id := range g.adj {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges.
// Complexity: O(V).
func (g *Graph) EdgeCount() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}

	return total / 2
}

// Edges returns every undirected edge exactly once, ordered by (low, high).
// Complexity: O(V·log V + E).
func (g *Graph) Edges() [][2]int {
	out := make([][2]int, 0, g.EdgeCount())
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				out = append(out, [2]int{u, v})
			}
		}
	}

	return out
}

// HasPathWithin reports whether nodes u and v are joined by a path of at
// most maxEdges edges, via breadth-first search. u == v counts as a
// zero-length path when the node exists.
// Complexity: O(V + E) worst case.
func (g *Graph) HasPathWithin(u, v, maxEdges int) bool {
	if !g.HasNode(u) || !g.HasNode(v) {
		return false
	}
	if u == v {
		return true
	}
	dist := map[int]int{u: 0}
	queue := []int{u}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if dist[n] == maxEdges {
			continue
		}
		for next := range g.adj[n] {
			if _, seen := dist[next]; seen {
				continue
			}
			if next == v {
				return true
			}
			dist[next] = dist[n] + 1
			queue = append(queue, next)
		}
	}

	return false
}

// Clone returns a deep copy of the graph.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for u, nbrs := range g.adj {
		c.AddNode(u)
		for v := range nbrs {
			c.adj[u][v] = struct{}{}
		}
	}

	return c
}
