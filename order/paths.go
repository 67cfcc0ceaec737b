package order

import "github.com/openfep/geomprop/topology"

// shortestPathsFrom returns one shortest path (as a node sequence including
// src) from src to every node reachable within maxEdges edges, via BFS over
// sorted neighbors. Deterministic for a fixed graph.
// Complexity: O(V + E) plus path reconstruction.
func shortestPathsFrom(g *topology.Graph, src, maxEdges int) map[int][]int {
	parent := map[int]int{src: src}
	dist := map[int]int{src: 0}
	queue := []int{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if dist[u] == maxEdges {
			continue
		}
		for _, v := range g.Neighbors(u) {
			if _, seen := parent[v]; seen {
				continue
			}
			parent[v] = u
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}

	paths := make(map[int][]int, len(parent))
	for dst := range parent {
		n := dist[dst]
		path := make([]int, n+1)
		for u, k := dst, n; k >= 0; u, k = parent[u], k-1 {
			path[k] = u
		}
		paths[dst] = path
	}

	return paths
}

// simplePaths enumerates every simple path from src to dst with at most
// maxEdges edges, via DFS over sorted neighbors. Paths include both
// endpoints. Deterministic for a fixed graph.
func simplePaths(g *topology.Graph, src, dst, maxEdges int) [][]int {
	var out [][]int
	onPath := map[int]bool{src: true}
	path := []int{src}

	var walk func(u int)
	walk = func(u int) {
		if u == dst {
			cp := make([]int, len(path))
			copy(cp, path)
			out = append(out, cp)

			return
		}
		if len(path)-1 == maxEdges {
			return
		}
		for _, v := range g.Neighbors(u) {
			if onPath[v] {
				continue
			}
			onPath[v] = true
			path = append(path, v)
			walk(v)
			path = path[:len(path)-1]
			onPath[v] = false
		}
	}
	walk(src)

	return out
}
