package algorithms

import "github.com/dd0wney/interdep-cascade/pkg/network"

// LargestComponent returns a new mask that keeps only the alive nodes in the
// largest connected component of the subgraph induced by alive nodes.
//
// Edges are merged only when both endpoints are alive, so a dead node never
// joins or revives a component. When several components share the maximal
// size, the one whose first alive node (scanning indices in ascending order)
// comes first wins. This rule is part of the contract: two evaluations of the
// same input always select the same survivors.
//
// If numNodes is zero or no node is alive, a copy of alive is returned.
// alive must have length numNodes and every edge endpoint must lie in
// [0, numNodes). Neither input is modified.
func LargestComponent(numNodes int, edges []network.Edge, alive []bool) []bool {
	out := make([]bool, numNodes)
	copy(out, alive)
	if numNodes == 0 || !anyAlive(alive[:numNodes]) {
		return out
	}

	ds := unionAlive(numNodes, edges, alive)
	sizes, roots := aliveComponents(ds, alive[:numNodes])
	if len(roots) == 0 {
		return out
	}

	// Strict comparison keeps the earliest-discovered root on ties.
	best := roots[0]
	for _, r := range roots[1:] {
		if sizes[r] > sizes[best] {
			best = r
		}
	}

	for i := 0; i < numNodes; i++ {
		out[i] = alive[i] && ds.Find(i) == best
	}
	return out
}

// ComponentSizes returns the size of every connected component of the
// alive-induced subgraph, in the order the components are first reached by an
// ascending index scan. Dead nodes are not counted.
func ComponentSizes(numNodes int, edges []network.Edge, alive []bool) []int {
	if numNodes == 0 {
		return nil
	}

	ds := unionAlive(numNodes, edges, alive)
	sizes, roots := aliveComponents(ds, alive[:numNodes])

	result := make([]int, len(roots))
	for i, r := range roots {
		result[i] = sizes[r]
	}
	return result
}

// unionAlive builds the disjoint-set forest over edges whose endpoints are both alive.
func unionAlive(numNodes int, edges []network.Edge, alive []bool) *DisjointSet {
	ds := NewDisjointSet(numNodes)
	for _, e := range edges {
		if alive[e.U] && alive[e.V] {
			ds.Union(e.U, e.V)
		}
	}
	return ds
}

// aliveComponents counts alive nodes per root. roots lists each root once, in
// order of its first alive member.
func aliveComponents(ds *DisjointSet, alive []bool) (sizes []int, roots []int) {
	sizes = make([]int, ds.Len())
	for i, ok := range alive {
		if !ok {
			continue
		}
		r := ds.Find(i)
		if sizes[r] == 0 {
			roots = append(roots, r)
		}
		sizes[r]++
	}
	return sizes, roots
}

func anyAlive(alive []bool) bool {
	for _, ok := range alive {
		if ok {
			return true
		}
	}
	return false
}

// CountAlive returns the number of true entries in mask.
func CountAlive(mask []bool) int {
	n := 0
	for _, ok := range mask {
		if ok {
			n++
		}
	}
	return n
}
