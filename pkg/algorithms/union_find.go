package algorithms

// DisjointSet is a union-find forest stored as two parallel arrays indexed by node id.
type DisjointSet struct {
	parent []int
	rank   []int
}

// NewDisjointSet creates n singleton sets {0}, {1}, ..., {n-1}.
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

// Find returns the root of x's set, halving the path as it walks up.
func (ds *DisjointSet) Find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

// Union merges the sets containing x and y by rank.
// Returns false if they were already in the same set.
func (ds *DisjointSet) Union(x, y int) bool {
	rx, ry := ds.Find(x), ds.Find(y)
	if rx == ry {
		return false
	}

	// Attach the lower-rank tree under the higher-rank root.
	if ds.rank[rx] < ds.rank[ry] {
		rx, ry = ry, rx
	}
	ds.parent[ry] = rx
	if ds.rank[rx] == ds.rank[ry] {
		ds.rank[rx]++
	}
	return true
}

// Len returns the number of elements.
func (ds *DisjointSet) Len() int {
	return len(ds.parent)
}
