package network

// Canonical layer names of a two-layer interdependent system.
const (
	LayerA = "A"
	LayerB = "B"
)

// Edge is an undirected pair of node indices. Self-loops and duplicates are allowed.
type Edge struct {
	U int
	V int
}

// NetworkLayer is an undirected graph over the node range [0, NumNodes).
// A layer is immutable once constructed.
type NetworkLayer struct {
	Name     string
	NumNodes int
	Edges    []Edge
}

// DependencyMapping pairs every layer-A node with exactly one layer-B node.
// AToB and BToA are inverse permutations of each other.
type DependencyMapping struct {
	AToB []int
	BToA []int
}

// MultiLayerNetwork holds named layers over a shared node index space.
type MultiLayerNetwork struct {
	Layers map[string]*NetworkLayer
}

// InterdependentSystem composes layers "A" and "B" with their dependency mapping.
// It is read-only input to any number of concurrent cascade runs.
type InterdependentSystem struct {
	Network    *MultiLayerNetwork
	Dependency *DependencyMapping
}
