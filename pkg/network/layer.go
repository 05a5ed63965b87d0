package network

// NewNetworkLayer creates a layer, copying the edge list.
// Every endpoint must lie in [0, numNodes).
func NewNetworkLayer(name string, numNodes int, edges []Edge) (*NetworkLayer, error) {
	if numNodes < 0 {
		return nil, NewError("NewNetworkLayer").Layer(name).
			Contextf("num_nodes %d", numNodes).Cause(ErrShapeMismatch).Err()
	}

	copied := make([]Edge, len(edges))
	for i, e := range edges {
		if e.U < 0 || e.U >= numNodes || e.V < 0 || e.V >= numNodes {
			return nil, NewError("NewNetworkLayer").Layer(name).
				Contextf("edge %d (%d, %d) with num_nodes %d", i, e.U, e.V, numNodes).
				Cause(ErrEdgeOutOfRange).Err()
		}
		copied[i] = e
	}

	return &NetworkLayer{
		Name:     name,
		NumNodes: numNodes,
		Edges:    copied,
	}, nil
}

// EdgeCount returns the number of edges, duplicates included.
func (l *NetworkLayer) EdgeCount() int {
	return len(l.Edges)
}

// Degrees returns the degree of every node. A self-loop adds two to its node
// and each duplicate edge is counted separately.
func (l *NetworkLayer) Degrees() []int {
	degrees := make([]int, l.NumNodes)
	for _, e := range l.Edges {
		degrees[e.U]++
		degrees[e.V]++
	}
	return degrees
}

// AverageDegree returns 2|E|/N, or 0 for an empty layer.
func (l *NetworkLayer) AverageDegree() float64 {
	if l.NumNodes == 0 {
		return 0
	}
	return 2 * float64(len(l.Edges)) / float64(l.NumNodes)
}
