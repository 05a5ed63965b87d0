package network

import "sort"

// NewMultiLayerNetwork indexes the given layers by name.
func NewMultiLayerNetwork(layers ...*NetworkLayer) *MultiLayerNetwork {
	m := &MultiLayerNetwork{Layers: make(map[string]*NetworkLayer, len(layers))}
	for _, l := range layers {
		if l != nil {
			m.Layers[l.Name] = l
		}
	}
	return m
}

// Layer returns the named layer.
func (m *MultiLayerNetwork) Layer(name string) (*NetworkLayer, bool) {
	if m == nil {
		return nil, false
	}
	l, ok := m.Layers[name]
	return l, ok && l != nil
}

// LayerNames returns the layer names in sorted order.
func (m *MultiLayerNetwork) LayerNames() []string {
	names := make([]string, 0, len(m.Layers))
	for name := range m.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewInterdependentSystem composes two layers and their dependency mapping.
// The layers must be named "A" and "B" and every dimension must agree.
func NewInterdependentSystem(layerA, layerB *NetworkLayer, dep *DependencyMapping) (*InterdependentSystem, error) {
	if layerA == nil || layerA.Name != LayerA {
		return nil, NewError("NewInterdependentSystem").Layer(LayerA).Cause(ErrMissingLayer).Err()
	}
	if layerB == nil || layerB.Name != LayerB {
		return nil, NewError("NewInterdependentSystem").Layer(LayerB).Cause(ErrMissingLayer).Err()
	}
	if dep == nil {
		return nil, NewError("NewInterdependentSystem").Dependency().
			Contextf("nil mapping").Cause(ErrShapeMismatch).Err()
	}

	n := layerA.NumNodes
	if layerB.NumNodes != n || len(dep.AToB) != n || len(dep.BToA) != n {
		return nil, NewError("NewInterdependentSystem").System().
			Contextf("A=%d, B=%d, a_to_b=%d, b_to_a=%d",
				layerA.NumNodes, layerB.NumNodes, len(dep.AToB), len(dep.BToA)).
			Cause(ErrShapeMismatch).Err()
	}

	return &InterdependentSystem{
		Network:    NewMultiLayerNetwork(layerA, layerB),
		Dependency: dep,
	}, nil
}

// NumNodes returns the node count of layer "A", or 0 if the layer is absent.
func (s *InterdependentSystem) NumNodes() int {
	if s == nil {
		return 0
	}
	if l, ok := s.Network.Layer(LayerA); ok {
		return l.NumNodes
	}
	return 0
}

// Layers returns layers "A" and "B", failing with ErrMissingLayer if either is absent.
func (s *InterdependentSystem) Layers() (*NetworkLayer, *NetworkLayer, error) {
	if s == nil || s.Network == nil {
		return nil, nil, NewError("Layers").System().Contextf("nil network").Cause(ErrMissingLayer).Err()
	}
	a, ok := s.Network.Layer(LayerA)
	if !ok {
		return nil, nil, NewError("Layers").Layer(LayerA).Cause(ErrMissingLayer).Err()
	}
	b, ok := s.Network.Layer(LayerB)
	if !ok {
		return nil, nil, NewError("Layers").Layer(LayerB).Cause(ErrMissingLayer).Err()
	}
	return a, b, nil
}
