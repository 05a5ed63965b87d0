package cascade

import (
	"github.com/dd0wney/interdep-cascade/pkg/algorithms"
	"github.com/dd0wney/interdep-cascade/pkg/network"
)

// Run propagates failures between layers "A" and "B" of system, starting from
// initialAlive in both layers, until neither alive mask changes.
//
// One iteration runs in a fixed order: failures in A kill their dependants in
// B, B is trimmed to its giant component, failures in B kill their dependants
// in A, and A is trimmed to its giant component. The order determines the
// History but not FinalAlive.
//
// Run never modifies system or initialAlive and keeps all scratch state local,
// so it is safe to call concurrently on a shared system.
func Run(system *network.InterdependentSystem, initialAlive []bool) (*Result, error) {
	layerA, layerB, dep, err := checkInputs(system, initialAlive)
	if err != nil {
		return nil, err
	}

	n := layerA.NumNodes
	aliveA := make([]bool, n)
	aliveB := make([]bool, n)
	copy(aliveA, initialAlive)
	copy(aliveB, initialAlive)

	prevA := make([]bool, n)
	prevB := make([]bool, n)

	// Total alive count over both layers is at most 2N and drops on every
	// iteration that is not the last one.
	maxIterations := 2*n + 1

	var history []Step
	for len(history) < maxIterations {
		copy(prevA, aliveA)
		copy(prevB, aliveB)

		for i, ok := range aliveA {
			if !ok {
				aliveB[dep.AToB[i]] = false
			}
		}
		aliveB = algorithms.LargestComponent(n, layerB.Edges, aliveB)

		for j, ok := range aliveB {
			if !ok {
				aliveA[dep.BToA[j]] = false
			}
		}
		aliveA = algorithms.LargestComponent(n, layerA.Edges, aliveA)

		history = append(history, snapshot(aliveA, aliveB))

		if equalMasks(aliveA, prevA) && equalMasks(aliveB, prevB) {
			return newResult(aliveA, aliveB, history), nil
		}
	}

	return nil, network.NewError("Run").System().
		Contextf("no fixed point after %d iterations", maxIterations).
		Cause(ErrNoConvergence).Err()
}

// checkInputs resolves the layers and mapping and verifies every dimension.
func checkInputs(system *network.InterdependentSystem, initialAlive []bool) (*network.NetworkLayer, *network.NetworkLayer, *network.DependencyMapping, error) {
	layerA, layerB, err := system.Layers()
	if err != nil {
		return nil, nil, nil, err
	}

	n := layerA.NumNodes
	if len(initialAlive) != n {
		return nil, nil, nil, network.NewError("Run").Mask().
			Contextf("length %d, system has %d nodes", len(initialAlive), n).
			Cause(network.ErrShapeMismatch).Err()
	}
	if layerB.NumNodes != n {
		return nil, nil, nil, network.NewError("Run").Layer(network.LayerB).
			Contextf("%d nodes, layer A has %d", layerB.NumNodes, n).
			Cause(network.ErrShapeMismatch).Err()
	}

	dep := system.Dependency
	if dep == nil {
		return nil, nil, nil, network.NewError("Run").Dependency().
			Contextf("nil mapping").Cause(network.ErrShapeMismatch).Err()
	}
	if len(dep.AToB) != n || len(dep.BToA) != n {
		return nil, nil, nil, network.NewError("Run").Dependency().
			Contextf("a_to_b=%d, b_to_a=%d, system has %d nodes", len(dep.AToB), len(dep.BToA), n).
			Cause(network.ErrShapeMismatch).Err()
	}
	return layerA, layerB, dep, nil
}

func snapshot(aliveA, aliveB []bool) Step {
	s := Step{}
	for i := range aliveA {
		if aliveA[i] {
			s.AliveA++
		}
		if aliveB[i] {
			s.AliveB++
		}
		if aliveA[i] && aliveB[i] {
			s.MCGC++
		}
	}
	return s
}

func newResult(aliveA, aliveB []bool, history []Step) *Result {
	final := make([]bool, len(aliveA))
	survivors := 0
	for i := range final {
		final[i] = aliveA[i] && aliveB[i]
		if final[i] {
			survivors++
		}
	}

	var mInfty float64
	if len(final) > 0 {
		mInfty = float64(survivors) / float64(len(final))
	}
	return &Result{FinalAlive: final, MInfty: mInfty, History: history}
}

func equalMasks(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
