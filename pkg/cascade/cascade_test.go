package cascade

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/dd0wney/interdep-cascade/pkg/network"
)

func mask(bits ...int) []bool {
	m := make([]bool, len(bits))
	for i, b := range bits {
		m[i] = b != 0
	}
	return m
}

func allAlive(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func buildSystem(t testing.TB, n int, edgesA, edgesB []network.Edge, dep *network.DependencyMapping) *network.InterdependentSystem {
	t.Helper()
	a, err := network.NewNetworkLayer(network.LayerA, n, edgesA)
	if err != nil {
		t.Fatalf("layer A: %v", err)
	}
	b, err := network.NewNetworkLayer(network.LayerB, n, edgesB)
	if err != nil {
		t.Fatalf("layer B: %v", err)
	}
	if dep == nil {
		dep = network.IdentityDependency(n)
	}
	sys, err := network.NewInterdependentSystem(a, b, dep)
	if err != nil {
		t.Fatalf("NewInterdependentSystem: %v", err)
	}
	return sys
}

func scenarioA(t testing.TB) *network.InterdependentSystem {
	return buildSystem(t, 4,
		[]network.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}},
		[]network.Edge{{U: 0, V: 1}, {U: 2, V: 3}},
		nil)
}

func TestRun(t *testing.T) {
	shifted, err := network.NewDependencyMapping([]int{2, 0, 1}, []int{1, 2, 0})
	if err != nil {
		t.Fatalf("NewDependencyMapping: %v", err)
	}

	tests := []struct {
		name    string
		system  *network.InterdependentSystem
		initial []bool
		final   []bool
		mInfty  float64
		history []Step
	}{
		{
			name:    "path against two pairs",
			system:  scenarioA(t),
			initial: allAlive(4),
			final:   mask(1, 1, 0, 0),
			mInfty:  0.5,
			history: []Step{{2, 2, 2}, {2, 2, 2}},
		},
		{
			name:    "no edges keeps node zero",
			system:  buildSystem(t, 3, nil, nil, nil),
			initial: allAlive(3),
			final:   mask(1, 0, 0),
			mInfty:  1.0 / 3.0,
			history: []Step{{1, 1, 1}, {1, 1, 1}},
		},
		{
			name:    "all dead",
			system:  scenarioA(t),
			initial: make([]bool, 4),
			final:   make([]bool, 4),
			mInfty:  0,
			history: []Step{{0, 0, 0}},
		},
		{
			name:    "connected layers keep everything",
			system:  buildSystem(t, 3, []network.Edge{{U: 0, V: 1}, {U: 1, V: 2}}, []network.Edge{{U: 2, V: 0}, {U: 0, V: 1}}, nil),
			initial: allAlive(3),
			final:   allAlive(3),
			mInfty:  1,
			history: []Step{{3, 3, 3}},
		},
		{
			name:    "initial failure splits layer A",
			system:  scenarioA(t),
			initial: mask(1, 1, 0, 1),
			final:   mask(1, 1, 0, 0),
			mInfty:  0.5,
			history: []Step{{2, 2, 2}, {2, 2, 2}},
		},
		{
			name: "shifted dependency",
			system: buildSystem(t, 3,
				[]network.Edge{{U: 0, V: 1}, {U: 1, V: 2}},
				[]network.Edge{{U: 0, V: 1}},
				shifted),
			initial: allAlive(3),
			final:   mask(0, 1, 0),
			mInfty:  1.0 / 3.0,
			history: []Step{{2, 2, 1}, {2, 2, 1}},
		},
		{
			name:    "empty system",
			system:  buildSystem(t, 0, nil, nil, nil),
			initial: []bool{},
			final:   []bool{},
			mInfty:  0,
			history: []Step{{0, 0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.system, tt.initial)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if !reflect.DeepEqual(res.FinalAlive, tt.final) {
				t.Errorf("FinalAlive = %v, want %v", res.FinalAlive, tt.final)
			}
			if res.MInfty != tt.mInfty {
				t.Errorf("MInfty = %v, want %v", res.MInfty, tt.mInfty)
			}
			if !reflect.DeepEqual(res.History, tt.history) {
				t.Errorf("History = %v, want %v", res.History, tt.history)
			}
			if res.Iterations() != len(tt.history) {
				t.Errorf("Iterations() = %d, want %d", res.Iterations(), len(tt.history))
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	sys := scenarioA(t)
	layerA, _ := sys.Network.Layer(network.LayerA)
	layerB, _ := sys.Network.Layer(network.LayerB)

	tests := []struct {
		name   string
		system *network.InterdependentSystem
		mask   []bool
		want   error
	}{
		{"nil system", nil, allAlive(4), network.ErrMissingLayer},
		{"short mask", sys, allAlive(3), network.ErrShapeMismatch},
		{"long mask", sys, allAlive(5), network.ErrShapeMismatch},
		{
			name: "missing layer B",
			system: &network.InterdependentSystem{
				Network:    network.NewMultiLayerNetwork(layerA),
				Dependency: network.IdentityDependency(4),
			},
			mask: allAlive(4),
			want: network.ErrMissingLayer,
		},
		{
			name: "missing layer A",
			system: &network.InterdependentSystem{
				Network:    network.NewMultiLayerNetwork(layerB),
				Dependency: network.IdentityDependency(4),
			},
			mask: allAlive(4),
			want: network.ErrMissingLayer,
		},
		{
			name:   "nil dependency",
			system: &network.InterdependentSystem{Network: sys.Network},
			mask:   allAlive(4),
			want:   network.ErrShapeMismatch,
		},
		{
			name: "short dependency",
			system: &network.InterdependentSystem{
				Network:    sys.Network,
				Dependency: &network.DependencyMapping{AToB: []int{0, 1, 2}, BToA: []int{0, 1, 2, 3}},
			},
			mask: allAlive(4),
			want: network.ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.system, tt.mask)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run() error = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Errorf("Run() returned a result alongside error: %+v", res)
			}
			var sysErr *network.SystemError
			if !errors.As(err, &sysErr) {
				t.Errorf("error %T is not a *network.SystemError", err)
			}
		})
	}
}

func TestRun_DoesNotMutateInputs(t *testing.T) {
	sys := scenarioA(t)
	initial := mask(1, 1, 1, 0)
	before := append([]bool(nil), initial...)
	depBefore := append([]int(nil), sys.Dependency.AToB...)

	if _, err := Run(sys, initial); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !reflect.DeepEqual(initial, before) {
		t.Errorf("initial mask mutated: %v, want %v", initial, before)
	}
	if !reflect.DeepEqual(sys.Dependency.AToB, depBefore) {
		t.Errorf("dependency mutated: %v, want %v", sys.Dependency.AToB, depBefore)
	}
}

func TestRun_Deterministic(t *testing.T) {
	sys, initial := randomSystem(42, 60, 0.05, 0.8)

	first, err := Run(sys, initial)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Run(sys, initial)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestResultHelpers(t *testing.T) {
	res := &Result{FinalAlive: mask(0, 1, 1, 0, 1)}

	if got := res.SurvivorCount(); got != 3 {
		t.Errorf("SurvivorCount() = %d, want 3", got)
	}
	if got := res.Survivors(); !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Errorf("Survivors() = %v, want [1 2 4]", got)
	}
	if got := (&Result{}).Survivors(); len(got) != 0 {
		t.Errorf("Survivors() on empty result = %v", got)
	}
}

// randomSystem builds an Erdos-Renyi style pair of layers over n nodes with a
// random bijective dependency, plus an initial mask.
func randomSystem(seed int64, n int, density, aliveFrac float64) (*network.InterdependentSystem, []bool) {
	rng := rand.New(rand.NewSource(seed))

	randomEdges := func() []network.Edge {
		var edges []network.Edge
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rng.Float64() < density {
					edges = append(edges, network.Edge{U: u, V: v})
				}
			}
		}
		return edges
	}

	perm := rng.Perm(n)
	inverse := make([]int, n)
	for i, j := range perm {
		inverse[j] = i
	}

	a, _ := network.NewNetworkLayer(network.LayerA, n, randomEdges())
	b, _ := network.NewNetworkLayer(network.LayerB, n, randomEdges())
	dep, _ := network.NewDependencyMapping(perm, inverse)
	sys, _ := network.NewInterdependentSystem(a, b, dep)

	initial := make([]bool, n)
	for i := range initial {
		initial[i] = rng.Float64() < aliveFrac
	}
	return sys, initial
}

func BenchmarkRun(b *testing.B) {
	sys, initial := randomSystem(7, 1000, 0.004, 0.7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(sys, initial); err != nil {
			b.Fatal(err)
		}
	}
}
