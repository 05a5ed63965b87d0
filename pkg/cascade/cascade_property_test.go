package cascade

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/interdep-cascade/pkg/algorithms"
	"github.com/dd0wney/interdep-cascade/pkg/network"
)

// TestCascadeInvariants checks the fixed-point properties over random systems.
func TestCascadeInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150

	properties := gopter.NewProperties(parameters)

	properties.Property("history is non-increasing", prop.ForAll(
		func(seed int64, n int, density, aliveFrac float64) bool {
			sys, initial := randomSystem(seed, n, density, aliveFrac)
			res, err := Run(sys, initial)
			if err != nil {
				return false
			}
			for i := 1; i < len(res.History); i++ {
				prev, cur := res.History[i-1], res.History[i]
				if cur.AliveA > prev.AliveA || cur.AliveB > prev.AliveB || cur.MCGC > prev.MCGC {
					return false
				}
			}
			return len(res.History) <= n+2
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.Float64Range(0, 0.3),
		gen.Float64Range(0, 1),
	))

	properties.Property("final mask is a subset of the initial mask", prop.ForAll(
		func(seed int64, n int, density, aliveFrac float64) bool {
			sys, initial := randomSystem(seed, n, density, aliveFrac)
			res, err := Run(sys, initial)
			if err != nil {
				return false
			}
			for i, ok := range res.FinalAlive {
				if ok && !initial[i] {
					return false
				}
			}
			return res.SurvivorCount() == res.History[len(res.History)-1].MCGC
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.Float64Range(0, 0.3),
		gen.Float64Range(0, 1),
	))

	// With an identity mapping both layers converge to the same mask, so the
	// final mask itself must be a fixed point of each layer's extractor.
	properties.Property("giant component is stable at convergence", prop.ForAll(
		func(seed int64, n int, density, aliveFrac float64) bool {
			sys, initial := randomSystem(seed, n, density, aliveFrac)
			sys.Dependency = network.IdentityDependency(n)
			res, err := Run(sys, initial)
			if err != nil {
				return false
			}
			layerA, layerB, _ := sys.Layers()
			for _, l := range []*network.NetworkLayer{layerA, layerB} {
				if !reflect.DeepEqual(algorithms.LargestComponent(n, l.Edges, res.FinalAlive), res.FinalAlive) {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.Float64Range(0, 0.3),
		gen.Float64Range(0, 1),
	))

	properties.Property("rerunning from the fixed point changes nothing", prop.ForAll(
		func(seed int64, n int, density, aliveFrac float64) bool {
			sys, initial := randomSystem(seed, n, density, aliveFrac)
			sys.Dependency = network.IdentityDependency(n)
			first, err := Run(sys, initial)
			if err != nil {
				return false
			}
			second, err := Run(sys, first.FinalAlive)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first.FinalAlive, second.FinalAlive) && second.Iterations() == 1
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.Float64Range(0, 0.3),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}
