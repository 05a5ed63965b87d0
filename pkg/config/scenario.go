// Package config loads scenario files: a literal two-layer system, the alive
// masks to evaluate against it, and run settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/interdep-cascade/pkg/logging"
	"github.com/dd0wney/interdep-cascade/pkg/network"
	"github.com/dd0wney/interdep-cascade/pkg/validation"
)

// Dependency types.
const (
	DependencyIdentity = "identity"
	DependencyExplicit = "explicit"
)

// Scenario is the top-level scenario file.
type Scenario struct {
	Name   string       `yaml:"scenario_name" validate:"required,max=100"`
	System SystemConfig `yaml:"system"`
	Masks  []MaskConfig `yaml:"masks" validate:"required,min=1,dive"`
	Run    RunSettings  `yaml:"run"`
}

// SystemConfig describes the interdependent system.
type SystemConfig struct {
	NumNodes   int                    `yaml:"num_nodes" validate:"min=0"`
	Layers     map[string]LayerConfig `yaml:"layers" validate:"required,dive"`
	Dependency DependencyConfig       `yaml:"dependency"`
}

// LayerConfig lists the undirected edges of one layer as [u, v] pairs.
type LayerConfig struct {
	Edges [][]int `yaml:"edges" validate:"dive,len=2"`
}

// DependencyConfig selects the dependency mapping. For "explicit", b_to_a may
// be omitted and is then derived from a_to_b.
type DependencyConfig struct {
	Type string `yaml:"type" validate:"omitempty,oneof=identity explicit"`
	AToB []int  `yaml:"a_to_b"`
	BToA []int  `yaml:"b_to_a"`
}

// MaskConfig is one initial alive mask, given either as a full boolean vector
// or as the list of failed node indices. A mask with neither is all alive.
type MaskConfig struct {
	Name   string `yaml:"name" validate:"required"`
	Alive  []bool `yaml:"alive"`
	Failed []int  `yaml:"failed"`
}

// RunSettings controls how the masks are evaluated. An empty LogLevel leaves
// the choice to the LOG_LEVEL environment variable.
type RunSettings struct {
	Workers     int    `yaml:"workers" validate:"min=0"`
	LogLevel    string `yaml:"log_level"`
	MetricsFile string `yaml:"metrics_file"`
}

// Mask is a resolved alive mask.
type Mask struct {
	Name  string
	Alive []bool
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario, fills in defaults and validates it. Unknown keys
// are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("scenario is empty")
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	s.System.Dependency.Type = validation.DefaultOr(s.System.Dependency.Type, DependencyIdentity)
	s.Run.Workers = validation.DefaultOrInt(s.Run.Workers, min(runtime.GOMAXPROCS(0), validation.MaxWorkers))
}

// Validate checks struct tags first, then the rules that span fields.
func (s *Scenario) Validate() error {
	if err := validation.Struct(s); err != nil {
		return err
	}

	n := s.System.NumNodes
	dep := s.System.Dependency

	cv := validation.NewConfigValidator("scenario")
	cv.Custom("scenario_name", func() error { return validation.ValidateName(s.Name) }).
		Custom("system.num_nodes", func() error { return validation.ValidateNodeCount(n) }).
		RangeInt("masks", len(s.Masks), 1, validation.MaxMasks).
		RangeInt("run.workers", s.Run.Workers, 1, validation.MaxWorkers).
		When(s.Run.LogLevel != "", func(v *validation.ConfigValidator) {
			v.Custom("run.log_level", func() error {
				if _, ok := logging.LookupLevel(s.Run.LogLevel); !ok {
					return fmt.Errorf("unknown level %q", s.Run.LogLevel)
				}
				return nil
			})
		})

	for name := range s.System.Layers {
		cv.OneOf("system.layers", name, []string{network.LayerA, network.LayerB})
	}
	for _, name := range []string{network.LayerA, network.LayerB} {
		layer, ok := s.System.Layers[name]
		if !ok {
			cv.Custom("system.layers", func() error {
				return fmt.Errorf("layer %q: %w", name, network.ErrMissingLayer)
			})
			continue
		}
		for i, e := range layer.Edges {
			cv.Custom(fmt.Sprintf("system.layers.%s.edges[%d]", name, i), func() error {
				for _, v := range e {
					if v < 0 || v >= n {
						return fmt.Errorf("endpoint %d is outside [0, %d): %w", v, n, network.ErrEdgeOutOfRange)
					}
				}
				return nil
			})
		}
	}

	cv.When(dep.Type == DependencyExplicit, func(v *validation.ConfigValidator) {
		v.RangeInt("system.dependency.a_to_b", len(dep.AToB), n, n)
		v.When(len(dep.BToA) > 0, func(v *validation.ConfigValidator) {
			v.RangeInt("system.dependency.b_to_a", len(dep.BToA), n, n)
		})
	})
	cv.When(dep.Type == DependencyIdentity, func(v *validation.ConfigValidator) {
		v.Custom("system.dependency", func() error {
			if len(dep.AToB) > 0 || len(dep.BToA) > 0 {
				return errors.New("identity mapping takes no arrays")
			}
			return nil
		})
	})

	seen := make(map[string]bool, len(s.Masks))
	for i, m := range s.Masks {
		field := fmt.Sprintf("masks[%d]", i)
		cv.Custom(field+".name", func() error {
			if err := validation.ValidateName(m.Name); err != nil {
				return err
			}
			if seen[m.Name] {
				return fmt.Errorf("duplicate mask name %q", m.Name)
			}
			seen[m.Name] = true
			return nil
		})
		cv.Custom(field, func() error {
			switch {
			case m.Alive != nil && m.Failed != nil:
				return errors.New("set either alive or failed, not both")
			case m.Alive != nil:
				return validation.ValidateMaskLength(m.Alive, n)
			default:
				return validation.ValidateIndices(m.Failed, n)
			}
		})
	}

	return cv.Validate()
}

// BuildSystem constructs the interdependent system the scenario describes.
// Construction errors wrap the network sentinels, so a non-inverse explicit
// mapping is reported as network.ErrInvalidDependency.
func (s *Scenario) BuildSystem() (*network.InterdependentSystem, error) {
	n := s.System.NumNodes

	layers := make(map[string]*network.NetworkLayer, 2)
	for _, name := range []string{network.LayerA, network.LayerB} {
		layerCfg, ok := s.System.Layers[name]
		if !ok {
			continue
		}
		edges := make([]network.Edge, len(layerCfg.Edges))
		for i, e := range layerCfg.Edges {
			if len(e) != 2 {
				return nil, fmt.Errorf("layer %s edge %d: want 2 endpoints, got %d", name, i, len(e))
			}
			edges[i] = network.Edge{U: e[0], V: e[1]}
		}
		layer, err := network.NewNetworkLayer(name, n, edges)
		if err != nil {
			return nil, err
		}
		layers[name] = layer
	}

	dep, err := s.dependency()
	if err != nil {
		return nil, err
	}
	return network.NewInterdependentSystem(layers[network.LayerA], layers[network.LayerB], dep)
}

func (s *Scenario) dependency() (*network.DependencyMapping, error) {
	depCfg := s.System.Dependency
	switch depCfg.Type {
	case "", DependencyIdentity:
		return network.IdentityDependency(s.System.NumNodes), nil
	case DependencyExplicit:
		if len(depCfg.BToA) > 0 {
			return network.NewDependencyMapping(depCfg.AToB, depCfg.BToA)
		}
		pairs := make([]network.DependencyPair, len(depCfg.AToB))
		for i, b := range depCfg.AToB {
			pairs[i] = network.DependencyPair{A: i, B: b}
		}
		return network.DependencyFromPairs(s.System.NumNodes, pairs)
	default:
		return nil, network.NewError("BuildSystem").Dependency().
			Contextf("unknown type %q", depCfg.Type).Cause(network.ErrInvalidDependency).Err()
	}
}

// ResolveMasks resolves every mask to a full alive vector, in file order.
func (s *Scenario) ResolveMasks() ([]Mask, error) {
	n := s.System.NumNodes
	out := make([]Mask, len(s.Masks))
	for i, m := range s.Masks {
		alive := make([]bool, n)
		switch {
		case m.Alive != nil:
			if err := validation.ValidateMaskLength(m.Alive, n); err != nil {
				return nil, fmt.Errorf("mask %q: %w", m.Name, err)
			}
			copy(alive, m.Alive)
		default:
			if err := validation.ValidateIndices(m.Failed, n); err != nil {
				return nil, fmt.Errorf("mask %q: %w", m.Name, err)
			}
			for j := range alive {
				alive[j] = true
			}
			for _, idx := range m.Failed {
				alive[idx] = false
			}
		}
		out[i] = Mask{Name: m.Name, Alive: alive}
	}
	return out, nil
}

// LogFields returns the fields that identify this scenario in log output.
func (s *Scenario) LogFields() []logging.Field {
	return []logging.Field{
		logging.Scenario(s.Name),
		logging.NodeCount(s.System.NumNodes),
		logging.Count(len(s.Masks)),
	}
}
