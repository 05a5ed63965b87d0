package cascade

import (
	"time"

	"github.com/dd0wney/interdep-cascade/pkg/logging"
	"github.com/dd0wney/interdep-cascade/pkg/metrics"
	"github.com/dd0wney/interdep-cascade/pkg/network"
)

// Engine runs cascades with logging and metrics attached. It holds no
// per-run state and may be shared between goroutines.
type Engine struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records every run in reg. Without it no metrics are recorded.
func WithMetrics(reg *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = reg
	}
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Logger returns the engine's logger.
func (e *Engine) Logger() logging.Logger {
	return e.logger
}

// Run evaluates one cascade. See the package-level Run.
func (e *Engine) Run(system *network.InterdependentSystem, initialAlive []bool) (*Result, error) {
	start := time.Now()
	res, err := Run(system, initialAlive)
	elapsed := time.Since(start)

	if err != nil {
		e.record(err, elapsed, nil)
		e.logger.Debug("cascade rejected", logging.Error(err), logging.Latency(elapsed))
		return nil, err
	}

	e.record(nil, elapsed, res)
	e.logger.Debug("cascade converged",
		logging.NodeCount(len(res.FinalAlive)),
		logging.Iterations(res.Iterations()),
		logging.Survivors(res.SurvivorCount()),
		logging.MInfty(res.MInfty),
		logging.Latency(elapsed),
	)
	return res, nil
}

func (e *Engine) record(err error, elapsed time.Duration, res *Result) {
	if e.metrics == nil {
		return
	}
	if err != nil {
		e.metrics.RecordCascade(err, elapsed, 0, 0)
		return
	}
	e.metrics.RecordCascade(nil, elapsed, res.Iterations(), res.MInfty)
}
