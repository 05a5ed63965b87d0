package cascade

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/interdep-cascade/pkg/logging"
	"github.com/dd0wney/interdep-cascade/pkg/network"
	"github.com/dd0wney/interdep-cascade/pkg/parallel"
)

// BatchItem is the outcome of one mask in a batch. Exactly one of Result and
// Err is set.
type BatchItem struct {
	Index    int
	Result   *Result
	Err      error
	Duration time.Duration
}

// BatchSummary aggregates the successful items of a batch. The m_infty
// statistics are zero when nothing succeeded.
type BatchSummary struct {
	Succeeded  int     `json:"succeeded"`
	Failed     int     `json:"failed"`
	MeanMInfty float64 `json:"mean_m_infty"`
	MinMInfty  float64 `json:"min_m_infty"`
	MaxMInfty  float64 `json:"max_m_infty"`
}

// BatchResult holds every item of a batch in input order.
type BatchResult struct {
	RunID    string
	Items    []BatchItem
	Summary  BatchSummary
	Duration time.Duration
}

// RunBatch evaluates every mask against system on a pool of workers.
//
// A mask that fails its preconditions is recorded on its item and does not
// stop the batch. If ctx is done before every mask was scheduled, the
// unscheduled items carry ctx.Err(), already running cascades finish, and
// RunBatch returns the partial result together with the context error.
func (e *Engine) RunBatch(ctx context.Context, system *network.InterdependentSystem, masks [][]bool, workers int) (*BatchResult, error) {
	if system == nil {
		return nil, network.NewError("RunBatch").System().
			Contextf("nil system").Cause(network.ErrMissingLayer).Err()
	}

	runID := uuid.NewString()
	logger := e.logger.With(logging.RunID(runID))
	timer := logging.StartTimer(logger, "batch finished", logging.Count(len(masks)))

	pool, err := parallel.NewWorkerPool(workers, parallel.WithPanicHandler(func(r any) {
		logger.Error("cascade worker panicked", logging.Any("panic", r))
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to start workers: %w", err)
	}
	logger.Info("batch started", logging.Count(len(masks)), logging.Int("workers", pool.Workers()))

	items := make([]BatchItem, len(masks))
	var scheduleErr error
	for i := range masks {
		items[i].Index = i
		if scheduleErr != nil {
			items[i].Err = scheduleErr
			continue
		}
		item := &items[i]
		mask := masks[i]
		if err := pool.SubmitContext(ctx, func() { e.runItem(item, system, mask) }); err != nil {
			scheduleErr = err
			item.Err = err
		}
	}
	pool.Close()

	result := &BatchResult{
		RunID:   runID,
		Items:   items,
		Summary: summarize(items),
	}
	result.Duration = timer.End(
		logging.Int("succeeded", result.Summary.Succeeded),
		logging.Int("failed", result.Summary.Failed),
		logging.Float64("mean_m_infty", result.Summary.MeanMInfty),
	)

	if e.metrics != nil {
		for _, it := range items {
			e.metrics.RecordBatchItem(it.Err)
		}
		e.metrics.RecordBatch(result.Duration, result.Summary.MeanMInfty)
	}

	if scheduleErr != nil {
		return result, fmt.Errorf("batch %s interrupted: %w", runID, scheduleErr)
	}
	return result, nil
}

// runItem evaluates one mask in place. The item keeps ErrWorkerPanic if the
// evaluation never returns.
func (e *Engine) runItem(item *BatchItem, system *network.InterdependentSystem, mask []bool) {
	if e.metrics != nil {
		e.metrics.BatchInFlight.Inc()
		defer e.metrics.BatchInFlight.Dec()
	}

	item.Err = ErrWorkerPanic
	start := time.Now()
	item.Result, item.Err = e.Run(system, mask)
	item.Duration = time.Since(start)
}

func summarize(items []BatchItem) BatchSummary {
	var s BatchSummary
	var sum float64
	s.MinMInfty = math.Inf(1)
	s.MaxMInfty = math.Inf(-1)

	for _, it := range items {
		if it.Err != nil || it.Result == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		m := it.Result.MInfty
		sum += m
		s.MinMInfty = math.Min(s.MinMInfty, m)
		s.MaxMInfty = math.Max(s.MaxMInfty, m)
	}

	if s.Succeeded == 0 {
		s.MinMInfty, s.MaxMInfty = 0, 0
		return s
	}
	s.MeanMInfty = sum / float64(s.Succeeded)
	return s
}
