// Package batch fans a set of appraisal inputs out over a fixed worker
// pool and collects per-item outcomes in input order.
package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"capsight/internal/appraisal"
	"capsight/internal/models"
)

// ErrNoUsableInput rejects a batch carrying no inputs at all.
var ErrNoUsableInput = errors.New("batch: no appraisal inputs provided")

// Outcome is the result slot for one input. Exactly one of Report and
// Err is set.
type Outcome struct {
	Index  int
	Report *appraisal.AppraisalReport
	Err    error
}

// Runner executes appraisal batches. The engine is stateless, so a
// single Runner serves concurrent batches.
type Runner struct {
	engine  *appraisal.Engine
	workers int
	logger  *logrus.Logger
}

// NewRunner builds a Runner over the given engine. Worker counts below
// one are raised to one; a nil logger gets a default JSON logger.
func NewRunner(engine *appraisal.Engine, workers int, logger *logrus.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Runner{engine: engine, workers: workers, logger: logger}
}

// Run appraises every input and returns one outcome per input, in
// input order. A failed item records its error and never aborts the
// rest; inputs not yet dispatched when ctx is cancelled record the
// context error. An empty batch returns ErrNoUsableInput.
func (r *Runner) Run(ctx context.Context, inputs []*models.AppraisalInput) ([]Outcome, error) {
	if len(inputs) == 0 {
		return nil, ErrNoUsableInput
	}
	outcomes := make([]Outcome, len(inputs))

	workers := r.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				report, err := r.engine.Run(inputs[idx])
				outcomes[idx] = Outcome{Index: idx, Report: report, Err: err}
			}
		}()
	}

dispatch:
	for idx := range inputs {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range outcomes {
			if outcomes[i].Report == nil && outcomes[i].Err == nil {
				outcomes[i] = Outcome{Index: i, Err: err}
			}
		}
	}

	failures := 0
	for i := range outcomes {
		if outcomes[i].Err != nil {
			failures++
		}
	}
	r.logger.WithFields(logrus.Fields{
		"count":    len(inputs),
		"failures": failures,
		"workers":  workers,
	}).Info("Batch appraisal completed")

	return outcomes, nil
}
