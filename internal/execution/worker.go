package execution

import (
	"context"
	"errors"
	"sync"
	"time"

	"xbt/internal/config"
	"xbt/internal/domain"
	"xbt/internal/ui"
)

// JobRunner runs one job to completion
type JobRunner interface {
	Run(ctx context.Context, job Job) domain.TestResult
}

var _ Executor = (*WorkerPool)(nil)

// WorkerPool manages a pool of workers for parallel test contexts
type WorkerPool struct {
	config   *config.Config
	runner   JobRunner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner JobRunner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

type indexedResult struct {
	index  int
	result domain.TestResult
}

type indexedJob struct {
	index int
	job   Job
}

// Execute runs all jobs in parallel (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, jobs []Job) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, jobs, false)
}

// errFailFast is the cause recorded on contexts skipped after a failure
var errFailFast = errors.New("stopped after an earlier failure (fail-fast)")

// ExecuteWithOptions runs jobs with optional fail-fast (stop dispatching after the first failure).
// Every job yields exactly one result, in job order. Jobs never dispatched, because of
// fail-fast or because ctx was cancelled, fail with *domain.NotRunError.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, jobs []Job, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(jobs) == 0 {
		return nil, 0, nil
	}

	dispatchCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	queue := make(chan indexedJob)
	results := make(chan indexedResult, len(jobs))

	go func() {
		defer close(queue)
		for i, job := range jobs {
			select {
			case <-dispatchCtx.Done():
				return
			case queue <- indexedJob{index: i, job: job}:
			}
		}
	}()

	var mu sync.Mutex
	var passed, failed int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(len(jobs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				if dispatchCtx.Err() != nil {
					continue
				}
				// A dispatched context runs to completion; the runner detaches it from ctx
				result := wp.runner.Run(ctx, item.job)
				results <- indexedResult{index: item.index, result: result}

				mu.Lock()
				if result.Success {
					passed++
				} else {
					failed++
					if failFast {
						cancel(errFailFast)
					}
				}
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	allResults := make([]domain.TestResult, len(jobs))
	ran := make([]bool, len(jobs))
	for r := range results {
		allResults[r.index] = r.result
		ran[r.index] = true
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	for i, job := range jobs {
		if ran[i] {
			continue
		}
		allResults[i] = domain.TestResult{
			Capability: job.Capability,
			Scenario:   job.Scenario.Name,
			Error:      &domain.NotRunError{Cause: context.Cause(dispatchCtx)},
		}
	}
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) workerCount(jobs int) int {
	n := wp.config.Processors
	if n <= 0 {
		n = 1
	}
	if n > jobs {
		n = jobs
	}
	return n
}
