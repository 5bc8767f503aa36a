// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans a document's lines out over a worker pool and
// reassembles results in original line order. Matching is CPU-bound
// with no I/O, so worker count tracks available cores.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"time"

	"finterm/internal/observability"
	"finterm/internal/statement"
)

// MatchFunc runs the full pipeline for one line. A nil result means
// the line did not match; that is an outcome, not an error.
type MatchFunc func(ctx context.Context, line statement.RawLine) *statement.MatchResult

// Job is one line tagged with its original index.
type Job struct {
	Index int
	Line  statement.RawLine
}

// Result carries a finished line back with its index for reassembly.
type Result struct {
	Index    int
	Match    *statement.MatchResult
	Duration time.Duration
}

// WorkerPool manages parallel line matching.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	observer *observability.StandardObserver
}

// NewWorkerPool creates a pool. A non-positive worker count falls back
// to the CPU count.
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		observer: observer,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context, match MatchFunc) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, match)
	}
}

// Close signals that no further jobs will be submitted and, once the
// workers drain, closes the results channel.
func (wp *WorkerPool) Close() {
	close(wp.jobs)
	go func() {
		wp.wg.Wait()
		close(wp.results)
	}()
}

// Submit queues one job, giving up when the context is cancelled.
func (wp *WorkerPool) Submit(ctx context.Context, job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-ctx.Done():
		return false
	}
}

// Results returns the results channel.
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

func (wp *WorkerPool) worker(ctx context.Context, match MatchFunc) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		result := &Result{
			Index:    job.Index,
			Match:    match(ctx, job.Line),
			Duration: time.Since(start),
		}
		select {
		case wp.results <- result:
		case <-ctx.Done():
			return
		}
	}
}

// Run matches a batch of lines in parallel and returns results indexed
// by original line position. Cancellation is honored between
// dispatches: an aborted run returns the context error along with
// whatever completed, it never waits for the full batch.
func Run(ctx context.Context, lines []statement.RawLine, workers int, observer *observability.StandardObserver, match MatchFunc) ([]*statement.MatchResult, error) {
	ordered := make([]*statement.MatchResult, len(lines))
	if len(lines) == 0 {
		return ordered, nil
	}

	var finishTiming func(bool, map[string]interface{})
	if observer != nil {
		finishTiming = observer.StartTiming("parallel", "match_batch", "")
	}

	pool := NewWorkerPool(workers, observer)
	pool.Start(ctx, match)

	go func() {
		defer pool.Close()
		for i, line := range lines {
			if !pool.Submit(ctx, &Job{Index: i, Line: line}) {
				return
			}
		}
	}()

	matched := 0
	for result := range pool.Results() {
		ordered[result.Index] = result.Match
		if result.Match != nil {
			matched++
		}
	}

	err := ctx.Err()
	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{
			"line_count":  len(lines),
			"match_count": matched,
			"workers":     pool.workers,
		})
	}
	return ordered, err
}
