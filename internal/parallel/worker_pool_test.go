// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"finterm/internal/statement"
)

// echoMatch tags each result with its input line so reassembly order can
// be verified.
func echoMatch(_ context.Context, line statement.RawLine) *statement.MatchResult {
	if line.Line%3 == 0 {
		return nil
	}
	return &statement.MatchResult{
		Line: statement.PreprocessedLine{Raw: line},
	}
}

func TestRun_PreservesLineOrder(t *testing.T) {
	lines := make([]statement.RawLine, 100)
	for i := range lines {
		lines[i] = statement.RawLine{Text: fmt.Sprintf("line %d", i), Line: i}
	}

	results, err := Run(context.Background(), lines, 4, nil, echoMatch)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(lines) {
		t.Fatalf("got %d results, want %d", len(results), len(lines))
	}

	for i, r := range results {
		if i%3 == 0 {
			if r != nil {
				t.Errorf("line %d should be unmatched", i)
			}
			continue
		}
		if r == nil {
			t.Errorf("line %d missing", i)
			continue
		}
		if r.Line.Raw.Line != i {
			t.Errorf("slot %d holds line %d", i, r.Line.Raw.Line)
		}
	}
}

func TestRun_EmptyInput(t *testing.T) {
	results, err := Run(context.Background(), nil, 4, nil, echoMatch)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func TestRun_Cancellation(t *testing.T) {
	lines := make([]statement.RawLine, 1000)
	for i := range lines {
		lines[i] = statement.RawLine{Line: i}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := func(ctx context.Context, line statement.RawLine) *statement.MatchResult {
		time.Sleep(time.Millisecond)
		return echoMatch(ctx, line)
	}

	start := time.Now()
	_, err := Run(ctx, lines, 2, nil, slow)
	if err == nil {
		t.Fatal("expected context error")
	}
	// An aborted run must not grind through the whole batch.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancelled run took %v", elapsed)
	}
}

func TestNewWorkerPool_DefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0, nil)
	if pool.workers != runtime.NumCPU() {
		t.Errorf("workers = %d, want %d", pool.workers, runtime.NumCPU())
	}
	pool = NewWorkerPool(3, nil)
	if pool.workers != 3 {
		t.Errorf("workers = %d, want 3", pool.workers)
	}
}
