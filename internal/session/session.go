// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package session collects per-document extraction results in original
// line order and derives the summary statistics reported downstream.
package session

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"finterm/internal/statement"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a sortable unique session identifier.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ExtractionSession is the ordered sequence of results for one
// document. Slots are fixed at creation so parallel workers can place
// results by line index; nil slots mean the line did not match.
type ExtractionSession struct {
	ID        string
	StartedAt time.Time
	Results   []*statement.MatchResult
}

// New allocates a session with one result slot per input line.
func New(lines int) *ExtractionSession {
	return &ExtractionSession{
		ID:        NewID(),
		StartedAt: time.Now(),
		Results:   make([]*statement.MatchResult, lines),
	}
}

// Place stores a result at its original line index. Out-of-range
// indexes are dropped; a session never grows past its document.
func (s *ExtractionSession) Place(index int, result *statement.MatchResult) {
	if index < 0 || index >= len(s.Results) {
		return
	}
	s.Results[index] = result
}

// Matched returns the non-nil results in line order.
func (s *ExtractionSession) Matched() []*statement.MatchResult {
	out := make([]*statement.MatchResult, 0, len(s.Results))
	for _, r := range s.Results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Stats summarizes one session.
type Stats struct {
	SessionID      string
	TotalLines     int
	MatchedLines   int
	UnmatchedLines int
	MatchRate      float64
	NeedsReview    int

	// Distribution over the layer that produced each accepted match.
	ByMatchType map[string]int
	// high / medium / low confidence buckets.
	ByConfidence map[string]int
	ByCategory   map[string]int
}

// Summarize computes the session statistics.
func (s *ExtractionSession) Summarize() Stats {
	stats := Stats{
		SessionID:    s.ID,
		TotalLines:   len(s.Results),
		ByMatchType:  make(map[string]int),
		ByConfidence: make(map[string]int),
		ByCategory:   make(map[string]int),
	}

	for _, r := range s.Results {
		if r == nil {
			stats.UnmatchedLines++
			continue
		}
		stats.MatchedLines++
		if r.NeedsReview {
			stats.NeedsReview++
		}
		stats.ByMatchType[string(r.Candidate.MatchType)]++
		stats.ByConfidence[r.ConfidenceLevel]++
		stats.ByCategory[r.Candidate.Category]++
	}

	if stats.TotalLines > 0 {
		stats.MatchRate = float64(stats.MatchedLines) / float64(stats.TotalLines)
	}
	return stats
}
