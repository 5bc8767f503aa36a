// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolver collapses a line's pooled match candidates into at
// most one MatchResult. Rules run in a fixed order: substring
// suppression, per-term deduplication, hierarchical pruning, then
// mandatory-field validation on the survivor.
package resolver

import (
	"fmt"

	"finterm/internal/index"
	"finterm/internal/statement"
)

// Resolver applies the conflict-resolution rules against one index.
// Safe for concurrent use.
type Resolver struct {
	idx *index.TermIndex

	// suppressContained decides whether a contained candidate is
	// discarded in favor of its container. The default implements
	// plain containment; callers needing interval-merge semantics for
	// partially overlapping spans can swap this hook.
	suppressContained func(container, contained statement.MatchCandidate) bool
}

// New builds a Resolver over idx.
func New(idx *index.TermIndex) *Resolver {
	return &Resolver{
		idx: idx,
		suppressContained: func(container, contained statement.MatchCandidate) bool {
			return container.Confidence >= contained.Confidence
		},
	}
}

// Resolve picks the single best candidate for a line, or nil when none
// survives. Candidates are expected in matcher order, strongest first.
func (r *Resolver) Resolve(candidates []statement.MatchCandidate, line statement.PreprocessedLine) *statement.MatchResult {
	if len(candidates) == 0 {
		return nil
	}

	pruned := 0
	survivors := r.suppressSubstrings(candidates, &pruned)
	survivors = dedupeByTerm(survivors, &pruned)
	survivors = r.pruneHierarchy(survivors, line, &pruned)
	if len(survivors) == 0 {
		return nil
	}

	best := survivors[0]
	pruned += len(survivors) - 1

	result := &statement.MatchResult{
		Candidate:     best,
		Line:          line,
		SignedValues:  statement.SignedNumbers(line),
		RunnerUpCount: pruned,
	}
	r.checkMandatoryFields(result)
	result.ConfidenceLevel = statement.ConfidenceLevel(result.Candidate.Confidence)
	return result
}

// suppressSubstrings discards any candidate whose span is wholly
// contained in an earlier-ordered candidate's span with confidence at
// least as high. Earlier order wins on exact ties so resolution stays
// deterministic.
func (r *Resolver) suppressSubstrings(candidates []statement.MatchCandidate, pruned *int) []statement.MatchCandidate {
	kept := make([]statement.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		suppressed := false
		for _, k := range kept {
			if k.MatchedSpan.Contains(c.MatchedSpan) && r.suppressContained(k, c) {
				suppressed = true
				break
			}
		}
		if suppressed {
			*pruned++
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// dedupeByTerm keeps only the strongest candidate per term key. Input
// order is strongest-first, so the first hit wins.
func dedupeByTerm(candidates []statement.MatchCandidate, pruned *int) []statement.MatchCandidate {
	seen := make(map[string]bool, len(candidates))
	kept := candidates[:0]
	for _, c := range candidates {
		if seen[c.TermKey] {
			*pruned++
			continue
		}
		seen[c.TermKey] = true
		kept = append(kept, c)
	}
	return kept
}

// pruneHierarchy drops a parent candidate when its child also survived
// on a separate span and both plainly describe the same figure: the
// spans sit adjacent on the line, or the line carries at most one
// numeric value for the two terms to share.
func (r *Resolver) pruneHierarchy(candidates []statement.MatchCandidate, line statement.PreprocessedLine, pruned *int) []statement.MatchCandidate {
	if len(candidates) < 2 {
		return candidates
	}

	drop := make(map[int]bool)
	for i, child := range candidates {
		term := r.idx.Term(child.TermKey)
		if term == nil || term.ParentKey == "" {
			continue
		}
		for j, parent := range candidates {
			if i == j || drop[j] || parent.TermKey != term.ParentKey {
				continue
			}
			if overlaps(child.MatchedSpan, parent.MatchedSpan) {
				continue
			}
			if adjacent(child.MatchedSpan, parent.MatchedSpan) || len(line.DetectedNumbers) <= 1 {
				drop[j] = true
				*pruned++
			}
		}
	}
	if len(drop) == 0 {
		return candidates
	}

	kept := candidates[:0]
	for i, c := range candidates {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	return kept
}

// checkMandatoryFields demotes a match whose term expects a companion
// numeric value the line does not carry. The match stands; it is
// flagged for review rather than rejected.
func (r *Resolver) checkMandatoryFields(result *statement.MatchResult) {
	term := r.idx.Term(result.Candidate.TermKey)
	if term == nil || !term.RequiresValue {
		return
	}
	if len(result.Line.DetectedNumbers) > 0 {
		return
	}
	result.Candidate.Confidence *= 0.8
	result.NeedsReview = true
	result.ReviewReason = fmt.Sprintf("term %q expects a numeric value; none detected on the line", term.CanonicalKey)
}

func overlaps(a, b statement.Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// adjacent reports whether two non-overlapping spans sit within a few
// characters of each other on the line.
func adjacent(a, b statement.Span) bool {
	gap := a.Start - b.End
	if b.Start > a.End {
		gap = b.Start - a.End
	}
	return gap >= 0 && gap <= 3
}
