// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the pipeline components into the engine facade
// shared by the CLI and library callers. The active index, matcher and
// resolver travel together behind an atomic pointer so a taxonomy
// reload swaps the whole pipeline without disturbing in-flight matches.
package core

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"finterm/internal/config"
	"finterm/internal/embedder"
	"finterm/internal/golden"
	"finterm/internal/index"
	"finterm/internal/matcher"
	"finterm/internal/observability"
	"finterm/internal/parallel"
	"finterm/internal/preprocess"
	"finterm/internal/resolver"
	"finterm/internal/session"
	"finterm/internal/statement"
	"finterm/internal/taxonomy"
)

// Engine is the term-resolution facade.
type Engine struct {
	cfg      *config.Config
	observer *observability.StandardObserver
	pre      *preprocess.Preprocessor
	emb      embedder.Embedder

	state atomic.Pointer[pipeline]
}

// pipeline is one immutable generation of the matching stack.
type pipeline struct {
	idx      *index.TermIndex
	matcher  *matcher.Matcher
	resolver *resolver.Resolver
}

// NewEngine builds an engine from configuration. The taxonomy comes
// from the configured path, or the built-in term set when none is
// given; a bad taxonomy fails construction since an invalid index
// cannot safely serve any match.
func NewEngine(ctx context.Context, cfg *config.Config, observer *observability.StandardObserver) (*Engine, error) {
	if cfg == nil {
		loaded, err := config.LoadConfig("")
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var emb embedder.Embedder = embedder.Disabled()
	if cfg.Embedding.Enabled {
		emb = embedder.NewGemini(cfg.Embedding.Model, cfg.Embedding.MaxInFlight)
	}

	e := &Engine{
		cfg:      cfg,
		observer: observer,
		pre:      preprocess.New(),
		emb:      emb,
	}

	terms, err := e.loadTaxonomy()
	if err != nil {
		return nil, err
	}
	if err := e.Reload(ctx, terms); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadTaxonomy() ([]taxonomy.TermDefinition, error) {
	if e.cfg.Taxonomy.Path == "" {
		return taxonomy.Default(), nil
	}
	terms, err := taxonomy.Load(e.cfg.Taxonomy.Path)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy: %w", err)
	}
	return terms, nil
}

// Reload rebuilds the index for a new term set and atomically swaps it
// in. Concurrent matches keep using the previous generation until they
// finish.
func (e *Engine) Reload(ctx context.Context, terms []taxonomy.TermDefinition) error {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("engine", "build_index", "")
	}

	filtered := taxonomy.FilterStandard(terms, e.cfg.Defaults.Standard)
	idx, err := index.Build(ctx, filtered, e.pre, e.emb)
	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{
			"terms": len(terms),
		})
	}
	if err != nil {
		return err
	}

	warn := func(string) {}
	if e.observer != nil {
		warn = e.observer.Warn
	}
	th := matcher.Thresholds{
		TokenSetRatio:  e.cfg.Thresholds.TokenSetRatio,
		PartialRatio:   e.cfg.Thresholds.PartialRatio,
		EditRatio:      e.cfg.Thresholds.EditRatio,
		Semantic:       e.cfg.Thresholds.Semantic,
		AcronymScore:   e.cfg.Thresholds.AcronymScore,
		ChildBoost:     e.cfg.Thresholds.ChildBoost,
		FuzzyWordDelta: e.cfg.Thresholds.FuzzyWordDelta,
	}

	e.state.Store(&pipeline{
		idx:      idx,
		matcher:  matcher.New(idx, e.emb, th, warn),
		resolver: resolver.New(idx),
	})
	return nil
}

// Index returns the active term index.
func (e *Engine) Index() *index.TermIndex {
	return e.state.Load().idx
}

// Preprocess normalizes one text line.
func (e *Engine) Preprocess(text string) statement.PreprocessedLine {
	return e.pre.PreprocessText(text)
}

// MatchLine runs the full pipeline for one raw line. A nil result
// means the line needs manual review, not that anything failed.
func (e *Engine) MatchLine(ctx context.Context, raw statement.RawLine) *statement.MatchResult {
	p := e.state.Load()
	line := e.pre.Preprocess(raw)
	if line.CanonicalForm == "" {
		return nil
	}
	candidates := p.matcher.Match(ctx, line)
	return p.resolver.Resolve(candidates, line)
}

// MatchText is the single-string convenience form of MatchLine.
func (e *Engine) MatchText(ctx context.Context, text string) *statement.MatchResult {
	return e.MatchLine(ctx, statement.RawLine{Text: text})
}

// MatchDocument matches a document's lines in parallel and returns the
// session with results in original line order.
func (e *Engine) MatchDocument(ctx context.Context, lines []statement.RawLine) (*session.ExtractionSession, error) {
	sess := session.New(len(lines))

	var finishTiming func(bool, map[string]interface{})
	var finishStage func(bool, string)
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("engine", "match_document", sess.ID)
		if debug := e.observer.DebugObserver; debug != nil {
			finishStage = debug.StartStage("match_document", sess.ID)
		}
	}

	results, err := parallel.Run(ctx, lines, e.cfg.Defaults.Workers, e.observer, e.MatchLine)
	for i, r := range results {
		sess.Place(i, r)
	}

	if e.observer != nil && e.observer.DebugObserver != nil {
		debug := e.observer.DebugObserver
		for i, r := range results {
			if r == nil {
				debug.TraceLine(i, lines[i].Text, "", 0)
				continue
			}
			debug.TraceLine(i, lines[i].Text, r.Candidate.TermKey, r.Candidate.Confidence)
		}
	}

	if finishTiming != nil {
		stats := sess.Summarize()
		if finishStage != nil {
			finishStage(err == nil, fmt.Sprintf("%d/%d lines matched", stats.MatchedLines, stats.TotalLines))
		}
		finishTiming(err == nil, map[string]interface{}{
			"line_count":  stats.TotalLines,
			"match_count": stats.MatchedLines,
		})
	}
	return sess, err
}

// Validate runs a golden set through the pipeline and reports scores.
func (e *Engine) Validate(ctx context.Context, set *golden.Set) (golden.Report, error) {
	return golden.NewHarness(e).Run(ctx, set)
}

// ParseConfidenceLevels converts a comma-separated confidence level string into a map.
// "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		result["high"] = true
		result["medium"] = true
		result["low"] = true
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}

// FilterByConfidence drops results outside the enabled confidence
// levels. Unmatched slots stay nil so line order is preserved.
func FilterByConfidence(results []*statement.MatchResult, enabled map[string]bool) []*statement.MatchResult {
	out := make([]*statement.MatchResult, len(results))
	for i, r := range results {
		if r != nil && enabled[r.ConfidenceLevel] {
			out[i] = r
		}
	}
	return out
}
