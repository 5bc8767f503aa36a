// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package golden evaluates the full matching pipeline against a
// hand-labeled reference set and reports precision, recall and F1.
// The harness is a pure evaluation wrapper: it never mutates the
// components it drives.
package golden

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finterm/internal/statement"
)

// Pipeline is the black-box surface the harness drives.
type Pipeline interface {
	MatchLine(ctx context.Context, line statement.RawLine) *statement.MatchResult
}

// Case is one labeled line. An empty ExpectedTerm asserts the line
// must not match anything.
type Case struct {
	Text             string `yaml:"text"`
	ExpectedTerm     string `yaml:"expected_term"`
	ExpectedCategory string `yaml:"expected_category,omitempty"`
	Note             string `yaml:"note,omitempty"`
}

// Set is a versioned golden file.
type Set struct {
	Version int    `yaml:"version"`
	Name    string `yaml:"name,omitempty"`
	Cases   []Case `yaml:"cases"`
}

// LoadSet reads a golden set from a YAML file.
func LoadSet(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading golden set: %w", err)
	}
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing golden set %s: %w", path, err)
	}
	if len(set.Cases) == 0 {
		return nil, fmt.Errorf("golden set %s has no cases", path)
	}
	return &set, nil
}

// CategoryStats breaks the score down per statement category, keyed by
// the expected label's category.
type CategoryStats struct {
	TruePositives  int     `yaml:"true_positives" json:"true_positives"`
	FalsePositives int     `yaml:"false_positives" json:"false_positives"`
	FalseNegatives int     `yaml:"false_negatives" json:"false_negatives"`
	Precision      float64 `yaml:"precision" json:"precision"`
	Recall         float64 `yaml:"recall" json:"recall"`
	F1             float64 `yaml:"f1" json:"f1"`
}

// Mistake records one disagreement for review output.
type Mistake struct {
	Text     string `json:"text"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

// Report is the harness outcome.
type Report struct {
	Cases          int                      `json:"cases"`
	TruePositives  int                      `json:"true_positives"`
	FalsePositives int                      `json:"false_positives"`
	FalseNegatives int                      `json:"false_negatives"`
	Precision      float64                  `json:"precision"`
	Recall         float64                  `json:"recall"`
	F1             float64                  `json:"f1"`
	PerCategory    map[string]CategoryStats `json:"per_category"`
	Mistakes       []Mistake                `json:"mistakes,omitempty"`
}

// MeetsFloor reports whether the run clears an F1 floor. Gating policy
// belongs to the caller; this is just the comparison.
func (r Report) MeetsFloor(floor float64) bool {
	return r.F1 >= floor
}

// Harness runs golden sets through one pipeline.
type Harness struct {
	pipeline Pipeline
}

// NewHarness wraps a pipeline for evaluation.
func NewHarness(p Pipeline) *Harness {
	return &Harness{pipeline: p}
}

// Run feeds every case through the pipeline and scores the outcomes.
func (h *Harness) Run(ctx context.Context, set *Set) (Report, error) {
	report := Report{
		Cases:       len(set.Cases),
		PerCategory: make(map[string]CategoryStats),
	}

	for _, c := range set.Cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := h.pipeline.MatchLine(ctx, statement.RawLine{Text: c.Text})

		got := ""
		if result != nil {
			got = result.Candidate.TermKey
		}

		switch {
		case c.ExpectedTerm == "" && got == "":
			// True negative; contributes to neither precision nor recall.
		case c.ExpectedTerm == "":
			report.FalsePositives++
			report.Mistakes = append(report.Mistakes, Mistake{Text: c.Text, Got: got})
		case got == c.ExpectedTerm:
			report.TruePositives++
			report.bumpCategory(c.ExpectedCategory, func(s *CategoryStats) { s.TruePositives++ })
		case got == "":
			report.FalseNegatives++
			report.bumpCategory(c.ExpectedCategory, func(s *CategoryStats) { s.FalseNegatives++ })
			report.Mistakes = append(report.Mistakes, Mistake{Text: c.Text, Expected: c.ExpectedTerm})
		default:
			// Wrong label: a false positive for what was produced and a
			// miss for what was expected.
			report.FalsePositives++
			report.FalseNegatives++
			report.bumpCategory(c.ExpectedCategory, func(s *CategoryStats) {
				s.FalsePositives++
				s.FalseNegatives++
			})
			report.Mistakes = append(report.Mistakes, Mistake{Text: c.Text, Expected: c.ExpectedTerm, Got: got})
		}
	}

	report.Precision, report.Recall, report.F1 = score(report.TruePositives, report.FalsePositives, report.FalseNegatives)
	for category, stats := range report.PerCategory {
		stats.Precision, stats.Recall, stats.F1 = score(stats.TruePositives, stats.FalsePositives, stats.FalseNegatives)
		report.PerCategory[category] = stats
	}
	return report, nil
}

func (r *Report) bumpCategory(category string, apply func(*CategoryStats)) {
	if category == "" {
		return
	}
	stats := r.PerCategory[category]
	apply(&stats)
	r.PerCategory[category] = stats
}

func score(tp, fp, fn int) (precision, recall, f1 float64) {
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}
