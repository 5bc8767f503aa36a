// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statement

import (
	"github.com/shopspring/decimal"
)

// RawLine is one unit of input: a single text line handed over by the
// upstream extraction layer. Immutable once produced.
type RawLine struct {
	Text string
	Page int
	Line int

	// Optional layout hint: horizontal position of the line's first
	// glyph, when the producer knows it. Zero means unknown.
	Column float64
}

// NumberKind classifies a detected numeric token.
type NumberKind string

const (
	NumberAmount     NumberKind = "amount"
	NumberPercentage NumberKind = "percentage"
	NumberRatio      NumberKind = "ratio"
)

// DetectedNumber is a numeric value found in a line, with the raw span
// it was parsed from. Values are exact decimals; financial figures must
// not round-trip through float64.
type DetectedNumber struct {
	Raw      string
	Value    decimal.Decimal
	Kind     NumberKind
	Currency string // ISO 4217 code when a currency marker was present
	Span     Span
}

// Span is a half-open [Start, End) substring range.
type Span struct {
	Start int
	End   int
}

// Contains reports whether s wholly contains other.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Len returns the span width.
func (s Span) Len() int {
	return s.End - s.Start
}

// PreprocessedLine is the normalized form of a RawLine, produced by the
// preprocessor and consumed by the matcher. Not mutated afterward.
type PreprocessedLine struct {
	Raw              RawLine
	CanonicalForm    string
	SignMultiplier   int
	DetectedNumbers  []DetectedNumber
	StrippedNoteRefs []string
	Abbreviations    []string // abbreviations that were expanded
}

// MatchType tags which matching layer produced a candidate.
type MatchType string

const (
	MatchExact        MatchType = "exact"
	MatchAcronym      MatchType = "acronym"
	MatchFuzzy        MatchType = "fuzzy"
	MatchSemantic     MatchType = "semantic"
	MatchHierarchical MatchType = "hierarchical"
)

// rank orders match types by cascade precedence. Lower is stronger.
func (t MatchType) rank() int {
	switch t {
	case MatchExact:
		return 0
	case MatchAcronym:
		return 1
	case MatchFuzzy:
		return 2
	case MatchSemantic:
		return 3
	default:
		return 4
	}
}

// Stronger reports whether t outranks other in the cascade.
func (t MatchType) Stronger(other MatchType) bool {
	return t.rank() < other.rank()
}

// MatchCandidate is one layer's proposal for a line. Ephemeral: it is
// consumed by the conflict resolver and never outlives its line.
type MatchCandidate struct {
	TermKey        string
	MatchedKeyword string
	MatchType      MatchType
	RawScore       float64 // layer-specific: 1.0, ratio/100, cosine
	Confidence     float64 // normalized 0-1 composite
	MatchedSpan    Span    // offsets into CanonicalForm
	Category       string
	Priority       float64
	SignConvention string
}

// MatchResult is the finalized outcome for one line: the winning
// candidate plus the line's numeric payload with sign applied.
type MatchResult struct {
	Candidate       MatchCandidate
	Line            PreprocessedLine
	SignedValues    []decimal.Decimal
	NeedsReview     bool
	ReviewReason    string
	RunnerUpCount   int // candidates pruned during resolution
	ConfidenceLevel string
}

// SignedNumbers applies the line's sign multiplier to its detected
// amounts. Percentages and ratios keep their parsed sign, and values
// already negative from parenthesised print form stay as parsed so a
// paren figure under a "Less:" prefix is not negated twice.
func SignedNumbers(line PreprocessedLine) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(line.DetectedNumbers))
	for _, n := range line.DetectedNumbers {
		v := n.Value
		if n.Kind == NumberAmount && line.SignMultiplier < 0 && v.IsPositive() {
			v = v.Neg()
		}
		values = append(values, v)
	}
	return values
}

// ConfidenceLevel buckets a confidence score the way the summary
// statistics expect: high >= 0.8, medium >= 0.5, low below.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "high"
	case confidence >= 0.5:
		return "medium"
	default:
		return "low"
	}
}
