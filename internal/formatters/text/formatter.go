// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"finterm/internal/formatters"
	"finterm/internal/session"
	"finterm/internal/statement"
)

// Formatter implements human-readable text output
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with color-coded confidence"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(sess *session.ExtractionSession, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	stats := sess.Summarize()

	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: %d lines, %d matched (%.1f%%)",
		sess.ID, stats.TotalLines, stats.MatchedLines, stats.MatchRate*100)
	if stats.NeedsReview > 0 {
		fmt.Fprintf(&b, ", %d need review", stats.NeedsReview)
	}
	b.WriteString("\n\n")

	shown := 0
	for _, result := range sess.Results {
		if result == nil {
			continue
		}
		if !formatters.Included(options, result.ConfidenceLevel) {
			continue
		}
		shown++
		f.writeResult(&b, result, options)
	}
	if shown == 0 {
		b.WriteString("No matches at the selected confidence levels.\n")
	}

	if options.ShowUnmatched && stats.UnmatchedLines > 0 {
		b.WriteString("\nUnmatched lines:\n")
		for i, result := range sess.Results {
			if result == nil {
				fmt.Fprintf(&b, "  line %d\n", i+1)
			}
		}
	}

	if options.Verbose {
		f.writeSummary(&b, stats)
	}
	return b.String(), nil
}

func (f *Formatter) writeResult(b *strings.Builder, result *statement.MatchResult, options formatters.FormatterOptions) {
	level := confidenceColor(result.ConfidenceLevel).Sprintf("%-6s", result.ConfidenceLevel)
	location := ""
	if result.Line.Raw.Page > 0 {
		location = fmt.Sprintf("p%d:", result.Line.Raw.Page)
	}
	fmt.Fprintf(b, "%s %s%-4d %-34s %-12s %.2f",
		level, location, result.Line.Raw.Line,
		result.Candidate.TermKey, result.Candidate.MatchType, result.Candidate.Confidence)

	if len(result.SignedValues) > 0 {
		values := make([]string, len(result.SignedValues))
		for i, v := range result.SignedValues {
			// Signed values are produced one per detected number, in
			// detection order, so the currency tags line up by index.
			code := ""
			if i < len(result.Line.DetectedNumbers) {
				code = result.Line.DetectedNumbers[i].Currency
			}
			values[i] = displayAmount(v, code)
		}
		fmt.Fprintf(b, "  [%s]", strings.Join(values, ", "))
	}
	b.WriteString("\n")

	if result.NeedsReview {
		fmt.Fprintf(b, "       %s %s\n", color.YellowString("review:"), result.ReviewReason)
	}
	if options.Verbose {
		fmt.Fprintf(b, "       text: %s\n", result.Line.Raw.Text)
		fmt.Fprintf(b, "       matched %q via %s, %d runner-up(s) pruned\n",
			result.Candidate.MatchedKeyword, result.Candidate.MatchType, result.RunnerUpCount)
	}
}

func (f *Formatter) writeSummary(b *strings.Builder, stats session.Stats) {
	b.WriteString("\nBy match type:\n")
	for _, t := range []string{"exact", "acronym", "fuzzy", "semantic", "hierarchical"} {
		if n := stats.ByMatchType[t]; n > 0 {
			fmt.Fprintf(b, "  %-12s %d\n", t, n)
		}
	}
	b.WriteString("By confidence:\n")
	for _, l := range []string{"high", "medium", "low"} {
		if n := stats.ByConfidence[l]; n > 0 {
			fmt.Fprintf(b, "  %-12s %d\n", l, n)
		}
	}
}

// displayAmount renders a value through its currency's display rules
// when the line carried a marker, and as a bare decimal otherwise.
func displayAmount(v decimal.Decimal, code string) string {
	c := money.GetCurrency(code)
	if c == nil {
		return v.String()
	}
	minor := v.Shift(int32(c.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

func confidenceColor(level string) *color.Color {
	switch level {
	case "high":
		return color.New(color.FgGreen)
	case "medium":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
