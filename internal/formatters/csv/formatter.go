// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"finterm/internal/formatters"
	"finterm/internal/session"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(sess *session.ExtractionSession, options formatters.FormatterOptions) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"line_index", "page", "line", "term_key", "category",
		"match_type", "confidence", "confidence_level", "values", "needs_review",
	}
	if options.Verbose {
		header = append(header, "matched_keyword", "text")
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}

	for i, result := range sess.Results {
		if result == nil {
			continue
		}
		if !formatters.Included(options, result.ConfidenceLevel) {
			continue
		}

		values := make([]string, len(result.SignedValues))
		for j, v := range result.SignedValues {
			values[j] = v.String()
		}

		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(result.Line.Raw.Page),
			strconv.Itoa(result.Line.Raw.Line),
			result.Candidate.TermKey,
			result.Candidate.Category,
			string(result.Candidate.MatchType),
			strconv.FormatFloat(result.Candidate.Confidence, 'f', 4, 64),
			result.ConfidenceLevel,
			strings.Join(values, ";"),
			strconv.FormatBool(result.NeedsReview),
		}
		if options.Verbose {
			record = append(record, result.Candidate.MatchedKeyword, result.Line.Raw.Text)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return b.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
