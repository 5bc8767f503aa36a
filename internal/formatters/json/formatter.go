// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"finterm/internal/formatters"
	"finterm/internal/session"
	"finterm/internal/statement"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type response struct {
	SessionID string        `json:"session_id"`
	Stats     session.Stats `json:"stats"`
	Results   []resultEntry `json:"results"`
}

type resultEntry struct {
	LineIndex      int      `json:"line_index"`
	Page           int      `json:"page,omitempty"`
	Line           int      `json:"line,omitempty"`
	Text           string   `json:"text"`
	TermKey        string   `json:"term_key"`
	Category       string   `json:"category"`
	MatchType      string   `json:"match_type"`
	MatchedKeyword string   `json:"matched_keyword"`
	Confidence     float64  `json:"confidence"`
	Level          string   `json:"confidence_level"`
	SignConvention string   `json:"sign_convention,omitempty"`
	Values         []string `json:"values,omitempty"`
	NeedsReview    bool     `json:"needs_review,omitempty"`
	ReviewReason   string   `json:"review_reason,omitempty"`
}

func (f *Formatter) Format(sess *session.ExtractionSession, options formatters.FormatterOptions) (string, error) {
	resp := response{
		SessionID: sess.ID,
		Stats:     sess.Summarize(),
		Results:   []resultEntry{},
	}

	for i, result := range sess.Results {
		if result == nil {
			continue
		}
		if !formatters.Included(options, result.ConfidenceLevel) {
			continue
		}
		resp.Results = append(resp.Results, toEntry(i, result))
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting JSON: %w", err)
	}
	return string(data), nil
}

func toEntry(index int, result *statement.MatchResult) resultEntry {
	entry := resultEntry{
		LineIndex:      index,
		Page:           result.Line.Raw.Page,
		Line:           result.Line.Raw.Line,
		Text:           result.Line.Raw.Text,
		TermKey:        result.Candidate.TermKey,
		Category:       result.Candidate.Category,
		MatchType:      string(result.Candidate.MatchType),
		MatchedKeyword: result.Candidate.MatchedKeyword,
		Confidence:     result.Candidate.Confidence,
		Level:          result.ConfidenceLevel,
		SignConvention: result.Candidate.SignConvention,
		NeedsReview:    result.NeedsReview,
		ReviewReason:   result.ReviewReason,
	}
	for _, v := range result.SignedValues {
		entry.Values = append(entry.Values, v.String())
	}
	return entry
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
