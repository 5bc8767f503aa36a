// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finterm/internal/config"
	"finterm/internal/extract"
	"finterm/internal/golden"
	"finterm/internal/observability"
	"finterm/internal/statement"
	"finterm/internal/taxonomy"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestEngine_MatchText(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		text    string
		termKey string
	}{
		{"Total Revenue 10,000", "total_revenue"},
		{"Less: Cost of goods sold (4,500)", "cost_of_goods_sold"},
		{"Property, Plant and Equipment 12,345", "property_plant_equipment"},
		{"PPE 12,345", "property_plant_equipment"},
		{"Net cash from operating activities 3,200", "operating_cash_flow"},
	}

	for _, tt := range tests {
		result := engine.MatchText(ctx, tt.text)
		if result == nil {
			t.Errorf("MatchText(%q) = nil, want %s", tt.text, tt.termKey)
			continue
		}
		if result.Candidate.TermKey != tt.termKey {
			t.Errorf("MatchText(%q) = %s, want %s", tt.text, result.Candidate.TermKey, tt.termKey)
		}
	}
}

func TestEngine_MatchText_NoMatch(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	headers := []string{
		"",
		"   ",
		"For the year ended 31 March 2026",
		// "as at" must not read as an acronym for any term.
		"Balance Sheet as at 31 March 2026",
	}
	for _, text := range headers {
		if result := engine.MatchText(ctx, text); result != nil {
			t.Errorf("MatchText(%q) = %v, want nil", text, result.Candidate)
		}
	}
}

func TestEngine_MatchText_SignedValues(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.MatchText(context.Background(), "Less: Provision for doubtful debts 1,234")
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Candidate.TermKey != "provisions" {
		t.Errorf("term = %s, want provisions", result.Candidate.TermKey)
	}
	if len(result.SignedValues) != 1 || result.SignedValues[0].String() != "-1234" {
		t.Errorf("signed values = %v, want [-1234]", result.SignedValues)
	}
}

func TestEngine_MatchDocument(t *testing.T) {
	engine := newTestEngine(t)

	doc := `Balance Sheet as at 31 March 2026
Total Non-Current Assets 9,87,650
Inventories 4,50,000
Trade Receivables 2,10,000
Cash and cash equivalents 1,05,000
Total Current Assets 7,65,000
Total Assets 17,52,650`

	lines := extract.TextLines(doc)
	sess, err := engine.MatchDocument(context.Background(), lines)
	if err != nil {
		t.Fatalf("MatchDocument: %v", err)
	}

	if len(sess.Results) != len(lines) {
		t.Fatalf("got %d slots, want %d", len(sess.Results), len(lines))
	}

	wantByIndex := map[int]string{
		1: "total_non_current_assets",
		2: "inventories",
		3: "trade_receivables",
		4: "cash_and_equivalents",
		5: "total_current_assets",
		6: "total_assets",
	}
	for i, want := range wantByIndex {
		r := sess.Results[i]
		if r == nil {
			t.Errorf("line %d unmatched, want %s", i, want)
			continue
		}
		if r.Candidate.TermKey != want {
			t.Errorf("line %d = %s, want %s", i, r.Candidate.TermKey, want)
		}
	}

	stats := sess.Summarize()
	if stats.MatchedLines != 6 {
		t.Errorf("matched = %d, want 6", stats.MatchedLines)
	}
}

func TestEngine_TaxonomyFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")

	// A file that leaves priority, label and sign to their defaults must
	// still produce full-strength exact matches.
	content := `
terms:
  - key: total_assets
    category: balance_sheet_assets
    keywords:
      unified: ["total assets"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write taxonomy: %v", err)
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.Taxonomy.Path = path

	engine, err := NewEngine(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result := engine.MatchText(context.Background(), "Total Assets 1,234")
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Candidate.Confidence < 0.99 {
		t.Errorf("confidence = %v, want 1.0 for an exact hit at default priority", result.Candidate.Confidence)
	}
	if result.ConfidenceLevel != "high" {
		t.Errorf("level = %q, want high", result.ConfidenceLevel)
	}
}

func TestEngine_Reload(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	// A narrowed taxonomy swaps in atomically and changes outcomes.
	narrow := taxonomy.Normalize([]taxonomy.TermDefinition{{
		CanonicalKey: "total_revenue",
		Category:     taxonomy.CategoryIncomeStatement,
		KeywordSets:  map[string][]string{taxonomy.StandardUnified: {"total revenue"}},
		Priority:     2.0,
	}})
	if err := engine.Reload(ctx, narrow); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if result := engine.MatchText(ctx, "Total Revenue 10,000"); result == nil {
		t.Error("reloaded taxonomy should still match total revenue")
	}
	if result := engine.MatchText(ctx, "Inventories 500"); result != nil {
		t.Errorf("dropped term still matches: %v", result.Candidate)
	}
}

func TestEngine_DebugTrace(t *testing.T) {
	var buf bytes.Buffer
	debug := observability.NewDebugObserver(&buf)
	observer := debug.StandardObserver
	observer.DebugObserver = debug

	engine, err := NewEngine(context.Background(), nil, observer)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	lines := []statement.RawLine{
		{Text: "Total Revenue 1,000", Line: 1},
		{Text: "Balance Sheet as at 31 March 2026", Line: 2},
	}
	if _, err := engine.MatchDocument(context.Background(), lines); err != nil {
		t.Fatalf("MatchDocument: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"> match_document", "total_revenue", "no match", "1/2 lines matched"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in debug trace:\n%s", want, out)
		}
	}
}

func TestEngine_Validate(t *testing.T) {
	engine := newTestEngine(t)

	set := &golden.Set{Cases: []golden.Case{
		{Text: "Total Revenue 1,000", ExpectedTerm: "total_revenue", ExpectedCategory: "income_statement"},
		{Text: "Inventories 500", ExpectedTerm: "inventories", ExpectedCategory: "balance_sheet_assets"},
		{Text: "Goodwill 2,300", ExpectedTerm: "goodwill", ExpectedCategory: "balance_sheet_assets"},
	}}

	report, err := engine.Validate(context.Background(), set)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.F1 != 1.0 {
		t.Errorf("F1 = %v, want 1.0; mistakes: %v", report.F1, report.Mistakes)
	}
	if !report.MeetsFloor(0.9) {
		t.Error("expected report to clear the default floor")
	}
}

func TestParseConfidenceLevels(t *testing.T) {
	tests := []struct {
		input string
		want  map[string]bool
	}{
		{"all", map[string]bool{"high": true, "medium": true, "low": true}},
		{"", map[string]bool{"high": true, "medium": true, "low": true}},
		{"high", map[string]bool{"high": true, "medium": false, "low": false}},
		{"High, Medium", map[string]bool{"high": true, "medium": true, "low": false}},
		{"bogus", map[string]bool{"high": false, "medium": false, "low": false}},
	}

	for _, tt := range tests {
		got := ParseConfidenceLevels(tt.input)
		for level, want := range tt.want {
			if got[level] != want {
				t.Errorf("ParseConfidenceLevels(%q)[%s] = %v, want %v", tt.input, level, got[level], want)
			}
		}
	}
}

func TestFilterByConfidence(t *testing.T) {
	results := []*statement.MatchResult{
		{ConfidenceLevel: "high"},
		nil,
		{ConfidenceLevel: "low"},
	}

	out := FilterByConfidence(results, map[string]bool{"high": true})
	if len(out) != 3 {
		t.Fatalf("filter changed slot count: %d", len(out))
	}
	if out[0] == nil || out[1] != nil || out[2] != nil {
		t.Errorf("filter = %v", out)
	}
}

// documentLines builds a representative statement document by cycling
// real line shapes: matched items, headers, and noise.
func documentLines(n int) []statement.RawLine {
	shapes := []string{
		"Total Revenue 10,00,000",
		"Less: Cost of goods sold (4,50,000)",
		"Employee benefits expense 1,20,000",
		"Depreciation and amortization 80,000",
		"Profit before tax 3,50,000",
		"Propertv, Plant and Equipment 12,345",
		"For the year ended 31 March 2026",
		"Trade Receivables 2,10,000",
		"Note 14: Contingent liabilities",
		"Cash and cash equivalents 1,05,000",
	}
	lines := make([]statement.RawLine, n)
	for i := range lines {
		lines[i] = statement.RawLine{Text: shapes[i%len(shapes)], Line: i + 1}
	}
	return lines
}

// A thousand-line document must clear well under a second end to end.
func TestEngine_Throughput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping throughput check in short mode")
	}
	engine := newTestEngine(t)
	lines := documentLines(1000)

	start := time.Now()
	sess, err := engine.MatchDocument(context.Background(), lines)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("MatchDocument: %v", err)
	}
	if got := sess.Summarize().MatchedLines; got == 0 {
		t.Fatal("no lines matched")
	}
	if elapsed > time.Second {
		t.Errorf("1000 lines took %v, want < 1s", elapsed)
	}
}

func BenchmarkMatchDocument(b *testing.B) {
	engine, err := NewEngine(context.Background(), nil, nil)
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	lines := documentLines(1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.MatchDocument(context.Background(), lines); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatchLine(b *testing.B) {
	engine, err := NewEngine(context.Background(), nil, nil)
	if err != nil {
		b.Fatalf("NewEngine: %v", err)
	}
	raw := statement.RawLine{Text: "Total Non-Current Assets 9,87,650", Line: 1}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		engine.MatchLine(context.Background(), raw)
	}
}
