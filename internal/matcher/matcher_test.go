// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"context"
	"reflect"
	"testing"

	"finterm/internal/embedder"
	"finterm/internal/index"
	"finterm/internal/preprocess"
	"finterm/internal/statement"
	"finterm/internal/taxonomy"
)

func newTestMatcher(t *testing.T) (*Matcher, *preprocess.Preprocessor) {
	t.Helper()
	pre := preprocess.New()
	idx, err := index.Build(context.Background(), taxonomy.Default(), pre, embedder.Disabled())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return New(idx, nil, Thresholds{}, nil), pre
}

func matchText(t *testing.T, m *Matcher, pre *preprocess.Preprocessor, text string) []statement.MatchCandidate {
	t.Helper()
	return m.Match(context.Background(), pre.PreprocessText(text))
}

func TestMatch_ExactPhrase(t *testing.T) {
	m, pre := newTestMatcher(t)

	candidates := matchText(t, m, pre, "Total Assets 4,50,000")
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}

	best := candidates[0]
	if best.TermKey != "total_assets" {
		t.Errorf("best = %q, want total_assets", best.TermKey)
	}
	if best.MatchType != statement.MatchExact {
		t.Errorf("type = %q, want exact", best.MatchType)
	}
	if best.MatchedKeyword != "total assets" {
		t.Errorf("keyword = %q, want the widest phrase", best.MatchedKeyword)
	}
	if best.Confidence < 0.99 {
		t.Errorf("confidence = %v, want ~1.0 for a high-priority exact match", best.Confidence)
	}
}

func TestMatch_FuzzyToleratesOCRNoise(t *testing.T) {
	m, pre := newTestMatcher(t)

	noisy := matchText(t, m, pre, "Propertv, Plant and Equipment 12,345")
	if len(noisy) == 0 {
		t.Fatal("expected fuzzy candidates for OCR-corrupted label")
	}
	if noisy[0].TermKey != "property_plant_equipment" {
		t.Errorf("best = %q, want property_plant_equipment", noisy[0].TermKey)
	}
	if noisy[0].MatchType != statement.MatchFuzzy {
		t.Errorf("type = %q, want fuzzy", noisy[0].MatchType)
	}

	// The corrupted label resolves to the same term as the clean one.
	clean := matchText(t, m, pre, "Property, Plant and Equipment 12,345")
	if clean[0].TermKey != noisy[0].TermKey {
		t.Errorf("clean and noisy labels diverge: %q vs %q", clean[0].TermKey, noisy[0].TermKey)
	}
	if clean[0].MatchType != statement.MatchExact {
		t.Errorf("clean label type = %q, want exact", clean[0].MatchType)
	}
}

func TestMatch_ExactOutranksFuzzy(t *testing.T) {
	cands := []statement.MatchCandidate{
		{TermKey: "a", MatchType: statement.MatchFuzzy, Confidence: 0.99, Priority: 2},
		{TermKey: "b", MatchType: statement.MatchExact, Confidence: 0.80, Priority: 1},
		{TermKey: "c", MatchType: statement.MatchExact, Confidence: 0.90, Priority: 1},
	}
	sortCandidates(cands)

	if cands[0].TermKey != "c" || cands[1].TermKey != "b" || cands[2].TermKey != "a" {
		t.Errorf("order = %q,%q,%q; exact candidates must outrank fuzzy regardless of score",
			cands[0].TermKey, cands[1].TermKey, cands[2].TermKey)
	}
}

func TestMatch_Acronym(t *testing.T) {
	m, pre := newTestMatcher(t)

	candidates := matchText(t, m, pre, "CFO 12,000")
	if len(candidates) == 0 {
		t.Fatal("expected acronym candidate")
	}
	best := candidates[0]
	if best.TermKey != "operating_cash_flow" {
		t.Errorf("best = %q, want operating_cash_flow", best.TermKey)
	}
	if best.MatchType != statement.MatchAcronym {
		t.Errorf("type = %q, want acronym", best.MatchType)
	}
}

func TestMatch_HierarchicalBoost(t *testing.T) {
	m, pre := newTestMatcher(t)

	candidates := matchText(t, m, pre, "Total Non-Current Assets 9,87,650")
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}

	best := candidates[0]
	if best.TermKey != "total_non_current_assets" {
		t.Errorf("best = %q, want the specific child term", best.TermKey)
	}

	// The generic parent is still in the pool, ranked below.
	foundParent := false
	for _, c := range candidates[1:] {
		if c.TermKey == "total_assets" {
			foundParent = true
		}
	}
	if !foundParent {
		t.Error("expected the parent term among the pooled candidates")
	}
}

func TestMatch_NoCandidates(t *testing.T) {
	m, pre := newTestMatcher(t)

	tests := []string{
		"",
		"   ",
		"12,345",
		"zzqx glorp vvnn",
	}
	for _, text := range tests {
		if got := matchText(t, m, pre, text); len(got) != 0 {
			t.Errorf("Match(%q) = %v, want none", text, got)
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m, pre := newTestMatcher(t)

	line := pre.PreprocessText("Total Non-Current Assets 9,87,650")
	first := m.Match(context.Background(), line)
	for i := 0; i < 5; i++ {
		again := m.Match(context.Background(), line)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged:\n%v\n%v", i, first, again)
		}
	}
}

func TestMatch_CancelledContext(t *testing.T) {
	m, pre := newTestMatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := m.Match(ctx, pre.PreprocessText("Total Assets 100")); got != nil {
		t.Errorf("cancelled match returned candidates: %v", got)
	}
}

func TestConfidence_Normalization(t *testing.T) {
	m, _ := newTestMatcher(t)

	// Raw 1.0 at max priority normalizes to 1.0; lower priority scales down.
	max := m.idx.MaxPriority()
	if got := m.confidence(1.0, max); got != 1.0 {
		t.Errorf("confidence(1.0, max) = %v, want 1.0", got)
	}
	if got := m.confidence(1.0, max/2); got != 0.5 {
		t.Errorf("confidence(1.0, max/2) = %v, want 0.5", got)
	}
	if got := m.confidence(2.0, max); got != 1.0 {
		t.Errorf("confidence must clamp to 1.0, got %v", got)
	}
}

func TestSharesTokenPrefix(t *testing.T) {
	prefixes := func(label string) map[string]bool {
		out := make(map[string]bool)
		for _, w := range tokenize(label) {
			out[tokenPrefix(w.text)] = true
		}
		return out
	}

	tests := []struct {
		label   string
		keyword string
		want    bool
	}{
		// OCR corruption of one token still shares the others' prefixes.
		{"propertv plant and equipment", "property plant and equipment", true},
		{"balance sheet as at march", "cash and cash equivalents", false},
		{"zzqx glorp vvnn", "total assets", false},
		{"inventories", "inventories and stores", true},
	}
	for _, tt := range tests {
		if got := sharesTokenPrefix(prefixes(tt.label), tt.keyword); got != tt.want {
			t.Errorf("sharesTokenPrefix(%q, %q) = %v, want %v", tt.label, tt.keyword, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("total assets 450000")
	if len(tokens) != 3 {
		t.Fatalf("tokenize = %v, want 3 tokens", tokens)
	}
	if tokens[0].start != 0 || tokens[0].end != 5 {
		t.Errorf("token span = [%d,%d), want [0,5)", tokens[0].start, tokens[0].end)
	}
	if tokens[2].numeric != true || tokens[1].numeric {
		t.Error("numeric tagging wrong")
	}
}

func TestDefaultThresholds(t *testing.T) {
	// Zero-valued thresholds are filled in by New.
	m, _ := newTestMatcher(t)
	def := DefaultThresholds()
	if m.th != def {
		t.Errorf("thresholds = %+v, want defaults %+v", m.th, def)
	}
}
