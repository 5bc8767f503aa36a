// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"context"
	"sort"
	"testing"

	"finterm/internal/embedder"
	"finterm/internal/preprocess"
	"finterm/internal/taxonomy"
)

func buildDefault(t *testing.T) *TermIndex {
	t.Helper()
	idx, err := Build(context.Background(), taxonomy.Default(), preprocess.New(), embedder.Disabled())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestBuild_ExactLookup(t *testing.T) {
	idx := buildDefault(t)

	entries := idx.LookupExact("total assets")
	if len(entries) != 1 {
		t.Fatalf("LookupExact(total assets) = %v, want one entry", entries)
	}
	if entries[0].TermKey != "total_assets" {
		t.Errorf("TermKey = %q, want total_assets", entries[0].TermKey)
	}

	if entries := idx.LookupExact("no such phrase"); len(entries) != 0 {
		t.Errorf("unexpected entries for unknown phrase: %v", entries)
	}
}

func TestBuild_AcronymLookup(t *testing.T) {
	idx := buildDefault(t)

	tests := []struct {
		acronym string
		termKey string
	}{
		{"cogs", "cost_of_goods_sold"},
		{"ppe", "property_plant_equipment"},
		{"cfo", "operating_cash_flow"},
		// Derived from "cost of goods sold" with connectors skipped.
		{"cgs", "cost_of_goods_sold"},
	}

	for _, tt := range tests {
		entries := idx.LookupAcronym(tt.acronym)
		found := false
		for _, e := range entries {
			if e.TermKey == tt.termKey {
				found = true
			}
		}
		if !found {
			t.Errorf("LookupAcronym(%q) = %v, want %s", tt.acronym, entries, tt.termKey)
		}
	}

	// No two-letter derivations: "ta" for "total assets" would make
	// ordinary words in headers resolve as acronyms.
	for _, acr := range []string{"ta", "at", "tr"} {
		if entries := idx.LookupAcronym(acr); len(entries) != 0 {
			t.Errorf("LookupAcronym(%q) = %v, want none", acr, entries)
		}
	}
}

func TestBuild_Hierarchy(t *testing.T) {
	idx := buildDefault(t)

	children := idx.ChildrenOf("total_assets")
	want := []string{"total_current_assets", "total_non_current_assets"}
	if len(children) != len(want) {
		t.Fatalf("ChildrenOf(total_assets) = %v, want %v", children, want)
	}
	if !sort.StringsAreSorted(children) {
		t.Errorf("children not sorted: %v", children)
	}
	for i := range want {
		if children[i] != want[i] {
			t.Errorf("children[%d] = %q, want %q", i, children[i], want[i])
		}
	}

	if kids := idx.ChildrenOf("goodwill"); len(kids) != 0 {
		t.Errorf("leaf term has children: %v", kids)
	}
}

func TestBuild_MaxPriority(t *testing.T) {
	idx := buildDefault(t)
	if got := idx.MaxPriority(); got != 2.3 {
		t.Errorf("MaxPriority = %v, want 2.3", got)
	}
}

func TestBuild_TermKeysSorted(t *testing.T) {
	idx := buildDefault(t)

	keys := idx.TermKeys()
	if len(keys) != idx.Len() {
		t.Fatalf("TermKeys length %d != Len %d", len(keys), idx.Len())
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("term keys not sorted: %v", keys)
	}
}

func TestKeywordsNear(t *testing.T) {
	idx := buildDefault(t)

	for _, e := range idx.KeywordsNear(1, 2) {
		if e.Words() < 1 || e.Words() > 3 {
			t.Errorf("entry %q has %d words, outside 1..3", e.Keyword, e.Words())
		}
	}
	if len(idx.KeywordsNear(2, 1)) == 0 {
		t.Error("expected entries for 1..3 word keywords")
	}
}

func TestBuild_Errors(t *testing.T) {
	pre := preprocess.New()
	ctx := context.Background()

	if _, err := Build(ctx, nil, pre, embedder.Disabled()); err == nil {
		t.Error("expected error for empty term set")
	}

	dup := []taxonomy.TermDefinition{
		{CanonicalKey: "cash", Category: taxonomy.CategoryAssets, Priority: 1,
			KeywordSets: map[string][]string{taxonomy.StandardUnified: {"cash"}}},
		{CanonicalKey: "cash", Category: taxonomy.CategoryAssets, Priority: 1,
			KeywordSets: map[string][]string{taxonomy.StandardUnified: {"cash on hand"}}},
	}
	if _, err := Build(ctx, dup, pre, embedder.Disabled()); err == nil {
		t.Error("expected error for duplicate term key")
	}

	orphan := []taxonomy.TermDefinition{
		{CanonicalKey: "cash", ParentKey: "missing", Category: taxonomy.CategoryAssets, Priority: 1,
			KeywordSets: map[string][]string{taxonomy.StandardUnified: {"cash"}}},
	}
	if _, err := Build(ctx, orphan, pre, embedder.Disabled()); err == nil {
		t.Error("expected error for dangling parent")
	}
}

func TestBuild_NoEmbedderMeansNoEmbeddings(t *testing.T) {
	idx := buildDefault(t)
	if idx.HasEmbeddings() {
		t.Error("disabled embedder must not populate the semantic cache")
	}
	if vec := idx.EmbeddingOf("total_assets"); vec != nil {
		t.Errorf("unexpected embedding: %v", vec)
	}
}

func TestDeriveAcronym(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"cost of goods sold", "cgs"},
		{"earnings before interest tax depreciation amortization", "ebitda"},
		{"capital work in progress", "cwp"},
		{"cash", ""},
		{"of and", ""},
		// Two-letter derivations are dropped; "at" would turn every
		// "as at" date header into an acronym hit.
		{"total assets", ""},
		{"assets total", ""},
	}
	for _, tt := range tests {
		if got := deriveAcronym(tt.keyword); got != tt.want {
			t.Errorf("deriveAcronym(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}
