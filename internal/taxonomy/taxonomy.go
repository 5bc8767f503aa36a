// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package taxonomy defines the canonical catalog of financial-statement
// line-item terms and loads versioned taxonomy files. Definitions are
// configuration data: built once at load time and never mutated.
package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the fixed statement-section taxonomy.
type Category string

const (
	CategoryIncomeStatement Category = "income_statement"
	CategoryAssets          Category = "balance_sheet_assets"
	CategoryLiabilities     Category = "balance_sheet_liabilities"
	CategoryEquity          Category = "balance_sheet_equity"
	CategoryCashFlow        Category = "cash_flow"
	CategoryOther           Category = "other"
)

// Label returns the human-readable section name.
func (c Category) Label() string {
	switch c {
	case CategoryIncomeStatement:
		return "Income Statement"
	case CategoryAssets:
		return "Balance Sheet - Assets"
	case CategoryLiabilities:
		return "Balance Sheet - Liabilities"
	case CategoryEquity:
		return "Balance Sheet - Equity"
	case CategoryCashFlow:
		return "Cash Flow"
	default:
		return "Other"
	}
}

var validCategories = map[Category]bool{
	CategoryIncomeStatement: true,
	CategoryAssets:          true,
	CategoryLiabilities:     true,
	CategoryEquity:          true,
	CategoryCashFlow:        true,
	CategoryOther:           true,
}

// SignConvention states whether a term's value is expected positive,
// negative, or context-dependent.
type SignConvention string

const (
	SignPositive   SignConvention = "positive"
	SignNegative   SignConvention = "negative"
	SignContextual SignConvention = "contextual"
)

// TermDefinition is one canonical term. Immutable after load.
type TermDefinition struct {
	CanonicalKey   string              `yaml:"key"`
	DisplayLabel   string              `yaml:"label"`
	Category       Category            `yaml:"category"`
	KeywordSets    map[string][]string `yaml:"keywords"` // accounting standard -> keywords
	Acronyms       []string            `yaml:"acronyms,omitempty"`
	SignConvention SignConvention      `yaml:"sign,omitempty"`
	Priority       float64             `yaml:"priority,omitempty"`
	ParentKey      string              `yaml:"parent,omitempty"`
	RequiresValue  bool                `yaml:"requires_value,omitempty"`
}

// AllKeywords returns every keyword across all standards, deduplicated,
// in stable standard-then-list order.
func (t TermDefinition) AllKeywords() []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, standard := range sortedStandards(t.KeywordSets) {
		for _, kw := range t.KeywordSets[standard] {
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func sortedStandards(sets map[string][]string) []string {
	// Unified list first, then standards alphabetically for determinism.
	var names []string
	for name := range sets {
		if name == StandardUnified {
			continue
		}
		names = append(names, name)
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[j] < names[i] {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	if _, ok := sets[StandardUnified]; ok {
		names = append([]string{StandardUnified}, names...)
	}
	return names
}

// FilterStandard narrows each term's keyword sets to the unified set
// plus one named accounting standard. Empty or "all" keeps every set.
func FilterStandard(terms []TermDefinition, standard string) []TermDefinition {
	if standard == "" || standard == "all" {
		return terms
	}
	out := make([]TermDefinition, len(terms))
	for i, t := range terms {
		sets := make(map[string][]string, 2)
		if kws, ok := t.KeywordSets[StandardUnified]; ok {
			sets[StandardUnified] = kws
		}
		if standard != StandardUnified {
			if kws, ok := t.KeywordSets[standard]; ok {
				sets[standard] = kws
			}
		}
		t.KeywordSets = sets
		out[i] = t
	}
	return out
}

// Recognized accounting-standard keyword set names. Files may carry any
// standard name; these are the ones the built-in taxonomy uses.
const (
	StandardUnified = "unified"
	StandardIndAS   = "indas"
	StandardGAAP    = "gaap"
	StandardIFRS    = "ifrs"
)

// File is the on-disk taxonomy document.
type File struct {
	Version string           `yaml:"version"`
	Terms   []TermDefinition `yaml:"terms"`
}

// Load reads a taxonomy file, fills the optional-field defaults and
// validates the result. A malformed taxonomy is a fatal build-time
// error: an invalid index cannot safely serve matches.
func Load(path string) ([]TermDefinition, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file %s: %w", path, err)
	}

	// Defaults first: a file that omits priority or label is valid, but
	// zero priorities would flatten every confidence score downstream.
	terms := Normalize(file.Terms)
	if err := Validate(terms); err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}
	return terms, nil
}

// Validate checks term definitions for the defects that would corrupt
// an index: duplicate keys, missing keywords, unknown categories,
// dangling or cyclic parent links.
func Validate(terms []TermDefinition) error {
	if len(terms) == 0 {
		return fmt.Errorf("taxonomy contains no terms")
	}

	byKey := make(map[string]TermDefinition, len(terms))
	for i, term := range terms {
		if strings.TrimSpace(term.CanonicalKey) == "" {
			return fmt.Errorf("term %d has an empty key", i)
		}
		if _, dup := byKey[term.CanonicalKey]; dup {
			return fmt.Errorf("duplicate term key %q", term.CanonicalKey)
		}
		if !validCategories[term.Category] {
			return fmt.Errorf("term %q has unknown category %q", term.CanonicalKey, term.Category)
		}
		if len(term.AllKeywords()) == 0 {
			return fmt.Errorf("term %q has no keywords", term.CanonicalKey)
		}
		switch term.SignConvention {
		case "", SignPositive, SignNegative, SignContextual:
		default:
			return fmt.Errorf("term %q has unknown sign convention %q", term.CanonicalKey, term.SignConvention)
		}
		byKey[term.CanonicalKey] = term
	}

	for _, term := range terms {
		if term.ParentKey == "" {
			continue
		}
		if _, ok := byKey[term.ParentKey]; !ok {
			return fmt.Errorf("term %q references unknown parent %q", term.CanonicalKey, term.ParentKey)
		}
		// Walk up; a cycle would loop longer than the term count.
		seen := 0
		for key := term.ParentKey; key != ""; key = byKey[key].ParentKey {
			seen++
			if seen > len(terms) {
				return fmt.Errorf("parent cycle involving term %q", term.CanonicalKey)
			}
		}
	}

	return nil
}

// Normalize fills defaults on loaded definitions: sign convention
// positive, priority 1.0, label derived from the key.
func Normalize(terms []TermDefinition) []TermDefinition {
	out := make([]TermDefinition, len(terms))
	for i, term := range terms {
		if term.SignConvention == "" {
			term.SignConvention = SignPositive
		}
		if term.Priority == 0 {
			term.Priority = 1.0
		}
		if term.DisplayLabel == "" {
			term.DisplayLabel = labelFromKey(term.CanonicalKey)
		}
		out[i] = term
	}
	return out
}

func labelFromKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
