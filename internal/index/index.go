// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package index builds the in-memory lookup structures the matching
// layers query: normalized keyword tables, acronym tables, the term
// hierarchy, and an optional embedding cache. An index is immutable
// after Build and safe for concurrent readers.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"finterm/internal/embedder"
	"finterm/internal/preprocess"
	"finterm/internal/taxonomy"
)

// MaxKeywordWords bounds the phrase length the exact layer scans for.
// No built-in or realistic custom keyword exceeds six words.
const MaxKeywordWords = 6

// Entry is one keyword registered for a term. The same keyword text can
// map to several terms; the conflict resolver arbitrates between them.
type Entry struct {
	TermKey string
	// Keyword is the normalized form, the same space canonical line
	// text lives in.
	Keyword string
	Term    *taxonomy.TermDefinition
}

// Words reports the token count of the normalized keyword.
func (e Entry) Words() int {
	return strings.Count(e.Keyword, " ") + 1
}

// TermIndex holds every lookup structure derived from a taxonomy.
type TermIndex struct {
	terms    map[string]*taxonomy.TermDefinition
	exact    map[string][]Entry
	acronyms map[string][]Entry
	children map[string][]string

	// buckets groups keyword entries by word count so the fuzzy layer
	// compares against phrases of similar length only.
	buckets map[int][]Entry

	// termKeys holds every canonical key in sorted order so iteration
	// over the term set is deterministic.
	termKeys []string

	embeddings  map[string][]float32
	maxPriority float64
}

// Build normalizes every keyword through the preprocessor, registers
// explicit and derived acronyms, wires the parent-child hierarchy, and
// precomputes term embeddings when the embedder is enabled. Embedding
// failures disable the semantic cache for the affected term only.
func Build(ctx context.Context, terms []taxonomy.TermDefinition, pre *preprocess.Preprocessor, emb embedder.Embedder) (*TermIndex, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("building term index: no terms")
	}

	idx := &TermIndex{
		terms:    make(map[string]*taxonomy.TermDefinition, len(terms)),
		exact:    make(map[string][]Entry),
		acronyms: make(map[string][]Entry),
		children: make(map[string][]string),
		buckets:  make(map[int][]Entry),
	}

	for i := range terms {
		term := &terms[i]
		if _, dup := idx.terms[term.CanonicalKey]; dup {
			return nil, fmt.Errorf("building term index: duplicate term %q", term.CanonicalKey)
		}
		idx.terms[term.CanonicalKey] = term
		if term.Priority > idx.maxPriority {
			idx.maxPriority = term.Priority
		}

		seen := make(map[string]bool)
		for _, keyword := range term.AllKeywords() {
			norm := pre.NormalizeKey(keyword)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			entry := Entry{TermKey: term.CanonicalKey, Keyword: norm, Term: term}
			idx.exact[norm] = append(idx.exact[norm], entry)
			idx.buckets[entry.Words()] = append(idx.buckets[entry.Words()], entry)

			if derived := deriveAcronym(norm); derived != "" {
				idx.addAcronym(derived, entry)
			}
		}

		for _, acr := range term.Acronyms {
			norm := strings.ToLower(strings.TrimSpace(acr))
			if norm == "" {
				continue
			}
			idx.addAcronym(norm, Entry{TermKey: term.CanonicalKey, Keyword: norm, Term: term})
		}

		if term.ParentKey != "" {
			idx.children[term.ParentKey] = append(idx.children[term.ParentKey], term.CanonicalKey)
		}
	}

	idx.termKeys = make([]string, 0, len(idx.terms))
	for key := range idx.terms {
		idx.termKeys = append(idx.termKeys, key)
	}
	sort.Strings(idx.termKeys)

	for parent := range idx.children {
		if _, ok := idx.terms[parent]; !ok {
			return nil, fmt.Errorf("building term index: parent %q is not a defined term", parent)
		}
		sort.Strings(idx.children[parent])
	}

	if emb != nil && emb.Enabled() {
		idx.embeddings = make(map[string][]float32, len(terms))
		for key, term := range idx.terms {
			vec, err := emb.Embed(ctx, embeddingText(term))
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				continue
			}
			idx.embeddings[key] = vec
		}
	}

	return idx, nil
}

func (idx *TermIndex) addAcronym(acr string, entry Entry) {
	for _, existing := range idx.acronyms[acr] {
		if existing.TermKey == entry.TermKey {
			return
		}
	}
	idx.acronyms[acr] = append(idx.acronyms[acr], entry)
}

// LookupExact returns the entries registered for a normalized phrase.
func (idx *TermIndex) LookupExact(phrase string) []Entry {
	return idx.exact[phrase]
}

// LookupAcronym returns the entries registered for a lowercase acronym.
func (idx *TermIndex) LookupAcronym(acr string) []Entry {
	return idx.acronyms[acr]
}

// Term returns the definition for a canonical key, nil when unknown.
func (idx *TermIndex) Term(key string) *taxonomy.TermDefinition {
	return idx.terms[key]
}

// ChildrenOf returns the canonical keys of a term's direct children.
func (idx *TermIndex) ChildrenOf(key string) []string {
	return idx.children[key]
}

// EmbeddingOf returns the cached embedding for a term, nil when the
// semantic cache is absent or the term's embedding failed.
func (idx *TermIndex) EmbeddingOf(key string) []float32 {
	return idx.embeddings[key]
}

// HasEmbeddings reports whether the semantic cache was built.
func (idx *TermIndex) HasEmbeddings() bool {
	return len(idx.embeddings) > 0
}

// MaxPriority is the largest term priority in the index, used to
// normalize confidence so the highest-priority exact match scores 1.0.
func (idx *TermIndex) MaxPriority() float64 {
	return idx.maxPriority
}

// KeywordsNear returns keyword entries whose word count is within delta
// of words, the candidate set for fuzzy comparison.
func (idx *TermIndex) KeywordsNear(words, delta int) []Entry {
	var out []Entry
	for w := words - delta; w <= words+delta; w++ {
		if w < 1 {
			continue
		}
		out = append(out, idx.buckets[w]...)
	}
	return out
}

// TermKeys returns every canonical key in sorted order.
func (idx *TermIndex) TermKeys() []string {
	return idx.termKeys
}

// Len reports the number of terms in the index.
func (idx *TermIndex) Len() int {
	return len(idx.terms)
}

// deriveAcronym builds a first-letter acronym from a multi-word
// keyword. Connector words are skipped so "cost of goods sold" yields
// "cgs" alongside the explicit "cogs" entry. Results under three
// letters are discarded: two-letter strings collide with ordinary
// words ("as at" in a header would read as an acronym hit). Explicit
// taxonomy acronyms are registered unconditionally.
func deriveAcronym(keyword string) string {
	words := strings.Fields(keyword)
	if len(words) < 2 {
		return ""
	}
	var b strings.Builder
	for _, word := range words {
		switch word {
		case "of", "and", "the", "in", "for", "to", "on", "at":
			continue
		}
		b.WriteByte(word[0])
	}
	acr := b.String()
	if len(acr) < 3 || len(acr) > MaxKeywordWords {
		return ""
	}
	return acr
}

// embeddingText is the phrase embedded for a term: the display label
// plus its category, which disambiguates short labels like "provisions".
func embeddingText(term *taxonomy.TermDefinition) string {
	return term.DisplayLabel + " (" + term.Category.Label() + ")"
}
