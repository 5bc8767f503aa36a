// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matcher implements the cascading match layers. The cascade is
// an ordered slice of layer functions over an immutable term index; a
// later layer runs only when the earlier layers left the line
// uncovered, and every accepted candidate is pooled before conflict
// resolution.
package matcher

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"finterm/internal/embedder"
	"finterm/internal/index"
	"finterm/internal/statement"
)

// partialDiscount scales raw scores accepted via partial ratio.
const partialDiscount = 0.9

// Thresholds are the layer acceptance constants. Zero values are
// replaced by the defaults below.
type Thresholds struct {
	TokenSetRatio  int     // word-order-invariant, accept >= 85
	PartialRatio   int     // substring-tolerant, accept >= 90
	EditRatio      int     // plain edit distance, accept >= 80
	Semantic       float64 // cosine similarity, accept >= 0.75
	AcronymScore   float64 // raw score for acronym hits
	ChildBoost     float64 // per-extra-word multiplier for child terms
	FuzzyWordDelta int     // word-count window for the fuzzy shortlist
}

// DefaultThresholds returns the tuned acceptance constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TokenSetRatio:  85,
		PartialRatio:   90,
		EditRatio:      80,
		Semantic:       0.75,
		AcronymScore:   0.95,
		ChildBoost:     1.2,
		FuzzyWordDelta: 2,
	}
}

// Matcher runs the four-layer cascade against one term index. Safe for
// concurrent use; all mutable state is per-call.
type Matcher struct {
	idx *index.TermIndex
	emb embedder.Embedder
	th  Thresholds

	layers []layer

	// warnOnce guards the single "semantic layer disabled" notice.
	warnOnce sync.Once
	warn     func(msg string)
}

type layer struct {
	name string
	run  func(ctx context.Context, sc *scan)
}

// scan is the per-line working state threaded through the layers.
type scan struct {
	line       statement.PreprocessedLine
	tokens     []token
	labelSpan  statement.Span
	labelText  string
	labelWords int

	candidates []statement.MatchCandidate
	// exactKeywords records keywords that matched exactly, so the
	// fuzzy layer does not re-score them.
	exactKeywords map[string]bool
	// fullCover is true when an exact candidate spans the whole label.
	fullCover bool
	// labelPrefixes holds the leading two bytes of every label token,
	// the screen the fuzzy shortlist is filtered against.
	labelPrefixes map[string]bool
}

type token struct {
	text    string
	start   int
	end     int
	numeric bool
}

// New builds a Matcher over idx. The embedder may be the disabled
// variant; warn receives the one-time notice when the semantic layer is
// skipped for lack of a capability and may be nil.
func New(idx *index.TermIndex, emb embedder.Embedder, th Thresholds, warn func(string)) *Matcher {
	def := DefaultThresholds()
	if th.TokenSetRatio == 0 {
		th.TokenSetRatio = def.TokenSetRatio
	}
	if th.PartialRatio == 0 {
		th.PartialRatio = def.PartialRatio
	}
	if th.EditRatio == 0 {
		th.EditRatio = def.EditRatio
	}
	if th.Semantic == 0 {
		th.Semantic = def.Semantic
	}
	if th.AcronymScore == 0 {
		th.AcronymScore = def.AcronymScore
	}
	if th.ChildBoost == 0 {
		th.ChildBoost = def.ChildBoost
	}
	if th.FuzzyWordDelta == 0 {
		th.FuzzyWordDelta = def.FuzzyWordDelta
	}
	if emb == nil {
		emb = embedder.Disabled()
	}
	if warn == nil {
		warn = func(string) {}
	}

	m := &Matcher{idx: idx, emb: emb, th: th, warn: warn}
	m.layers = []layer{
		{name: "exact", run: m.exactLayer},
		{name: "fuzzy", run: m.fuzzyLayer},
		{name: "semantic", run: m.semanticLayer},
		{name: "hierarchical", run: m.hierarchicalLayer},
	}
	return m
}

// Match runs the cascade over one preprocessed line and returns the
// pooled candidates in resolution order. An empty or unmatched line
// yields an empty list, never an error.
func (m *Matcher) Match(ctx context.Context, line statement.PreprocessedLine) []statement.MatchCandidate {
	sc := newScan(line)
	if sc.labelText == "" {
		return nil
	}

	for _, l := range m.layers {
		if ctx.Err() != nil {
			return nil
		}
		l.run(ctx, sc)
	}

	sortCandidates(sc.candidates)
	return sc.candidates
}

func newScan(line statement.PreprocessedLine) *scan {
	sc := &scan{line: line, exactKeywords: make(map[string]bool)}
	sc.tokens = tokenize(line.CanonicalForm)

	// The label is the non-numeric part of the line; amounts at the end
	// of a statement row must not dilute fuzzy or semantic scores.
	var words []string
	start, end := -1, -1
	for _, t := range sc.tokens {
		if t.numeric {
			continue
		}
		if start < 0 {
			start = t.start
		}
		end = t.end
		words = append(words, t.text)
	}
	if start >= 0 {
		sc.labelSpan = statement.Span{Start: start, End: end}
		sc.labelText = strings.Join(words, " ")
		sc.labelWords = len(words)
		sc.labelPrefixes = make(map[string]bool, len(words))
		for _, w := range words {
			sc.labelPrefixes[tokenPrefix(w)] = true
		}
	}
	return sc
}

// exactLayer scans word-boundary n-gram windows of the canonical form
// against the keyword map, widest window first, and looks up short
// tokens in the acronym map.
func (m *Matcher) exactLayer(_ context.Context, sc *scan) {
	maxN := index.MaxKeywordWords
	if len(sc.tokens) < maxN {
		maxN = len(sc.tokens)
	}

	for n := maxN; n >= 1; n-- {
		for i := 0; i+n <= len(sc.tokens); i++ {
			window := sc.tokens[i : i+n]
			phrase := joinTokens(window)
			span := statement.Span{Start: window[0].start, End: window[n-1].end}

			for _, entry := range m.idx.LookupExact(phrase) {
				// Specificity bonus for longer phrases; normalization
				// clamps the composite back into [0, 1].
				raw := 1.0 + 0.1*float64(n)
				sc.add(statement.MatchCandidate{
					TermKey:        entry.TermKey,
					MatchedKeyword: entry.Keyword,
					MatchType:      statement.MatchExact,
					RawScore:       raw,
					Confidence:     m.confidence(raw, entry.Term.Priority),
					MatchedSpan:    span,
					Category:       string(entry.Term.Category),
					Priority:       entry.Term.Priority,
					SignConvention: string(entry.Term.SignConvention),
				})
				sc.exactKeywords[entry.Keyword] = true
				if span.Contains(sc.labelSpan) {
					sc.fullCover = true
				}
			}

			if n == 1 {
				for _, entry := range m.idx.LookupAcronym(phrase) {
					sc.add(statement.MatchCandidate{
						TermKey:        entry.TermKey,
						MatchedKeyword: entry.Keyword,
						MatchType:      statement.MatchAcronym,
						RawScore:       m.th.AcronymScore,
						Confidence:     m.confidence(m.th.AcronymScore, entry.Term.Priority),
						MatchedSpan:    span,
						Category:       string(entry.Term.Category),
						Priority:       entry.Term.Priority,
						SignConvention: string(entry.Term.SignConvention),
					})
				}
			}
		}
	}
}

// fuzzyLayer scores the line label against a word-count shortlist with
// three metrics. The first metric clearing its threshold wins for a
// given keyword. Skipped entirely when an exact match already covers
// the label, and keywords sharing no token prefix with the label are
// screened out before the ratio metrics run.
func (m *Matcher) fuzzyLayer(_ context.Context, sc *scan) {
	if sc.fullCover {
		return
	}

	for _, entry := range m.idx.KeywordsNear(sc.labelWords, m.th.FuzzyWordDelta) {
		if sc.exactKeywords[entry.Keyword] {
			continue
		}
		if !sharesTokenPrefix(sc.labelPrefixes, entry.Keyword) {
			continue
		}

		var raw float64
		if score := fuzzy.TokenSetRatio(sc.labelText, entry.Keyword); score >= m.th.TokenSetRatio {
			raw = float64(score) / 100
		} else if score := fuzzy.PartialRatio(sc.labelText, entry.Keyword); score >= m.th.PartialRatio {
			// Substring containment is weaker evidence than a full
			// token-set agreement; the WRatio-style discount keeps a
			// long containing keyword from outranking the true label.
			raw = partialDiscount * float64(score) / 100
		} else if score := fuzzy.Ratio(sc.labelText, entry.Keyword); score >= m.th.EditRatio {
			raw = float64(score) / 100
		} else {
			continue
		}

		sc.add(statement.MatchCandidate{
			TermKey:        entry.TermKey,
			MatchedKeyword: entry.Keyword,
			MatchType:      statement.MatchFuzzy,
			RawScore:       raw,
			Confidence:     m.confidence(raw, entry.Term.Priority),
			MatchedSpan:    sc.labelSpan,
			Category:       string(entry.Term.Category),
			Priority:       entry.Term.Priority,
			SignConvention: string(entry.Term.SignConvention),
		})
	}
}

// semanticLayer embeds the line label and scores it against the cached
// term embeddings. Only reached when the earlier layers produced
// nothing; skipped, with a one-time notice, when the capability is
// absent.
func (m *Matcher) semanticLayer(ctx context.Context, sc *scan) {
	if len(sc.candidates) > 0 {
		return
	}
	if !m.emb.Enabled() || !m.idx.HasEmbeddings() {
		m.warnOnce.Do(func() {
			m.warn("semantic layer disabled: no embedding capability configured")
		})
		return
	}

	vec, err := m.emb.Embed(ctx, sc.labelText)
	if err != nil {
		// Capability trouble never fails the pipeline.
		return
	}

	for _, key := range m.idx.TermKeys() {
		cached := m.idx.EmbeddingOf(key)
		if cached == nil {
			continue
		}
		sim := embedder.Cosine(vec, cached)
		if sim < m.th.Semantic {
			continue
		}
		term := m.idx.Term(key)
		sc.add(statement.MatchCandidate{
			TermKey:        key,
			MatchedKeyword: term.DisplayLabel,
			MatchType:      statement.MatchSemantic,
			RawScore:       sim,
			Confidence:     m.confidence(sim, term.Priority),
			MatchedSpan:    sc.labelSpan,
			Category:       string(term.Category),
			Priority:       term.Priority,
			SignConvention: string(term.SignConvention),
		})
	}
}

// hierarchicalLayer boosts child terms over their parents across the
// pooled candidates: when both ends of a parent/child edge are present,
// the child gains the per-extra-word multiplier so the specific line
// item outranks the generic one.
func (m *Matcher) hierarchicalLayer(_ context.Context, sc *scan) {
	if len(sc.candidates) < 2 {
		return
	}

	present := make(map[string]bool, len(sc.candidates))
	for _, c := range sc.candidates {
		present[c.TermKey] = true
	}

	boosted := make(map[string]bool)
	for i := range sc.candidates {
		c := &sc.candidates[i]
		if boosted[c.TermKey] {
			continue
		}
		term := m.idx.Term(c.TermKey)
		if term == nil || term.ParentKey == "" || !present[term.ParentKey] {
			continue
		}
		extra := strings.Count(c.MatchedKeyword, " ")
		if extra == 0 {
			continue
		}
		factor := math.Pow(m.th.ChildBoost, float64(extra))
		c.Confidence = clamp01(c.Confidence * factor)
		boosted[c.TermKey] = true
	}
}

// confidence folds a layer raw score and the term priority into the
// normalized composite. The highest-priority exact match scores 1.0.
func (m *Matcher) confidence(raw, priority float64) float64 {
	max := m.idx.MaxPriority()
	if max <= 0 {
		max = 1
	}
	return clamp01(raw * priority / max)
}

func (sc *scan) add(c statement.MatchCandidate) {
	sc.candidates = append(sc.candidates, c)
}

// sortCandidates orders the pool for resolution: stronger match type
// first, then confidence, priority and keyword length descending.
func sortCandidates(cands []statement.MatchCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.MatchType != b.MatchType {
			return a.MatchType.Stronger(b.MatchType)
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return len(a.MatchedKeyword) > len(b.MatchedKeyword)
	})
}

func tokenize(text string) []token {
	var tokens []token
	i := 0
	for i < len(text) {
		if text[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] != ' ' {
			j++
		}
		word := text[i:j]
		tokens = append(tokens, token{
			text:    word,
			start:   i,
			end:     j,
			numeric: isNumericToken(word),
		})
		i = j
	}
	return tokens
}

// tokenPrefix returns the leading two bytes of a token, or the whole
// token when shorter.
func tokenPrefix(word string) string {
	if len(word) > 2 {
		return word[:2]
	}
	return word
}

// sharesTokenPrefix reports whether any keyword token starts with the
// same two bytes as some label token. Strings similar enough to clear
// a ratio threshold share at least one such pair, so a failed screen
// skips the expensive metrics without changing which keywords match.
func sharesTokenPrefix(prefixes map[string]bool, keyword string) bool {
	i := 0
	for i < len(keyword) {
		if keyword[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(keyword) && keyword[j] != ' ' {
			j++
		}
		end := i + 2
		if end > j {
			end = j
		}
		if prefixes[keyword[i:end]] {
			return true
		}
		i = j
	}
	return false
}

func joinTokens(tokens []token) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.text
	}
	return strings.Join(words, " ")
}

func isNumericToken(word string) bool {
	digits := 0
	for i := 0; i < len(word); i++ {
		switch {
		case word[i] >= '0' && word[i] <= '9':
			digits++
		case word[i] == '.':
		default:
			return false
		}
	}
	return digits > 0
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
