// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocess normalizes raw financial-statement lines into the
// canonical matching form used by every downstream matching layer.
// Preprocessing is deterministic and pure: the only shared state is the
// static abbreviation dictionary and the compiled pattern set.
package preprocess

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"finterm/internal/statement"
)

var (
	seeNotePattern    = regexp.MustCompile(`(?i)\(\s*see\s+note\s*\d+\s*\)`)
	parenNotePattern  = regexp.MustCompile(`(?i)\(\s*note\s*(?:no\.?)?\s*\d+\s*\)`)
	bareNotePattern   = regexp.MustCompile(`(?i)\bnote\s*(?:no\.?)?\s*\d+\b`)
	schedulePattern   = regexp.MustCompile(`(?i)\bschedule\s+[a-z]\d*\b`)
	bracketRefPattern = regexp.MustCompile(`\[\d+\]`)
	// A bare 1-2 digit parenthetical is a footnote marker; grouped or
	// decimal parentheticals are negative values and stay.
	parenRefPattern = regexp.MustCompile(`\(\s*\d{1,2}\s*\)`)

	dotLeaderPattern  = regexp.MustCompile(`\.{3,}`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Parenthesis-wrapped grouped number anywhere on the line signals a
	// negative figure under common accounting print conventions.
	parenNumberPattern = regexp.MustCompile(`\(\s*\d{1,3}(?:[,.']\d{2,3})*(?:\.\d+)?\s*\)`)

	nonCanonicalPattern = regexp.MustCompile("[^a-z0-9 \x00]")
	decimalPoint        = regexp.MustCompile(`(\d)\.(\d)`)
	groupSeparator      = regexp.MustCompile(`(\d)[,'](\d)`)
)

// unicodeReplacer folds the typographic characters OCR output tends to
// carry into their ASCII matching equivalents.
var unicodeReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "“", `"`, "”", `"`,
	"–", " ", "—", " ", "−", "-",
	" ", " ", " ", " ", " ", " ",
)

// Preprocessor executes the normalization pipeline. Safe for concurrent
// use; it holds no per-line state.
type Preprocessor struct {
	multiWordPatterns []multiWordPattern
}

type multiWordPattern struct {
	pattern   *regexp.Regexp
	expansion string
	abbr      string
}

// New builds a Preprocessor, compiling the multi-word abbreviation
// patterns once.
func New() *Preprocessor {
	// Longest phrase first so "ind as" wins over any shorter overlap.
	phrases := make([]string, 0, len(multiWordAbbreviations))
	for phrase := range multiWordAbbreviations {
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})

	p := &Preprocessor{}
	for _, phrase := range phrases {
		p.multiWordPatterns = append(p.multiWordPatterns, multiWordPattern{
			pattern:   regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`),
			expansion: multiWordAbbreviations[phrase],
			abbr:      phrase,
		})
	}
	return p
}

// Preprocess runs the full pipeline on one raw line. It never fails:
// malformed numbers are omitted from DetectedNumbers and an empty line
// yields an empty canonical form.
func (p *Preprocessor) Preprocess(raw statement.RawLine) statement.PreprocessedLine {
	// Step 1: unicode folding before anything pattern-based.
	text := unicodeReplacer.Replace(norm.NFKC.String(raw.Text))
	text = strings.TrimSpace(text)

	// Step 2: note and schedule references must go before sign and
	// number detection, or "(Note 12)" reads as a value and a bare
	// footnote marker like "(12)" as a negative-figure indicator.
	cleaned, notes := stripNoteRefs(text)

	// Step 3: sign indicators on the note-free text.
	sign := detectSign(cleaned)

	// Step 4: print-alignment artifacts.
	cleaned = dotLeaderPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))

	// Step 5: numeric tokens, with spans into the cleaned text.
	numbers := detectNumbers(cleaned)

	// Steps 6-7: abbreviation expansion and case/separator folding.
	canonical, abbrevs := p.canonicalize(cleaned)

	return statement.PreprocessedLine{
		Raw:              raw,
		CanonicalForm:    canonical,
		SignMultiplier:   sign,
		DetectedNumbers:  numbers,
		StrippedNoteRefs: notes,
		Abbreviations:    abbrevs,
	}
}

// PreprocessText is the single-string convenience form.
func (p *Preprocessor) PreprocessText(text string) statement.PreprocessedLine {
	return p.Preprocess(statement.RawLine{Text: text})
}

// NormalizeKey canonicalizes a taxonomy keyword with the same rules the
// line pipeline applies, so index keys and canonical forms always meet
// in the same space.
func (p *Preprocessor) NormalizeKey(keyword string) string {
	text := unicodeReplacer.Replace(norm.NFKC.String(keyword))
	canonical, _ := p.canonicalize(strings.TrimSpace(text))
	return canonical
}

func detectSign(text string) int {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, ind := range signIndicators {
		if strings.HasPrefix(lower, ind.prefix) {
			return ind.multiplier
		}
	}
	if parenNumberPattern.MatchString(text) {
		return -1
	}
	return 1
}

func stripNoteRefs(text string) (string, []string) {
	var removed []string
	for _, pattern := range []*regexp.Regexp{
		seeNotePattern, parenNotePattern, bareNotePattern,
		schedulePattern, bracketRefPattern, parenRefPattern,
	} {
		for _, m := range pattern.FindAllString(text, -1) {
			removed = append(removed, strings.TrimSpace(m))
		}
		text = pattern.ReplaceAllString(text, " ")
	}
	return text, removed
}

// canonicalize lower-cases, expands abbreviations and folds separator
// variants, returning the canonical form and the abbreviations that
// were expanded.
func (p *Preprocessor) canonicalize(text string) (string, []string) {
	lower := strings.ToLower(text)

	var expanded []string
	for _, mw := range p.multiWordPatterns {
		if mw.pattern.MatchString(lower) {
			lower = mw.pattern.ReplaceAllString(lower, mw.expansion)
			expanded = append(expanded, mw.abbr)
		}
	}

	// Separator folding: compound words meet their spaced variants.
	lower = strings.ReplaceAll(lower, "&", " and ")
	lower = strings.ReplaceAll(lower, "/", " ")
	lower = strings.ReplaceAll(lower, "_", " ")
	lower = strings.ReplaceAll(lower, "-", " ")

	// Collapse grouping separators inside numbers; the loop settles
	// multi-group forms like 1,00,00,000.
	for {
		folded := groupSeparator.ReplaceAllString(lower, "${1}${2}")
		if folded == lower {
			break
		}
		lower = folded
	}

	// Protect decimal points, then drop remaining punctuation.
	lower = decimalPoint.ReplaceAllString(lower, "${1}\x00${2}")
	lower = nonCanonicalPattern.ReplaceAllString(lower, " ")
	lower = strings.ReplaceAll(lower, "\x00", ".")

	words := strings.Fields(lower)
	out := make([]string, 0, len(words))
	for _, word := range words {
		if spaced, ok := compoundVariants[word]; ok {
			out = append(out, strings.Fields(spaced)...)
			continue
		}
		if expansion, ok := financialAbbreviations[word]; ok {
			expanded = append(expanded, word)
			out = append(out, strings.Fields(expansion)...)
			continue
		}
		out = append(out, word)
	}

	return strings.Join(out, " "), expanded
}
