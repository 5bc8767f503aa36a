// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocess

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"finterm/internal/statement"
)

// numberToken captures an optional currency marker, an optionally
// parenthesised digit group with any of the supported separators, and
// an optional percent / multiple / ratio suffix.
var numberToken = regexp.MustCompile(
	`(?i)(₹|rs\.?|inr|us\$|\$|usd|€|eur|£|gbp)?\s*(\()?\s*(-?\d[\d,.'’\x{202f}]*\d|\d)\s*(\))?\s*(%|x\b|:\s*\d+(?:\.\d+)?)?`)

// currencyMarkers maps the markers the token regex recognizes to ISO
// 4217 codes.
var currencyMarkers = map[string]string{
	"₹": "INR", "rs": "INR", "rs.": "INR", "inr": "INR",
	"$": "USD", "us$": "USD", "usd": "USD",
	"€": "EUR", "eur": "EUR",
	"£": "GBP", "gbp": "GBP",
}

// scaleUnits are the header multipliers financial tables announce, per
// the Indian and Western conventions ("Rs. in Lakhs", "in millions").
var scaleUnits = map[string]int64{
	"hundred":   1e2,
	"thousand":  1e3,
	"thousands": 1e3,
	"lakh":      1e5,
	"lakhs":     1e5,
	"lac":       1e5,
	"lacs":      1e5,
	"crore":     1e7,
	"crores":    1e7,
	"million":   1e6,
	"millions":  1e6,
	"mn":        1e6,
	"billion":   1e9,
	"billions":  1e9,
	"bn":        1e9,
}

// detectNumbers scans cleaned text for numeric tokens and parses each
// into an exact decimal with kind and currency tags. Unparseable
// tokens are skipped, never errors: a malformed number degrades the
// line's extracted data, it does not abort the line.
func detectNumbers(text string) []statement.DetectedNumber {
	var numbers []statement.DetectedNumber

	for _, loc := range numberToken.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		groups := numberToken.FindStringSubmatch(raw)
		if groups == nil {
			continue
		}

		currency := groups[1]
		openParen := groups[2] == "("
		digits := groups[3]
		closeParen := groups[4] == ")"
		suffix := groups[5]

		// A 1-2 digit bare parenthetical is a footnote marker, not a
		// value; the note-reference stripper owns those.
		if openParen && closeParen && len(digits) <= 2 && !strings.ContainsAny(digits, ",.'") {
			continue
		}

		value, ok := parseGroupedNumber(digits)
		if !ok {
			continue
		}
		if openParen && closeParen && value.IsPositive() {
			value = value.Neg()
		}

		kind := statement.NumberAmount
		switch {
		case suffix == "%":
			kind = statement.NumberPercentage
		case suffix != "":
			kind = statement.NumberRatio
		}

		numbers = append(numbers, statement.DetectedNumber{
			Raw:      strings.TrimSpace(raw),
			Value:    value,
			Kind:     kind,
			Currency: currencyCode(currency),
			Span:     statement.Span{Start: loc[0], End: loc[1]},
		})
	}

	return numbers
}

// parseGroupedNumber normalizes one digit group into a decimal. Four
// grouping conventions are supported: Western 3-digit commas, South
// Asian 2-3 digit commas, European period grouping with comma decimal,
// and apostrophe grouping.
func parseGroupedNumber(digits string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(digits, "'", "")
	s = strings.ReplaceAll(s, "’", "")
	s = strings.ReplaceAll(s, " ", "")

	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")

	switch {
	case hasComma && hasPeriod:
		// The rightmost separator is the decimal mark.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// European: 1.234.567,89
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// Western: 1,234,567.89
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		// Grouping commas, Western or South Asian; both just drop out.
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		// European grouping without a decimal part: 1.234.567
		s = strings.ReplaceAll(s, ".", "")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

// currencyCode resolves a matched marker to its ISO 4217 code.
func currencyCode(marker string) string {
	return currencyMarkers[strings.ToLower(strings.TrimSpace(marker))]
}

// DetectScale inspects table-header text like "Rs. in Lakhs" or
// "USD in millions" and returns the multiplier announced there plus
// the currency, defaulting to a multiplier of 1.
func DetectScale(header string) (decimal.Decimal, string) {
	lower := strings.ToLower(header)

	multiplier := decimal.NewFromInt(1)
	for unit, factor := range scaleUnits {
		if containsWord(lower, unit) {
			multiplier = decimal.NewFromInt(factor)
			break
		}
	}

	currency := ""
	for _, marker := range []string{"₹", "$", "€", "£"} {
		if strings.Contains(lower, marker) {
			currency = currencyCode(marker)
			break
		}
	}
	if currency == "" {
		for _, marker := range []string{"inr", "usd", "eur", "gbp", "rs", "rupees", "dollars", "euros"} {
			if containsWord(lower, marker) {
				switch marker {
				case "rupees":
					currency = currencyCode("rs")
				case "dollars":
					currency = currencyCode("$")
				case "euros":
					currency = currencyCode("€")
				default:
					currency = currencyCode(marker)
				}
				break
			}
		}
	}

	return multiplier, currency
}

func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(text[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(text) || !isWordByte(text[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(text[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
