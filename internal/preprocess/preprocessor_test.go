// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocess

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"finterm/internal/statement"
)

func TestPreprocess_CanonicalForm(t *testing.T) {
	p := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and punctuation folding",
			input: "Property, Plant and Equipment",
			want:  "property plant and equipment",
		},
		{
			name:  "dot leaders collapse",
			input: "Cash and cash equivalents......1,234",
			want:  "cash and cash equivalents 1234",
		},
		{
			name:  "note reference stripped",
			input: "Inventories (see note 8)",
			want:  "inventories",
		},
		{
			name:  "compound variant folds to spaced form",
			input: "Noncurrent liabilities",
			want:  "non current liabilities",
		},
		{
			name:  "slash and hyphen become separators",
			input: "Short-term loans/advances",
			want:  "short term loans advances",
		},
		{
			name:  "south asian grouping folds",
			input: "Total Assets 4,50,000",
			want:  "total assets 450000",
		},
		{
			name:  "em dash folds to space",
			input: "Property — Plant",
			want:  "property plant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.PreprocessText(tt.input).CanonicalForm
			if got != tt.want {
				t.Errorf("CanonicalForm = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreprocess_Idempotent(t *testing.T) {
	p := New()

	// Preprocessing an already-canonical line must be a no-op.
	inputs := []string{
		"Less: Provision for doubtful debts 1,234",
		"PPE & CWIP (Note 12)",
		"Total Revenue 10,00,000",
		"EBITDA 5,000",
		"Cash and cash equivalents......1,234",
	}
	for _, input := range inputs {
		once := p.PreprocessText(input).CanonicalForm
		twice := p.PreprocessText(once).CanonicalForm
		if once != twice {
			t.Errorf("not idempotent for %q: %q -> %q", input, once, twice)
		}
	}
}

func TestPreprocess_AbbreviationExpansion(t *testing.T) {
	p := New()

	line := p.PreprocessText("PPE & CWIP (Note 12)")

	if !strings.Contains(line.CanonicalForm, "property plant equipment") {
		t.Errorf("expected ppe expansion in %q", line.CanonicalForm)
	}
	if !strings.Contains(line.CanonicalForm, "capital work in progress") {
		t.Errorf("expected cwip expansion in %q", line.CanonicalForm)
	}
	if strings.Contains(line.CanonicalForm, "note") {
		t.Errorf("note reference leaked into canonical form %q", line.CanonicalForm)
	}
	if len(line.StrippedNoteRefs) != 1 {
		t.Fatalf("expected 1 stripped note ref, got %v", line.StrippedNoteRefs)
	}
	if len(line.Abbreviations) != 2 {
		t.Errorf("expected 2 expanded abbreviations, got %v", line.Abbreviations)
	}
}

func TestPreprocess_AbbreviationWordBoundary(t *testing.T) {
	p := New()

	// "pat" inside a longer word must not expand.
	line := p.PreprocessText("Patents and licenses")
	if strings.Contains(line.CanonicalForm, "profit after tax") {
		t.Errorf("substring expansion leaked: %q", line.CanonicalForm)
	}
}

func TestPreprocess_SignDetection(t *testing.T) {
	p := New()

	tests := []struct {
		input string
		want  int
	}{
		{"Less: Provision for doubtful debts 1,234", -1},
		{"Less depreciation 500", -1},
		{"(-) Adjustments 100", -1},
		{"Trade Receivables (1,234)", -1},
		{"Total Revenue 1,234", 1},
		{"Dr. Balance 500", 1},
		{"Cr. Balance 500", -1},
		// A footnote marker is not a parenthesised figure.
		{"Investments (12) 5,000", 1},
		{"Goodwill (Note 3) 2,000", 1},
	}

	for _, tt := range tests {
		if got := p.PreprocessText(tt.input).SignMultiplier; got != tt.want {
			t.Errorf("SignMultiplier(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestPreprocess_SignedValues(t *testing.T) {
	p := New()

	tests := []struct {
		input string
		want  string
	}{
		// Prefix indicator negates the detected amount.
		{"Less: Provision for doubtful debts 1,234", "-1234"},
		// Paren figure is already negative; no double negation.
		{"Trade Receivables (1,234)", "-1234"},
		{"Less: Impairment (2,500)", "-2500"},
		{"Total Revenue 1,234", "1234"},
		// A footnote marker must not flip the line's real amount.
		{"Investments (12) 5,000", "5000"},
	}

	for _, tt := range tests {
		line := p.PreprocessText(tt.input)
		values := statement.SignedNumbers(line)
		if len(values) != 1 {
			t.Fatalf("SignedNumbers(%q) = %v, want one value", tt.input, values)
		}
		if values[0].String() != tt.want {
			t.Errorf("SignedNumbers(%q) = %s, want %s", tt.input, values[0], tt.want)
		}
	}
}

func TestPreprocess_NumberFormats(t *testing.T) {
	p := New()

	tests := []struct {
		name     string
		input    string
		value    string
		kind     statement.NumberKind
		currency string
	}{
		{"western grouping", "Revenue 1,234,567.89", "1234567.89", statement.NumberAmount, ""},
		{"south asian grouping", "Revenue 12,34,567", "1234567", statement.NumberAmount, ""},
		{"european grouping", "Revenue 1.234.567,89", "1234567.89", statement.NumberAmount, ""},
		{"apostrophe grouping", "Revenue 1'234'567", "1234567", statement.NumberAmount, ""},
		{"paren negative", "Impairment (1,234)", "-1234", statement.NumberAmount, ""},
		{"percentage", "Growth 45%", "45", statement.NumberPercentage, ""},
		{"ratio multiple", "Current ratio 2.5x", "2.5", statement.NumberRatio, ""},
		{"rupee marker", "₹ 1,234", "1234", statement.NumberAmount, "INR"},
		{"dollar marker", "$ 1,234", "1234", statement.NumberAmount, "USD"},
		{"rs marker", "Rs. 5,000", "5000", statement.NumberAmount, "INR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := p.PreprocessText(tt.input)
			if len(line.DetectedNumbers) != 1 {
				t.Fatalf("DetectedNumbers(%q) = %v, want one", tt.input, line.DetectedNumbers)
			}
			n := line.DetectedNumbers[0]
			if n.Value.String() != tt.value {
				t.Errorf("value = %s, want %s", n.Value, tt.value)
			}
			if n.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", n.Kind, tt.kind)
			}
			if n.Currency != tt.currency {
				t.Errorf("currency = %q, want %q", n.Currency, tt.currency)
			}
		})
	}
}

func TestPreprocess_FootnoteMarkerIsNotAValue(t *testing.T) {
	p := New()

	line := p.PreprocessText("Goodwill (2)")
	if len(line.DetectedNumbers) != 0 {
		t.Errorf("footnote marker parsed as value: %v", line.DetectedNumbers)
	}
}

func TestPreprocess_EmptyLine(t *testing.T) {
	p := New()

	line := p.PreprocessText("   \t  ")
	if line.CanonicalForm != "" {
		t.Errorf("expected empty canonical form, got %q", line.CanonicalForm)
	}
	if len(line.DetectedNumbers) != 0 {
		t.Errorf("expected no numbers, got %v", line.DetectedNumbers)
	}
}

func TestNormalizeKey(t *testing.T) {
	p := New()

	tests := []struct {
		input string
		want  string
	}{
		{"Property, Plant and Equipment", "property plant and equipment"},
		{"Non-Current Assets", "non current assets"},
		{"cost of goods sold", "cost of goods sold"},
	}
	for _, tt := range tests {
		if got := p.NormalizeKey(tt.input); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetectScale(t *testing.T) {
	tests := []struct {
		header     string
		multiplier int64
		currency   string
	}{
		{"Rs. in Lakhs", 1e5, "INR"},
		{"(USD in millions)", 1e6, "USD"},
		{"All amounts in ₹ crore", 1e7, "INR"},
		{"Amounts in thousands", 1e3, ""},
		{"Particulars", 1, ""},
	}

	for _, tt := range tests {
		mult, currency := DetectScale(tt.header)
		if !mult.Equal(decimal.NewFromInt(tt.multiplier)) {
			t.Errorf("DetectScale(%q) multiplier = %s, want %d", tt.header, mult, tt.multiplier)
		}
		if currency != tt.currency {
			t.Errorf("DetectScale(%q) currency = %q, want %q", tt.header, currency, tt.currency)
		}
	}
}
