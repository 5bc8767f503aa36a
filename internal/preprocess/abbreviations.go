// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocess

// financialAbbreviations maps single-token abbreviations to their
// expanded phrase. Lookup happens on word-boundary tokens only, so
// substrings inside longer words are never expanded.
var financialAbbreviations = map[string]string{
	// Assets and equipment
	"ppe":   "property plant equipment",
	"cwip":  "capital work in progress",
	"cip":   "construction in progress",
	"rou":   "right of use",
	"capex": "capital expenditure",
	"opex":  "operating expenditure",

	// Financial instruments
	"ecl":   "expected credit loss",
	"fvtpl": "fair value through profit loss",
	"fvoci": "fair value through other comprehensive income",
	"oci":   "other comprehensive income",
	"htm":   "held to maturity",
	"afs":   "available for sale",

	// Earnings and performance
	"ebitda": "earnings before interest tax depreciation amortization",
	"ebit":   "earnings before interest tax",
	"ebt":    "earnings before tax",
	"eps":    "earnings per share",
	"bvps":   "book value per share",
	"nav":    "net asset value",
	"cogs":   "cost of goods sold",
	"pat":    "profit after tax",
	"pbt":    "profit before tax",

	// Statements and reporting
	"bs":   "balance sheet",
	"pl":   "profit loss",
	"pnl":  "profit and loss",
	"cfs":  "cash flow statement",
	"soce": "statement of changes in equity",
	"sofp": "statement of financial position",
	"socf": "statement of cash flows",

	// Taxation
	"dtl": "deferred tax liability",
	"dta": "deferred tax asset",
	"mat": "minimum alternate tax",
	"gst": "goods and services tax",
	"tds": "tax deducted at source",
	"vat": "value added tax",

	// Equity and capital
	"nci":  "non controlling interest",
	"kmp":  "key management personnel",
	"esop": "employee stock option plan",

	// Inventory and valuation
	"nrv":  "net realisable value",
	"fifo": "first in first out",
	"lifo": "last in first out",
	"wip":  "work in progress",

	// Other
	"jv":  "joint venture",
	"fy":  "financial year",
	"yoy": "year on year",
	"qoq": "quarter on quarter",
	"ytd": "year to date",
}

// multiWordAbbreviations are matched as whole phrases before the
// token-by-token pass, longest phrase first.
var multiWordAbbreviations = map[string]string{
	"ind as": "indian accounting standard",
	"indas":  "indian accounting standard",
	"ifrs":   "international financial reporting standard",
	"gaap":   "generally accepted accounting principles",
	"pp&e":   "property plant equipment",
	"d&a":    "depreciation and amortization",
	"r&d":    "research and development",
}

// compoundVariants equate concatenated compound words with their spaced
// form so "noncurrent" == "non-current" == "non current" after
// canonicalization.
var compoundVariants = map[string]string{
	"noncurrent":   "non current",
	"nonoperating": "non operating",
	"shortterm":    "short term",
	"longterm":     "long term",
	"pretax":       "pre tax",
	"workinprogress": "work in progress",
}

// signIndicators map line prefixes to a sign multiplier. Indicators are
// checked against the lowercased, trimmed start of the raw line.
// "Cr." marks credits (negative under the debit-positive convention),
// "Dr." debits.
var signIndicators = []struct {
	prefix     string
	multiplier int
}{
	{"less:", -1},
	{"less ", -1},
	{"(-)", -1},
	{"(cr.)", -1},
	{"(cr)", -1},
	{"cr.", -1},
	{"(dr.)", 1},
	{"(dr)", 1},
	{"dr.", 1},
	{"credit", -1},
	{"debit", 1},
}
