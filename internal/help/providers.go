// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

type staticProvider struct {
	info LayerInfo
}

func (p staticProvider) GetLayerInfo() LayerInfo {
	return p.info
}

func builtinProviders() []Provider {
	return []Provider{
		staticProvider{LayerInfo{
			Name:                "exact",
			ShortDescription:    "Word-boundary phrase and acronym lookup against the term index",
			DetailedDescription: "Scans 1-6 word windows of the normalized line against the keyword index and short tokens against the acronym index. Exact hits score full confidence scaled by term priority; longer phrases earn a specificity bonus.",
			Thresholds: []string{
				"exact phrase: confidence 1.0 x priority",
				"acronym: confidence 0.95 x priority",
			},
			Examples: []string{
				`finterm --text "Total Current Assets 4,50,000"`,
			},
		}},
		staticProvider{LayerInfo{
			Name:                "fuzzy",
			ShortDescription:    "OCR-tolerant string similarity against a length-bucketed shortlist",
			DetailedDescription: "Compares the line's label against keywords of similar word count with three similarity metrics. The first metric clearing its threshold wins for a keyword. Catches single-character OCR noise and word-order drift.",
			Thresholds: []string{
				"token-set ratio >= 85 (word-order invariant)",
				"partial ratio >= 90 (substring tolerant)",
				"edit-distance ratio >= 80",
			},
			Notes: []string{
				"Runs only when no exact match covers the line label.",
			},
			Examples: []string{
				`finterm --text "Propertv, Plant and Equipment 12,345"`,
			},
		}},
		staticProvider{LayerInfo{
			Name:                "semantic",
			ShortDescription:    "Embedding cosine similarity for synonym drift across standards",
			DetailedDescription: "Embeds the line label and compares it against cached term embeddings by cosine similarity. Requires the embedding capability; without it the layer is skipped silently and the engine keeps working.",
			Thresholds: []string{
				"cosine similarity >= 0.75",
			},
			Notes: []string{
				"Only reached when the exact and fuzzy layers produced nothing.",
				"Enable via embedding.enabled in the config file; credentials come from GEMINI_API_KEY.",
			},
		}},
		staticProvider{LayerInfo{
			Name:                "hierarchical",
			ShortDescription:    "Specificity boost for child terms over their parents",
			DetailedDescription: "When a term and its parent both match a line, the child's confidence is boosted per extra keyword word so specific line items win over generic headings.",
			Thresholds: []string{
				"child boost: x1.2 per word beyond the first",
			},
			Examples: []string{
				`finterm --text "Total Non-Current Assets 9,87,650"`,
			},
		}},
	}
}
