// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package embedder defines the pluggable embedding capability used by
// the semantic matching layer. The engine must work with the capability
// absent, so the zero configuration is an explicit disabled variant
// rather than a nil check scattered through callers.
package embedder

import (
	"context"
	"errors"
	"math"
)

// ErrDisabled is returned by the disabled embedder. Callers treat it as
// "skip the semantic layer", never as a pipeline failure.
var ErrDisabled = errors.New("embedding capability not configured")

// Embedder turns text into a dense vector. Implementations may block on
// model inference; callers pass a context and bound their concurrency.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// Enabled reports whether Embed can ever succeed. A false value
	// lets callers skip work (and log once) instead of probing.
	Enabled() bool
}

// Disabled returns the explicit no-capability variant.
func Disabled() Embedder {
	return disabled{}
}

type disabled struct{}

func (disabled) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrDisabled
}

func (disabled) Enabled() bool { return false }

// Cosine computes cosine similarity between two vectors, 0 when either
// is empty or lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
