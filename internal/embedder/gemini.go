// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package embedder

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// Gemini embeds text through the Gemini embedding API. The client is
// created lazily on first use so constructing the engine never requires
// credentials; a concurrency gate bounds in-flight API calls.
type Gemini struct {
	model string

	initOnce sync.Once
	initErr  error
	client   *genai.Client

	gate chan struct{}
}

// NewGemini builds a Gemini embedder for model, limiting concurrent
// Embed calls to maxInFlight (minimum 1).
func NewGemini(model string, maxInFlight int) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Gemini{
		model: model,
		gate:  make(chan struct{}, maxInFlight),
	}
}

func (g *Gemini) Enabled() bool { return true }

// Embed returns the embedding vector for text. API credentials come
// from the environment (GEMINI_API_KEY or application default
// credentials); the first call pays client construction.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	g.initOnce.Do(func() {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			g.initErr = fmt.Errorf("creating embedding client: %w", err)
			return
		}
		g.client = client
	})
	if g.initErr != nil {
		return nil, g.initErr
	}

	select {
	case g.gate <- struct{}{}:
		defer func() { <-g.gate }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embedding %q: %w", text, err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embedding %q: empty response", text)
	}
	return resp.Embeddings[0].Values, nil
}
