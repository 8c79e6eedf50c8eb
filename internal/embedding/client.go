// Package embedding provides the vector-embedding service client. The
// service is opaque: text in, fixed-length vector out. A failed embedding is
// a hard stop for the record being embedded; there is no fallback vector.
package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jmorrow/interntrack/internal/ratelimit"
)

// defaultModel is the embedding model used when none is configured.
const defaultModel = "text-embedding-004"

// Embedder converts text into a fixed-length numeric vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Close() error
}

// GeminiEmbedder implements Embedder against the Gemini embedding API.
type GeminiEmbedder struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.Limiter
}

// NewGeminiEmbedder creates an embedding client. An empty model selects the
// default; the limiter may be nil.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, limiter *ratelimit.Limiter) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model, limiter: limiter}, nil
}

// Embed requests a vector for the given text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	em := e.client.EmbeddingModel(e.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	vector := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Close releases resources held by the client.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
