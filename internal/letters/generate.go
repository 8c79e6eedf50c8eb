// Package letters generates cover letters for internship applications from a
// candidate profile and a posting.
package letters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jmorrow/interntrack/internal/llm"
	"github.com/jmorrow/interntrack/internal/prompts"
	"github.com/jmorrow/interntrack/internal/types"
)

// generateTimeout bounds each cover-letter generation call.
const generateTimeout = 30 * time.Second

// DefaultTone is used when no tone is requested.
const DefaultTone = "professional and enthusiastic"

// Options configures letter generation.
type Options struct {
	Tone string
	Tier llm.ModelTier
}

// Letter is one generated cover letter.
type Letter struct {
	PostingID   string    `json:"posting_id"`
	Body        string    `json:"body"`
	Tone        string    `json:"tone"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerateError signals a failed letter generation.
type GenerateError struct {
	Message string
	Cause   error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("letter generation failed: %s: %v", e.Message, e.Cause)
	}
	return "letter generation failed: " + e.Message
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// Writer generates cover letters through the LLM client.
type Writer struct {
	client llm.Client
	logger *zap.Logger
}

// NewWriter creates a letter writer.
func NewWriter(client llm.Client, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{client: client, logger: logger}
}

// Generate produces a cover letter for one posting. Nil options select the
// default tone and the standard model tier.
func (w *Writer) Generate(ctx context.Context, profile *types.Profile, posting *types.Posting, opts *Options) (*Letter, error) {
	if profile == nil {
		return nil, &GenerateError{Message: "profile is required"}
	}
	if posting == nil {
		return nil, &GenerateError{Message: "posting is required"}
	}

	tone := DefaultTone
	tier := llm.TierAdvanced
	if opts != nil {
		if opts.Tone != "" {
			tone = opts.Tone
		}
		if opts.Tier != "" {
			tier = opts.Tier
		}
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	template := prompts.MustGet("letters.json", "cover-letter")
	prompt := prompts.Format(template, map[string]string{
		"ProfileSummary": profile.EmbeddingText(),
		"Title":          posting.Title,
		"Company":        posting.Company,
		"Description":    posting.Description,
		"Requirements":   posting.Requirements,
		"Tone":           tone,
	})

	raw, err := w.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return nil, &GenerateError{Message: "model call failed", Cause: err}
	}

	body := strings.TrimSpace(raw)
	if body == "" {
		return nil, &GenerateError{Message: "model returned an empty letter"}
	}

	w.logger.Debug("generated cover letter",
		zap.String("posting_id", posting.ID.String()),
		zap.String("tone", tone),
		zap.Int("length", len(body)),
	)

	return &Letter{
		PostingID:   posting.ID.String(),
		Body:        body,
		Tone:        tone,
		GeneratedAt: time.Now(),
	}, nil
}
