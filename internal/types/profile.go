package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is a user's aggregated career profile, assembled from their resume
// and any linked GitHub/LinkedIn text. Read-only from the scoring core's
// perspective.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Summary      string    `json:"summary"`
	ResumeText   string    `json:"resume_text"`
	GithubText   string    `json:"github_text"`
	LinkedinText string    `json:"linkedin_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmbeddingText builds the text sent to the embedding service for this
// profile.
func (p *Profile) EmbeddingText() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Summary, p.ResumeText, p.GithubText, p.LinkedinText} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, "\n")
}
