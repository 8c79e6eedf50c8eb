package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Posting is one candidate internship posting.
type Posting struct {
	ID           uuid.UUID  `json:"id"`
	Company      string     `json:"company"`
	Title        string     `json:"title"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	URL          string     `json:"url"`
	MatchScore   *float64   `json:"match_score,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ScoredAt     *time.Time `json:"scored_at,omitempty"`
}

// EmbeddingText builds the text sent to the embedding service for this
// posting. Empty sections are omitted so sparse postings still embed cleanly.
func (p *Posting) EmbeddingText() string {
	parts := make([]string, 0, 5)
	for _, s := range []string{p.Title, p.Company, p.Location, p.Description, p.Requirements} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, "\n")
}
