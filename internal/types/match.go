package types

import "github.com/google/uuid"

// SubScores holds the four LLM-judged attribute scores for one
// profile/posting pair. All values are in [0,1].
type SubScores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
	Company    float64 `json:"company"`
}

// Weighted combines the sub-scores using the given weights. Weights are used
// as given; callers validate them beforehand.
func (s SubScores) Weighted(w Weights) float64 {
	return s.Skills*w.Skills + s.Experience*w.Experience + s.Location*w.Location + s.Company*w.Company
}

// MatchRationale carries the LLM's advisory output alongside the sub-scores.
// It is passed through for display and persistence only and never affects the
// score.
type MatchRationale struct {
	Strengths       []string `json:"strengths,omitempty"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// ScoredPosting is the per-posting outcome of a batch scoring run.
type ScoredPosting struct {
	PostingID  uuid.UUID       `json:"posting_id"`
	Score      float64         `json:"score"`
	Similarity float64         `json:"similarity"`
	Weighted   *float64        `json:"weighted,omitempty"` // nil when degraded
	Degraded   bool            `json:"degraded"`
	SubScores  *SubScores      `json:"sub_scores,omitempty"`
	Rationale  *MatchRationale `json:"rationale,omitempty"`
}

// PostingFailure records a posting that could not be scored at all (stage-1
// embedding failure). Surfaced in the batch result instead of failing the run.
type PostingFailure struct {
	PostingID uuid.UUID `json:"posting_id"`
	Reason    string    `json:"reason"`
}
