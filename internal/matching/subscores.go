package matching

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jmorrow/interntrack/internal/llm"
	"github.com/jmorrow/interntrack/internal/prompts"
	"github.com/jmorrow/interntrack/internal/schemas"
	"github.com/jmorrow/interntrack/internal/types"
)

// subScoreTimeout bounds each sub-score LLM call.
const subScoreTimeout = 30 * time.Second

// subScoreResponse is the expected JSON shape of the judge-match response.
// Advisory fields are passed through for display and never affect the score.
type subScoreResponse struct {
	Skills          float64  `json:"skills"`
	Experience      float64  `json:"experience"`
	Location        float64  `json:"location"`
	Company         float64  `json:"company"`
	Strengths       []string `json:"strengths"`
	MissingSkills   []string `json:"missing_skills"`
	Recommendations []string `json:"recommendations"`
}

// SubScorer produces the four attribute sub-scores for one profile/posting
// pair. Implementations return *ScoreUnavailableError when scores cannot be
// obtained; callers fall back to the degraded similarity-only score.
type SubScorer interface {
	Score(ctx context.Context, profileSummary string, posting *types.Posting) (*types.SubScores, *types.MatchRationale, error)
}

// LLMScorer implements SubScorer against the completion service.
type LLMScorer struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMScorer creates a sub-scorer backed by the given LLM client.
func NewLLMScorer(client llm.Client, logger *zap.Logger) *LLMScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMScorer{client: client, logger: logger}
}

// Score requests sub-scores from the completion service and validates the
// response against the sub-score schema before decoding. Generation failures
// and malformed responses both surface as *ScoreUnavailableError; no retries
// happen here.
func (s *LLMScorer) Score(ctx context.Context, profileSummary string, posting *types.Posting) (*types.SubScores, *types.MatchRationale, error) {
	prompt := buildJudgePrompt(profileSummary, posting)

	ctx, cancel := context.WithTimeout(ctx, subScoreTimeout)
	defer cancel()

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, nil, &ScoreUnavailableError{Message: "LLM generation failed", Cause: err}
	}

	cleaned := llm.ExtractJSONObject(raw)
	if err := schemas.Validate(schemas.SubScores, cleaned); err != nil {
		s.logger.Warn("sub-score response failed schema validation",
			zap.String("posting_id", posting.ID.String()),
			zap.Error(err),
		)
		return nil, nil, &ScoreUnavailableError{Message: "response failed schema validation", Cause: err}
	}

	var resp subScoreResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, nil, &ScoreUnavailableError{Message: "failed to decode response", Cause: err}
	}

	scores := &types.SubScores{
		Skills:     resp.Skills,
		Experience: resp.Experience,
		Location:   resp.Location,
		Company:    resp.Company,
	}
	rationale := &types.MatchRationale{
		Strengths:       resp.Strengths,
		MissingSkills:   resp.MissingSkills,
		Recommendations: resp.Recommendations,
	}
	return scores, rationale, nil
}

// buildJudgePrompt constructs the sub-score prompt for one pair.
func buildJudgePrompt(profileSummary string, posting *types.Posting) string {
	template := prompts.MustGet("matching.json", "judge-match")
	return prompts.Format(template, map[string]string{
		"ProfileSummary": profileSummary,
		"Title":          posting.Title,
		"Company":        posting.Company,
		"Location":       posting.Location,
		"Description":    posting.Description,
		"Requirements":   posting.Requirements,
	})
}
