package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jmorrow/interntrack/internal/llm"
	"github.com/jmorrow/interntrack/internal/prompts"
	"github.com/jmorrow/interntrack/internal/schemas"
	"github.com/jmorrow/interntrack/internal/types"
)

// predictionMinAge is how long an application must sit in its current state
// before the heuristic predictor will weigh in. Fresh applications carry no
// time signal worth predicting on.
const predictionMinAge = 3 * 24 * time.Hour

// predictTimeout bounds each prediction LLM call.
const predictTimeout = 30 * time.Second

// PredictorSource proposes a status from elapsed time plus an LLM judgment
// call. Lowest-priority signal source.
type PredictorSource struct {
	client llm.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewPredictorSource creates a heuristic prediction source.
func NewPredictorSource(client llm.Client, logger *zap.Logger) *PredictorSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictorSource{client: client, logger: logger, now: time.Now}
}

// Name identifies this source on status update events.
func (s *PredictorSource) Name() types.UpdateSource {
	return types.SourceManual
}

// predictionResponse is the expected JSON shape of the predict-status
// response.
type predictionResponse struct {
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Check asks the LLM for a likely current status once the application has
// been in its state for at least three days. A predicted status outside the
// enumeration fails with *InvalidStatusProposedError; a malformed response is
// treated as no update, never an error surfaced past this source.
func (s *PredictorSource) Check(ctx context.Context, app *types.Application, posting *types.Posting) (*Proposal, error) {
	age := s.now().Sub(app.UpdatedAt)
	if age < predictionMinAge {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, predictTimeout)
	defer cancel()

	raw, err := s.client.GenerateJSON(ctx, s.buildPrompt(app, posting), llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("prediction: %w", err)
	}

	cleaned := llm.ExtractJSONObject(raw)
	if err := schemas.Validate(schemas.StatusPrediction, cleaned); err != nil {
		s.logger.Debug("prediction response failed schema validation",
			zap.String("application_id", app.ID.String()),
			zap.Error(err),
		)
		return nil, nil
	}

	var resp predictionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, nil
	}

	status, err := types.ParseStatus(resp.Status)
	if err != nil {
		return nil, &InvalidStatusProposedError{Proposed: resp.Status, Source: s.Name()}
	}
	if status == app.Status {
		return nil, nil
	}

	rationale := resp.Reasoning
	if rationale == "" {
		rationale = fmt.Sprintf("predicted after %.0f days in %s", age.Hours()/24, app.Status)
	}
	return &Proposal{Status: status, Rationale: rationale}, nil
}

func (s *PredictorSource) buildPrompt(app *types.Application, posting *types.Posting) string {
	now := s.now()
	daysInStatus := now.Sub(app.UpdatedAt).Hours() / 24

	appliedRef := app.CreatedAt
	if app.AppliedOn != nil {
		appliedRef = *app.AppliedOn
	}
	daysSinceApplied := now.Sub(appliedRef).Hours() / 24

	company, title := "unknown", "unknown"
	if posting != nil {
		if posting.Company != "" {
			company = posting.Company
		}
		if posting.Title != "" {
			title = posting.Title
		}
	}

	template := prompts.MustGet("tracking.json", "predict-status")
	return prompts.Format(template, map[string]string{
		"CurrentStatus":    string(app.Status),
		"DaysInStatus":     strconv.Itoa(int(daysInStatus)),
		"DaysSinceApplied": strconv.Itoa(int(daysSinceApplied)),
		"Company":          company,
		"Title":            title,
	})
}
