package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jmorrow/interntrack/internal/types"
)

// apiCheckTimeout bounds each third-party status lookup.
const apiCheckTimeout = 30 * time.Second

// APISource checks a third-party application-tracking API for a status
// change. Second-priority signal source.
type APISource struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewAPISource creates an API signal source. An empty baseURL disables the
// source: every check returns no proposal.
func NewAPISource(baseURL, apiKey string, client *http.Client, logger *zap.Logger) *APISource {
	if client == nil {
		client = &http.Client{Timeout: apiCheckTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APISource{baseURL: baseURL, apiKey: apiKey, client: client, logger: logger}
}

// Name identifies this source on status update events.
func (s *APISource) Name() types.UpdateSource {
	return types.SourceAPI
}

// apiStatusResponse is the third-party API's status payload.
type apiStatusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Check looks the application up by ID. A 404 means the service does not know
// this application and is not an error. The returned status string is passed
// through as-is; the reconciler rejects values outside the enumeration.
func (s *APISource) Check(ctx context.Context, app *types.Application, _ *types.Posting) (*Proposal, error) {
	if s.baseURL == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, apiCheckTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/applications/%s/status", s.baseURL, app.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("api check request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api check: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api check: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api check: read body: %w", err)
	}

	var payload apiStatusResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("api check: decode body: %w", err)
	}
	if payload.Status == "" {
		return nil, nil
	}

	rationale := payload.Detail
	if rationale == "" {
		rationale = "third-party API reported status " + payload.Status
	}
	return &Proposal{Status: types.Status(payload.Status), Rationale: rationale}, nil
}
