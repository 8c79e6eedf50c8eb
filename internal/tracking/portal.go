package tracking

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jmorrow/interntrack/internal/fetch"
	"github.com/jmorrow/interntrack/internal/types"
)

// statusPhrases maps portal wording to application statuses. Checked in
// order, so decisive outcomes win over softer signals.
var statusPhrases = []struct {
	phrase string
	status types.Status
}{
	{"congratulations", types.StatusAccepted},
	{"offer extended", types.StatusAccepted},
	{"we are pleased to offer", types.StatusAccepted},
	{"unfortunately", types.StatusRejected},
	{"not moving forward", types.StatusRejected},
	{"no longer under consideration", types.StatusRejected},
	{"under review", types.StatusReviewing},
	{"in review", types.StatusReviewing},
	{"interview", types.StatusReviewing},
	{"application received", types.StatusSubmitted},
	{"application submitted", types.StatusSubmitted},
}

// PortalSource checks the employer's application portal for a status change.
// Highest-priority signal source.
type PortalSource struct {
	fetcher fetch.Fetcher
	logger  *zap.Logger
}

// NewPortalSource creates a portal signal source.
func NewPortalSource(fetcher fetch.Fetcher, logger *zap.Logger) *PortalSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalSource{fetcher: fetcher, logger: logger}
}

// Name identifies this source on status update events.
func (s *PortalSource) Name() types.UpdateSource {
	return types.SourceScraping
}

// Check fetches the posting's portal page and extracts a status from it.
// Returns nil when the posting has no URL or the page carries no recognizable
// status wording.
func (s *PortalSource) Check(ctx context.Context, _ *types.Application, posting *types.Posting) (*Proposal, error) {
	if posting == nil || posting.URL == "" {
		return nil, nil
	}

	result, err := s.fetcher.Fetch(ctx, posting.URL)
	if err != nil {
		return nil, fmt.Errorf("portal fetch: %w", err)
	}
	if result.StatusCode >= 400 {
		s.logger.Debug("portal returned error status",
			zap.String("url", posting.URL),
			zap.Int("http_status", result.StatusCode),
		)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("portal parse: %w", err)
	}

	// Prefer dedicated status elements for the detected platform, then fall
	// back to scanning the page body.
	platform := fetch.DetectPlatform(posting.URL)
	for _, selector := range fetch.PlatformStatusSelectors(platform) {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if status, ok := mapPortalText(text); ok {
			return &Proposal{
				Status:    status,
				Rationale: fmt.Sprintf("portal status element reads %q", truncate(text, 80)),
			}, nil
		}
	}

	body := doc.Find("body").Text()
	if status, ok := mapPortalText(body); ok {
		return &Proposal{
			Status:    status,
			Rationale: "portal page wording indicates " + string(status),
		}, nil
	}

	return nil, nil
}

// mapPortalText maps portal wording to a status.
func mapPortalText(text string) (types.Status, bool) {
	lower := strings.ToLower(text)
	for _, sp := range statusPhrases {
		if strings.Contains(lower, sp.phrase) {
			return sp.status, true
		}
	}
	return "", false
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
