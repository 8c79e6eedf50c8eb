package tracking

import (
	"time"

	"github.com/jmorrow/interntrack/internal/types"
)

// Insights are derived aggregates over one user's applications. Recomputed
// fully on every reconciliation run; never persisted.
type Insights struct {
	StatusCounts    map[types.Status]int `json:"status_counts"`
	Total           int                  `json:"total"`
	SuccessRate     float64              `json:"success_rate"`
	AvgResponseTime time.Duration        `json:"avg_response_time"`
}

// ComputeInsights derives aggregate statistics from the full application
// list. Success rate is accepted/total; average response time covers
// non-pending applications with a known applied-on date, measured from
// applied-on to last update.
func ComputeInsights(apps []types.Application) Insights {
	insights := Insights{
		StatusCounts: make(map[types.Status]int),
		Total:        len(apps),
	}

	var responded int
	var totalResponse time.Duration
	for _, app := range apps {
		insights.StatusCounts[app.Status]++

		if app.Status == types.StatusPending || app.AppliedOn == nil {
			continue
		}
		if d := app.UpdatedAt.Sub(*app.AppliedOn); d > 0 {
			totalResponse += d
			responded++
		}
	}

	if insights.Total > 0 {
		insights.SuccessRate = float64(insights.StatusCounts[types.StatusAccepted]) / float64(insights.Total)
	}
	if responded > 0 {
		insights.AvgResponseTime = totalResponse / time.Duration(responded)
	}

	return insights
}
