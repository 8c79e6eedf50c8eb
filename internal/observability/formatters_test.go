package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jmorrow/interntrack/internal/matching"
	"github.com/jmorrow/interntrack/internal/tracking"
	"github.com/jmorrow/interntrack/internal/types"
)

func TestPrintBatchResult(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintBatchResult(&matching.BatchResult{
		Results: []types.ScoredPosting{
			{PostingID: uuid.New(), Score: 0.91, Rationale: &types.MatchRationale{Strengths: []string{"Go backend work"}}},
			{PostingID: uuid.New(), Score: 0.42, Degraded: true},
		},
		HighCount: 1,
		LowCount:  1,
		Failures: []types.PostingFailure{
			{PostingID: uuid.New(), Reason: "embedding failed"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "MATCH SCORING")
	assert.Contains(t, out, "0.910")
	assert.Contains(t, out, "similarity only")
	assert.Contains(t, out, "Go backend work")
	assert.Contains(t, out, "embedding failed")
}

func TestPrintBatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatchResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintReconcileResult(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintReconcileResult(&tracking.Result{
		CheckedCount: 3,
		Updates: []types.StatusUpdateEvent{
			{
				ApplicationID: uuid.New(),
				OldStatus:     types.StatusSubmitted,
				NewStatus:     types.StatusReviewing,
				Source:        types.SourceScraping,
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "STATUS RECONCILIATION")
	assert.Contains(t, out, "Checked:  3")
	assert.Contains(t, out, "submitted → reviewing")
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintInsights(&tracking.Insights{
		Total:       4,
		SuccessRate: 0.25,
		StatusCounts: map[types.Status]int{
			types.StatusSubmitted: 2,
			types.StatusAccepted:  1,
			types.StatusRejected:  1,
		},
		AvgResponseTime: 72 * time.Hour,
	})

	out := buf.String()
	assert.Contains(t, out, "TRACKING INSIGHTS")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "3.0 days")
	assert.True(t, strings.Contains(out, "submitted"))
}

func TestBoxLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	long := strings.Repeat("x", 200)
	printer.PrintBatchResult(&matching.BatchResult{
		Failures: []types.PostingFailure{{PostingID: uuid.New(), Reason: long}},
	})

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
