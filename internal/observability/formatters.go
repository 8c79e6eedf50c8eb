// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmorrow/interntrack/internal/matching"
	"github.com/jmorrow/interntrack/internal/tracking"
	"github.com/jmorrow/interntrack/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBatchResult outputs a human-readable summary of one scoring run.
func (p *Printer) PrintBatchResult(result *matching.BatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Scored:   %d\n", len(result.Results)))
	sb.WriteString(fmt.Sprintf("Buckets:  high %d / medium %d / low %d\n",
		result.HighCount, result.MediumCount, result.LowCount))

	count := min(len(result.Results), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\nTop matches:\n")
	}
	for i := 0; i < count; i++ {
		r := result.Results[i]
		sb.WriteString(fmt.Sprintf("  #%d  %.3f", i+1, r.Score))
		if r.Degraded {
			sb.WriteString(" (similarity only)")
		}
		sb.WriteString("\n")
		if r.Rationale != nil && len(r.Rationale.Strengths) > 0 {
			strengths := strings.Join(r.Rationale.Strengths, ", ")
			if len(strengths) > 40 {
				strengths = strengths[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("      %s\n", strengths))
		}
	}

	if len(result.Failures) > 0 {
		sb.WriteString(fmt.Sprintf("\nFailed: %d\n", len(result.Failures)))
		for i := 0; i < min(len(result.Failures), maxItemsToShow); i++ {
			f := result.Failures[i]
			sb.WriteString(fmt.Sprintf("  %s: %s\n", shortID(f.PostingID.String()), f.Reason))
		}
	}

	p.printBox("MATCH SCORING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReconcileResult outputs a human-readable summary of one reconciliation
// run, applied transitions included.
func (p *Printer) PrintReconcileResult(result *tracking.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Checked:  %d\n", result.CheckedCount))
	sb.WriteString(fmt.Sprintf("Updated:  %d\n", len(result.Updates)))

	for i := 0; i < min(len(result.Updates), maxItemsToShow); i++ {
		u := result.Updates[i]
		sb.WriteString(fmt.Sprintf("  %s  %s → %s (%s)\n",
			shortID(u.ApplicationID.String()), u.OldStatus, u.NewStatus, u.Source))
	}
	if len(result.Updates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Updates)-maxItemsToShow))
	}

	p.printBox("STATUS RECONCILIATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs tracking aggregates.
func (p *Printer) PrintInsights(insights *tracking.Insights) {
	if insights == nil || insights.Total == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tracked:       %d\n", insights.Total))
	sb.WriteString(fmt.Sprintf("Success rate:  %.0f%%\n", insights.SuccessRate*100))
	if insights.AvgResponseTime > 0 {
		sb.WriteString(fmt.Sprintf("Avg response:  %.1f days\n", insights.AvgResponseTime.Hours()/24))
	}

	for _, status := range []types.Status{
		types.StatusPending, types.StatusSubmitted, types.StatusReviewing,
		types.StatusAccepted, types.StatusRejected,
	} {
		if n := insights.StatusCounts[status]; n > 0 {
			sb.WriteString(fmt.Sprintf("  %-10s %d\n", status, n))
		}
	}

	p.printBox("TRACKING INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
