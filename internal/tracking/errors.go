// Package tracking implements application status reconciliation: merging
// portal, third-party API, and heuristic prediction signals into at most one
// status transition per tracked application.
package tracking

import (
	"fmt"

	"github.com/jmorrow/interntrack/internal/types"
)

// InvalidStatusProposedError reports a signal source proposing a status
// outside the five-value enumeration. The proposal is rejected and never
// written; the current status is left unchanged.
type InvalidStatusProposedError struct {
	Proposed string
	Source   types.UpdateSource
}

func (e *InvalidStatusProposedError) Error() string {
	return fmt.Sprintf("source %s proposed invalid status %q", e.Source, e.Proposed)
}

// ReconciliationFetchError reports that the application list could not be
// loaded at all. Fatal to the whole reconciliation invocation.
type ReconciliationFetchError struct {
	Cause error
}

func (e *ReconciliationFetchError) Error() string {
	return fmt.Sprintf("failed to fetch applications: %v", e.Cause)
}

func (e *ReconciliationFetchError) Unwrap() error {
	return e.Cause
}
