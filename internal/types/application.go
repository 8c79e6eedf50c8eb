// Package types defines the shared domain model for internship matching and
// application tracking.
package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tracked application.
type Status string

// The five valid application statuses. Accepted and Rejected are terminal:
// the reconciler never transitions out of them.
const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// ParseStatus converts a raw string into a Status, rejecting anything outside
// the five-value enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusSubmitted, StatusReviewing, StatusAccepted, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown application status %q", s)
	}
}

// IsValid reports whether the status is one of the five enumerated values.
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsTerminal reports whether automated transitions out of this status are
// forbidden.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// UpdateSource identifies which signal source proposed a status transition.
type UpdateSource string

// Signal sources in reconciliation priority order.
const (
	SourceScraping UpdateSource = "scraping"
	SourceAPI      UpdateSource = "api"
	SourceManual   UpdateSource = "manual"
)

// Application links one user profile to one posting and tracks its status
// through the pipeline.
type Application struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	PostingID uuid.UUID  `json:"posting_id"`
	Status    Status     `json:"status"`
	Notes     string     `json:"notes"`
	AppliedOn *time.Time `json:"applied_on,omitempty"` // set once, on first transition into submitted
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StatusUpdateEvent describes one proposed status transition. It is ephemeral:
// it drives a single atomic write to the application record and is returned to
// the caller for diagnostics, but is never persisted independently.
type StatusUpdateEvent struct {
	ApplicationID uuid.UUID    `json:"application_id"`
	OldStatus     Status       `json:"old_status"`
	NewStatus     Status       `json:"new_status"`
	Source        UpdateSource `json:"source"`
	Rationale     string       `json:"rationale"`
	Timestamp     time.Time    `json:"timestamp"`
}

// NoteLine renders the synthetic note recorded on the application when the
// event is applied. The reconciler appends this to the existing notes rather
// than replacing them.
func (e StatusUpdateEvent) NoteLine() string {
	return fmt.Sprintf("[%s] %s → %s (source: %s): %s",
		e.Timestamp.UTC().Format(time.RFC3339), e.OldStatus, e.NewStatus, e.Source, e.Rationale)
}
