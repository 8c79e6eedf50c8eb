package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmorrow/interntrack/internal/types"
)

// debounceWindow is the minimum interval between checks of one application.
// Records updated more recently are skipped without any external call, which
// is what keeps repeated scheduled runs cheap.
const debounceWindow = 6 * time.Hour

// Store is the persistence surface the reconciler needs. Writes are
// single-record, last-write-wins.
type Store interface {
	GetApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error)
	GetPosting(ctx context.Context, id uuid.UUID) (*types.Posting, error)
	// UpdateApplicationStatus applies one transition atomically: new status,
	// bumped updated_at, appended note, and applied_on set on the first
	// transition into submitted.
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.Status, note string, ts time.Time) error
}

// Result is the outcome of one reconciliation run.
type Result struct {
	CheckedCount int                       `json:"checked_count"`
	Updates      []types.StatusUpdateEvent `json:"updates"`
	Insights     Insights                  `json:"insights"`
}

// Reconciler merges signal sources into at most one status transition per
// application per run.
type Reconciler struct {
	store   Store
	sources []SignalSource // fixed priority order
	logger  *zap.Logger
	now     func() time.Time
}

// NewReconciler creates a reconciler. Sources are consulted in the order
// given; the conventional order is portal, API, predictor.
func NewReconciler(store Store, sources []SignalSource, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{store: store, sources: sources, logger: logger, now: time.Now}
}

// ReconcileStatuses runs one reconciliation pass over a user's applications.
// Failure to load the application list is fatal; every per-application
// failure is logged and skipped so the rest of the loop completes.
func (r *Reconciler) ReconcileStatuses(ctx context.Context, userID uuid.UUID) (*Result, error) {
	apps, err := r.store.GetApplications(ctx, userID)
	if err != nil {
		return nil, &ReconciliationFetchError{Cause: err}
	}

	result := &Result{}
	now := r.now()

	for i := range apps {
		app := &apps[i]

		// Terminal states never transition automatically, and records checked
		// within the debounce window are skipped without external calls.
		if app.Status.IsTerminal() {
			continue
		}
		if now.Sub(app.UpdatedAt) < debounceWindow {
			continue
		}

		result.CheckedCount++

		event, err := r.reconcileOne(ctx, app)
		if err != nil {
			r.logger.Warn("failed to reconcile application",
				zap.String("application_id", app.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if event == nil {
			continue
		}

		if err := r.store.UpdateApplicationStatus(ctx, app.ID, event.NewStatus, event.NoteLine(), event.Timestamp); err != nil {
			r.logger.Error("failed to apply status update",
				zap.String("application_id", app.ID.String()),
				zap.String("new_status", string(event.NewStatus)),
				zap.Error(err),
			)
			continue
		}

		// Keep the in-memory copy current so insights reflect this run.
		app.Status = event.NewStatus
		app.UpdatedAt = event.Timestamp
		if event.NewStatus == types.StatusSubmitted && app.AppliedOn == nil {
			ts := event.Timestamp
			app.AppliedOn = &ts
		}

		result.Updates = append(result.Updates, *event)
	}

	result.Insights = ComputeInsights(apps)
	return result, nil
}

// reconcileOne consults the signal sources in priority order and returns the
// first valid differing proposal as an update event, or nil when no source
// proposes a change.
func (r *Reconciler) reconcileOne(ctx context.Context, app *types.Application) (*types.StatusUpdateEvent, error) {
	posting, err := r.store.GetPosting(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}

	for _, source := range r.sources {
		proposal, err := source.Check(ctx, app, posting)
		if err != nil {
			var invalid *InvalidStatusProposedError
			if errors.As(err, &invalid) {
				// Rejected proposal, not a source failure: warn and move on.
				r.logger.Warn("signal source proposed invalid status",
					zap.String("application_id", app.ID.String()),
					zap.String("source", string(invalid.Source)),
					zap.String("proposed", invalid.Proposed),
				)
				continue
			}
			r.logger.Warn("signal source check failed",
				zap.String("application_id", app.ID.String()),
				zap.String("source", string(source.Name())),
				zap.Error(err),
			)
			continue
		}
		if proposal == nil || proposal.Status == app.Status {
			continue
		}

		if !proposal.Status.IsValid() {
			r.logger.Warn("signal source proposed invalid status",
				zap.String("application_id", app.ID.String()),
				zap.String("source", string(source.Name())),
				zap.String("proposed", string(proposal.Status)),
			)
			continue
		}

		return &types.StatusUpdateEvent{
			ApplicationID: app.ID,
			OldStatus:     app.Status,
			NewStatus:     proposal.Status,
			Source:        source.Name(),
			Rationale:     proposal.Rationale,
			Timestamp:     r.now(),
		}, nil
	}

	return nil, nil
}
