package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorrow/interntrack/internal/types"
)

// fakeStore implements Store in memory.
type fakeStore struct {
	apps     []types.Application
	postings map[uuid.UUID]*types.Posting
	fetchErr error

	writes []statusWrite
}

type statusWrite struct {
	id     uuid.UUID
	status types.Status
	note   string
	ts     time.Time
}

func (f *fakeStore) GetApplications(_ context.Context, _ uuid.UUID) ([]types.Application, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.apps, nil
}

func (f *fakeStore) GetPosting(_ context.Context, id uuid.UUID) (*types.Posting, error) {
	return f.postings[id], nil
}

func (f *fakeStore) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status types.Status, note string, ts time.Time) error {
	f.writes = append(f.writes, statusWrite{id: id, status: status, note: note, ts: ts})
	return nil
}

// fakeSource returns a canned proposal and records how often it was checked.
type fakeSource struct {
	name     types.UpdateSource
	proposal *Proposal
	err      error
	checks   int
}

func (f *fakeSource) Name() types.UpdateSource { return f.name }

func (f *fakeSource) Check(_ context.Context, _ *types.Application, _ *types.Posting) (*Proposal, error) {
	f.checks++
	return f.proposal, f.err
}

func newApp(status types.Status, updatedAgo time.Duration) types.Application {
	now := time.Now()
	applied := now.Add(-30 * 24 * time.Hour)
	return types.Application{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		PostingID: uuid.New(),
		Status:    status,
		AppliedOn: &applied,
		CreatedAt: now.Add(-31 * 24 * time.Hour),
		UpdatedAt: now.Add(-updatedAgo),
	}
}

func newReconcilerForTest(store *fakeStore, sources ...SignalSource) *Reconciler {
	return NewReconciler(store, sources, nil)
}

func TestReconcile_TerminalStateNeverTransitions(t *testing.T) {
	store := &fakeStore{
		apps:     []types.Application{newApp(types.StatusAccepted, 48 * time.Hour)},
		postings: map[uuid.UUID]*types.Posting{},
	}
	source := &fakeSource{name: types.SourceAPI, proposal: &Proposal{Status: types.StatusRejected, Rationale: "noise"}}

	result, err := newReconcilerForTest(store, source).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, result.CheckedCount)
	assert.Empty(t, result.Updates)
	assert.Empty(t, store.writes)
	assert.Zero(t, source.checks, "terminal applications must not trigger external calls")
}

func TestReconcile_DebounceSkipsFreshRecords(t *testing.T) {
	store := &fakeStore{
		apps:     []types.Application{newApp(types.StatusSubmitted, 2 * time.Hour)},
		postings: map[uuid.UUID]*types.Posting{},
	}
	source := &fakeSource{name: types.SourceAPI, proposal: &Proposal{Status: types.StatusReviewing}}

	result, err := newReconcilerForTest(store, source).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, result.CheckedCount)
	assert.Empty(t, store.writes)
	assert.Zero(t, source.checks, "debounced applications must not trigger external calls")
}

func TestReconcile_AppliesFirstDifferingProposal(t *testing.T) {
	app := newApp(types.StatusSubmitted, 12*time.Hour)
	store := &fakeStore{
		apps:     []types.Application{app},
		postings: map[uuid.UUID]*types.Posting{},
	}
	portal := &fakeSource{name: types.SourceScraping, proposal: &Proposal{Status: types.StatusReviewing, Rationale: "portal says under review"}}
	api := &fakeSource{name: types.SourceAPI, proposal: &Proposal{Status: types.StatusRejected}}

	result, err := newReconcilerForTest(store, portal, api).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, result.CheckedCount)
	require.Len(t, result.Updates, 1)

	update := result.Updates[0]
	assert.Equal(t, app.ID, update.ApplicationID)
	assert.Equal(t, types.StatusSubmitted, update.OldStatus)
	assert.Equal(t, types.StatusReviewing, update.NewStatus)
	assert.Equal(t, types.SourceScraping, update.Source)

	require.Len(t, store.writes, 1)
	assert.Equal(t, types.StatusReviewing, store.writes[0].status)
	assert.Contains(t, store.writes[0].note, "submitted → reviewing")
	assert.Contains(t, store.writes[0].note, "scraping")

	assert.Zero(t, api.checks, "lower-priority source must not run after a winning proposal")
}

func TestReconcile_SameStatusProposalIsNoUpdate(t *testing.T) {
	store := &fakeStore{
		apps:     []types.Application{newApp(types.StatusSubmitted, 12 * time.Hour)},
		postings: map[uuid.UUID]*types.Posting{},
	}
	source := &fakeSource{name: types.SourceScraping, proposal: &Proposal{Status: types.StatusSubmitted}}

	result, err := newReconcilerForTest(store, source).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, result.CheckedCount)
	assert.Empty(t, result.Updates)
	assert.Empty(t, store.writes, "no write when nothing changed keeps the debounce effective")
}

func TestReconcile_InvalidStatusRejected(t *testing.T) {
	store := &fakeStore{
		apps:     []types.Application{newApp(types.StatusSubmitted, 12 * time.Hour)},
		postings: map[uuid.UUID]*types.Posting{},
	}
	source := &fakeSource{name: types.SourceScraping, proposal: &Proposal{Status: "withdrawn"}}

	result, err := newReconcilerForTest(store, source).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Empty(t, result.Updates)
	assert.Empty(t, store.writes, "invalid proposals must never be written")
}

func TestReconcile_InvalidProposalErrorFallsThrough(t *testing.T) {
	store := &fakeStore{
		apps:     []types.Application{newApp(types.StatusSubmitted, 12 * time.Hour)},
		postings: map[uuid.UUID]*types.Posting{},
	}
	predictor := &fakeSource{
		name: types.SourceManual,
		err:  &InvalidStatusProposedError{Proposed: "ghosted", Source: types.SourceManual},
	}

	result, err := newReconcilerForTest(store, predictor).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, result.Updates)
	assert.Empty(t, store.writes)
}

func TestReconcile_SourceFailureFallsThroughToNext(t *testing.T) {
	store := &fakeStore{
		apps:     []types.Application{newApp(types.StatusSubmitted, 12 * time.Hour)},
		postings: map[uuid.UUID]*types.Posting{},
	}
	portal := &fakeSource{name: types.SourceScraping, err: errors.New("portal timeout")}
	api := &fakeSource{name: types.SourceAPI, proposal: &Proposal{Status: types.StatusReviewing, Rationale: "api status"}}

	result, err := newReconcilerForTest(store, portal, api).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, result.Updates, 1)
	assert.Equal(t, types.SourceAPI, result.Updates[0].Source)
	assert.Equal(t, 1, api.checks)
}

func TestReconcile_PerApplicationIsolation(t *testing.T) {
	good := newApp(types.StatusSubmitted, 12*time.Hour)
	alsoGood := newApp(types.StatusPending, 12*time.Hour)
	store := &fakeStore{
		apps:     []types.Application{good, alsoGood},
		postings: map[uuid.UUID]*types.Posting{},
	}
	// The source fails on every check; both applications are still visited.
	source := &fakeSource{name: types.SourceScraping, err: errors.New("network down")}

	result, err := newReconcilerForTest(store, source).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, result.CheckedCount)
	assert.Equal(t, 2, source.checks)
	assert.Empty(t, result.Updates)
}

func TestReconcile_FetchFailureIsFatal(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("database down")}

	_, err := newReconcilerForTest(store).ReconcileStatuses(context.Background(), uuid.New())
	require.Error(t, err)

	var rfe *ReconciliationFetchError
	assert.ErrorAs(t, err, &rfe)
}

func TestReconcile_InsightsReflectAppliedUpdates(t *testing.T) {
	app := newApp(types.StatusSubmitted, 12*time.Hour)
	store := &fakeStore{
		apps:     []types.Application{app},
		postings: map[uuid.UUID]*types.Posting{},
	}
	source := &fakeSource{name: types.SourceAPI, proposal: &Proposal{Status: types.StatusAccepted, Rationale: "offer"}}

	result, err := newReconcilerForTest(store, source).ReconcileStatuses(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Insights.StatusCounts[types.StatusAccepted])
	assert.InDelta(t, 1.0, result.Insights.SuccessRate, 1e-12)
}
