package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/jmorrow/interntrack/internal/embedding"
	"github.com/jmorrow/interntrack/internal/types"
)

// Bucket thresholds for the batch summary counters. Scores below lowThreshold
// appear in the result list but are counted in no bucket.
const (
	highThreshold   = 0.8
	mediumThreshold = 0.6
	lowThreshold    = 0.4
)

// defaultConcurrency bounds the worker pool for per-posting scoring.
const defaultConcurrency = 4

// BatchResult is the outcome of scoring one profile against a set of
// postings. Results are sorted by score descending, posting ID ascending on
// ties, so one run's output is reproducible.
type BatchResult struct {
	Results     []types.ScoredPosting `json:"results"`
	Failures    []types.PostingFailure `json:"failures,omitempty"`
	HighCount   int                   `json:"high_count"`
	MediumCount int                   `json:"medium_count"`
	LowCount    int                   `json:"low_count"`
}

// Matcher orchestrates the scoring pipeline for batches of postings.
type Matcher struct {
	embedder    embedding.Embedder
	scorer      SubScorer
	logger      *zap.Logger
	concurrency int64
}

// NewMatcher creates a batch matcher. Concurrency <= 0 selects the default
// worker pool size.
func NewMatcher(embedder embedding.Embedder, scorer SubScorer, logger *zap.Logger, concurrency int) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Matcher{
		embedder:    embedder,
		scorer:      scorer,
		logger:      logger,
		concurrency: int64(concurrency),
	}
}

// ScoreBatch computes a final match score for every posting. Failure to embed
// the profile is fatal to the whole batch; every per-posting failure is
// isolated. A posting whose embedding fails is skipped and surfaced in
// Failures; a posting whose sub-scores fail still gets a degraded
// similarity-only score.
func (m *Matcher) ScoreBatch(ctx context.Context, profile *types.Profile, postings []types.Posting, weights types.Weights) (*BatchResult, error) {
	profileVector, err := m.embedder.Embed(ctx, profile.EmbeddingText())
	if err != nil {
		return nil, &ExternalServiceError{Service: "embedding", Cause: fmt.Errorf("profile %s: %w", profile.ID, err)}
	}

	profileSummary := profile.EmbeddingText()

	type slot struct {
		scored  *types.ScoredPosting
		failure *types.PostingFailure
	}
	slots := make([]slot, len(postings))

	sem := semaphore.NewWeighted(m.concurrency)
	var wg sync.WaitGroup

	for i := range postings {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled; remaining postings are recorded as failures.
			for j := i; j < len(postings); j++ {
				slots[j].failure = &types.PostingFailure{PostingID: postings[j].ID, Reason: err.Error()}
			}
			break
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer sem.Release(1)

			posting := &postings[idx]
			scored, failure := m.scoreOne(ctx, profileSummary, profileVector, posting, weights)
			slots[idx] = slot{scored: scored, failure: failure}
		}(i)
	}
	wg.Wait()

	result := &BatchResult{
		Results: make([]types.ScoredPosting, 0, len(postings)),
	}
	for _, s := range slots {
		switch {
		case s.scored != nil:
			result.Results = append(result.Results, *s.scored)
		case s.failure != nil:
			result.Failures = append(result.Failures, *s.failure)
		}
	}

	sort.SliceStable(result.Results, func(i, j int) bool {
		if result.Results[i].Score != result.Results[j].Score {
			return result.Results[i].Score > result.Results[j].Score
		}
		return result.Results[i].PostingID.String() < result.Results[j].PostingID.String()
	})

	for _, r := range result.Results {
		switch {
		case r.Score >= highThreshold:
			result.HighCount++
		case r.Score >= mediumThreshold:
			result.MediumCount++
		case r.Score >= lowThreshold:
			result.LowCount++
		}
	}

	return result, nil
}

// scoreOne runs the three stages for a single posting.
func (m *Matcher) scoreOne(ctx context.Context, profileSummary string, profileVector []float64, posting *types.Posting, weights types.Weights) (*types.ScoredPosting, *types.PostingFailure) {
	postingVector, err := m.embedder.Embed(ctx, posting.EmbeddingText())
	if err != nil {
		m.logger.Warn("posting embedding failed",
			zap.String("posting_id", posting.ID.String()),
			zap.Error(err),
		)
		return nil, &types.PostingFailure{PostingID: posting.ID, Reason: err.Error()}
	}

	similarity, err := CosineSimilarity(profileVector, postingVector)
	if err != nil {
		m.logger.Warn("similarity computation failed",
			zap.String("posting_id", posting.ID.String()),
			zap.Error(err),
		)
		return nil, &types.PostingFailure{PostingID: posting.ID, Reason: err.Error()}
	}

	scored := &types.ScoredPosting{
		PostingID:  posting.ID,
		Similarity: similarity,
	}

	subScores, rationale, err := m.scorer.Score(ctx, profileSummary, posting)
	if err != nil {
		// Stage-2 failure degrades to the similarity-only score.
		m.logger.Info("sub-scores unavailable, using degraded score",
			zap.String("posting_id", posting.ID.String()),
			zap.Error(err),
		)
		fused := Fuse(similarity, nil)
		scored.Score = fused.Score
		scored.Degraded = fused.Degraded
		return scored, nil
	}

	weighted := subScores.Weighted(weights)
	fused := Fuse(similarity, &weighted)
	scored.Score = fused.Score
	scored.Degraded = fused.Degraded
	scored.Weighted = &weighted
	scored.SubScores = subScores
	scored.Rationale = rationale
	return scored, nil
}

// ScoreStore persists final match scores onto posting records.
type ScoreStore interface {
	UpdatePostingScore(ctx context.Context, id uuid.UUID, score float64, rationale *types.MatchRationale) error
}

// PersistScores writes every scored posting back to the store, unconditionally
// overwriting any previous score. Write failures are logged and do not stop
// the remaining writes; the first error is returned.
func (m *Matcher) PersistScores(ctx context.Context, store ScoreStore, results []types.ScoredPosting) error {
	var firstErr error
	for _, r := range results {
		if err := store.UpdatePostingScore(ctx, r.PostingID, r.Score, r.Rationale); err != nil {
			m.logger.Error("failed to persist posting score",
				zap.String("posting_id", r.PostingID.String()),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
