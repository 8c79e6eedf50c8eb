package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmorrow/interntrack/internal/types"
)

// GetPosting retrieves one posting by ID. Returns nil when no posting exists.
func (db *DB) GetPosting(ctx context.Context, id uuid.UUID) (*types.Posting, error) {
	var p types.Posting

	err := db.pool.QueryRow(ctx,
		`SELECT id, company, title, location, description, requirements, url,
		        match_score, created_at, updated_at, scored_at
		 FROM postings WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Company, &p.Title, &p.Location, &p.Description,
		&p.Requirements, &p.URL, &p.MatchScore, &p.CreatedAt, &p.UpdatedAt, &p.ScoredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	return &p, nil
}

// GetPostings retrieves the postings with the given IDs. Missing IDs are
// silently absent from the result; callers decide whether that matters.
func (db *DB) GetPostings(ctx context.Context, ids []uuid.UUID) ([]types.Posting, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, company, title, location, description, requirements, url,
		        match_score, created_at, updated_at, scored_at
		 FROM postings WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get postings: %w", err)
	}
	defer rows.Close()

	var postings []types.Posting
	for rows.Next() {
		var p types.Posting
		if err := rows.Scan(&p.ID, &p.Company, &p.Title, &p.Location, &p.Description,
			&p.Requirements, &p.URL, &p.MatchScore, &p.CreatedAt, &p.UpdatedAt, &p.ScoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read postings: %w", err)
	}

	return postings, nil
}

// UpdatePostingScore overwrites a posting's match score and rationale.
// Re-scoring always wins over any previous score.
func (db *DB) UpdatePostingScore(ctx context.Context, id uuid.UUID, score float64, rationale *types.MatchRationale) error {
	var rationaleJSON []byte
	if rationale != nil {
		var err error
		rationaleJSON, err = json.Marshal(rationale)
		if err != nil {
			return fmt.Errorf("failed to marshal rationale: %w", err)
		}
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE postings
		 SET match_score = $1, match_rationale = $2, scored_at = NOW(), updated_at = NOW()
		 WHERE id = $3`,
		score, rationaleJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update posting score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("posting %s not found", id)
	}
	return nil
}
