package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmorrow/interntrack/internal/types"
)

// GetApplications retrieves all of a user's tracked applications, oldest
// first.
func (db *DB) GetApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, posting_id, status, notes, applied_on, created_at, updated_at
		 FROM applications WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var a types.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.PostingID, &a.Status, &a.Notes,
			&a.AppliedOn, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}

	return apps, nil
}

// CreateApplication starts tracking a posting for a user, in status pending.
func (db *DB) CreateApplication(ctx context.Context, userID, postingID uuid.UUID) (*types.Application, error) {
	var a types.Application

	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, posting_id, status, notes)
		 VALUES ($1, $2, $3, '')
		 RETURNING id, user_id, posting_id, status, notes, applied_on, created_at, updated_at`,
		userID, postingID, types.StatusPending,
	).Scan(&a.ID, &a.UserID, &a.PostingID, &a.Status, &a.Notes,
		&a.AppliedOn, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return &a, nil
}

// UpdateApplicationStatus applies one status transition in a single statement:
// new status, bumped updated_at, appended note line, and applied_on set on the
// first transition into submitted.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.Status, note string, ts time.Time) error {
	if note != "" {
		note = note + "\n"
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET status = $1,
		     notes = notes || $2,
		     applied_on = CASE WHEN $1 = 'submitted' THEN COALESCE(applied_on, $3) ELSE applied_on END,
		     updated_at = $3
		 WHERE id = $4`,
		status, note, ts, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id)
	}
	return nil
}
