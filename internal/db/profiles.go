package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmorrow/interntrack/internal/types"
)

// GetProfile retrieves a user's career profile. Returns nil when the user has
// no profile yet.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	var p types.Profile

	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, summary, resume_text, github_text, linkedin_text,
		        created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Summary, &p.ResumeText, &p.GithubText,
		&p.LinkedinText, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}
