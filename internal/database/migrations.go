package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations run in order on startup. Statements must stay idempotent;
// there is no down path.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		headline TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		province TEXT NOT NULL DEFAULT '',
		company_name TEXT NOT NULL DEFAULT '',
		avatar_path TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS job_postings (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		company_name TEXT NOT NULL,
		posting_type TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL,
		requirements TEXT[] NOT NULL DEFAULT '{}',
		responsibilities TEXT[] NOT NULL DEFAULT '{}',
		benefits TEXT[] NOT NULL DEFAULT '{}',
		salary_min BIGINT,
		salary_max BIGINT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
		id UUID PRIMARY KEY,
		job_posting_id UUID NOT NULL REFERENCES job_postings(id),
		applicant_id UUID NOT NULL REFERENCES users(id),
		cv_path TEXT NOT NULL,
		cover_letter TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT job_applications_posting_applicant_key UNIQUE (job_posting_id, applicant_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		recipient_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		payload JSONB NOT NULL DEFAULT '{}',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_postings_owner ON job_postings(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_applications_applicant ON job_applications(applicant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, created_at DESC)`,
}

// Apply executes every migration statement in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
