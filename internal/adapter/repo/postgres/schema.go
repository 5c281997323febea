package postgres

import (
	"context"
	"fmt"
)

// schemaDDL is applied at startup. Statements are idempotent so repeated boots
// against the same database are safe.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		social_id        TEXT NOT NULL UNIQUE,
		first_name       TEXT NOT NULL DEFAULT '',
		last_name        TEXT NOT NULL DEFAULT '',
		email            TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		experience_years TEXT NOT NULL DEFAULT '',
		current_position TEXT NOT NULL DEFAULT '',
		current_company  TEXT NOT NULL DEFAULT '',
		skills           TEXT[] NOT NULL DEFAULT '{}',
		education        TEXT NOT NULL DEFAULT '',
		availability     TEXT NOT NULL DEFAULT '',
		expected_salary  TEXT NOT NULL DEFAULT '',
		notice_period    TEXT NOT NULL DEFAULT '',
		role             TEXT NOT NULL DEFAULT 'candidate',
		resume_url       TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		website    TEXT NOT NULL DEFAULT '',
		location   TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		company_id        TEXT NOT NULL DEFAULT '',
		company           TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		job_type          TEXT NOT NULL DEFAULT '',
		experience_level  TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'active',
		application_count BIGINT NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id               TEXT PRIMARY KEY,
		candidate_id     TEXT NOT NULL,
		job_id           TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'pending',
		cover_letter     TEXT NOT NULL DEFAULT '',
		resume_url       TEXT NOT NULL DEFAULT '',
		full_name        TEXT NOT NULL DEFAULT '',
		email            TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		experience_years TEXT NOT NULL DEFAULT '',
		current_position TEXT NOT NULL DEFAULT '',
		current_company  TEXT NOT NULL DEFAULT '',
		skills           TEXT[] NOT NULL DEFAULT '{}',
		education        TEXT NOT NULL DEFAULT '',
		availability     TEXT NOT NULL DEFAULT '',
		expected_salary  TEXT NOT NULL DEFAULT '',
		notice_period    TEXT NOT NULL DEFAULT '',
		notes            TEXT NOT NULL DEFAULT '',
		rating           INT NOT NULL DEFAULT 0,
		applied_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications (candidate_id, applied_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job ON applications (job_id, applied_at DESC)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_candidate_job ON applications (candidate_id, job_id)`,
	`CREATE TABLE IF NOT EXISTS file_uploads (
		id          TEXT PRIMARY KEY,
		social_id   TEXT NOT NULL,
		file_name   TEXT NOT NULL,
		file_type   TEXT NOT NULL DEFAULT '',
		file_size   BIGINT NOT NULL DEFAULT 0,
		content     BYTEA,
		uploaded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_file_uploads_social ON file_uploads (social_id, uploaded_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool PgxPool) error {
	for _, stmt := range schemaDDL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("op=schema.ensure: %w", err)
		}
	}
	return nil
}
