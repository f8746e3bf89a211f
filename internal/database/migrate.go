package database

import (
	"context"
	"database/sql"
)

// Migrate creates the schema idempotently at startup. Applications keep no
// foreign key to jobs: a job delete cascades in application code, and orphans
// left by a failed cascade must stay readable.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	resume_file_id UUID NULL,
	resume_url TEXT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications (job_id);

CREATE TABLE IF NOT EXISTS resume_files (
	id UUID PRIMARY KEY,
	filename TEXT NOT NULL,
	content_type TEXT NOT NULL,
	length BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS resume_chunks (
	file_id UUID NOT NULL,
	seq INT NOT NULL,
	data BYTEA NOT NULL,
	PRIMARY KEY (file_id, seq)
);

CREATE TABLE IF NOT EXISTS analytics_events (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	payload JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}
