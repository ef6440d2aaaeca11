package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// schema is idempotent; it runs on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS datasets (
		id               UUID PRIMARY KEY,
		name             TEXT NOT NULL CHECK (length(trim(name)) > 0),
		user_id          TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		share_token_hash BYTEA UNIQUE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_datasets_user_id ON datasets (user_id)`,
	`CREATE TABLE IF NOT EXISTS fit_files (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		dataset_id UUID NOT NULL REFERENCES datasets (id) ON DELETE CASCADE,
		file_path  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_fit_files_dataset_id ON fit_files (dataset_id)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	log.Debugf("db schema ensured, %d statements", len(schema))
	return nil
}
