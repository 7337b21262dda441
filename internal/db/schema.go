package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the two tables on startup if they are missing. The
// owner_id column is a plain back-reference: there is no user-delete path,
// so no cascade policy is declared.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS books (
			id               TEXT PRIMARY KEY,
			seq              BIGINT GENERATED ALWAYS AS IDENTITY,
			title            TEXT NOT NULL,
			author           TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			publication_year INT NOT NULL DEFAULT 0,
			owner_id         TEXT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS books_owner_idx ON books (owner_id, seq);
	`)

	return err
}
