package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srokkala/Book-Management-App/internal/config"
	"github.com/srokkala/Book-Management-App/internal/domain/book"
	"github.com/srokkala/Book-Management-App/internal/repo/postgres"
	"github.com/srokkala/Book-Management-App/internal/security"
)

// EnsureSeedUser installs the configured fixture account with two sample
// books. No-op when seeding is not configured or the account exists.
func EnsureSeedUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.SeedEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedPassword)

	if err != nil {
		return err
	}

	users := postgres.NewUsersRepo(pool, nil)
	books := postgres.NewBooksRepo(pool, nil)

	u, err := users.Create(ctx, cfg.SeedName, cfg.SeedEmail, hash)

	if err != nil {
		return err
	}

	samples := []book.CreateBookRequest{
		{
			Title:           "To Kill a Mockingbird",
			Author:          "Harper Lee",
			Description:     "A classic novel about racial inequality in the American South.",
			PublicationYear: 1960,
		},
		{
			Title:           "1984",
			Author:          "George Orwell",
			Description:     "A dystopian novel about totalitarianism and surveillance.",
			PublicationYear: 1949,
		},
	}

	for _, s := range samples {
		if _, err := books.Create(ctx, u.ID, s); err != nil {
			return err
		}
	}

	return nil
}
