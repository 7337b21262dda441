package memory

import (
	"context"

	"github.com/srokkala/Book-Management-App/internal/domain/book"
	"github.com/srokkala/Book-Management-App/internal/security"
)

// Seed installs a fixture account with two sample books. Used by tests and
// by dev runs that set SEED_EMAIL; never reached in prod wiring.
func Seed(ctx context.Context, users *UsersRepo, books *BooksRepo, name, email, password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	u, err := users.Create(ctx, name, email, hash)
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
