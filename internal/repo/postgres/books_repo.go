package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srokkala/Book-Management-App/internal/domain/book"
	"github.com/srokkala/Book-Management-App/internal/observability"
)

type BooksRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewBooksRepo(pool *pgxpool.Pool, metrics *observability.Prom) *BooksRepo {
	return &BooksRepo{pool: pool, metrics: metrics}
}

func (r *BooksRepo) ListByOwner(ctx context.Context, ownerID string) ([]book.Book, error) {
	out := make([]book.Book, 0)

	err := r.metrics.ObserveStore("books.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, author, description, publication_year, owner_id, created_at, updated_at
			 FROM books
			 WHERE owner_id = $1
			 ORDER BY seq ASC`,
			ownerID,
		)
		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var b book.Book

			err = rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PublicationYear, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
			if err != nil {
				return err
			}

			out = append(out, b)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *BooksRepo) GetByID(ctx context.Context, id string) (book.Book, error) {
	var b book.Book

	err := r.metrics.ObserveStore("books.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, author, description, publication_year, owner_id, created_at, updated_at
			 FROM books
			 WHERE id = $1`,
			id,
		).Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PublicationYear, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}

		return book.Book{}, err
	}

	return b, nil
}

func (r *BooksRepo) Create(ctx context.Context, ownerID string, req book.CreateBookRequest) (book.Book, error) {
	b := book.NewFromCreateRequest(ownerID, req)

	err := r.metrics.ObserveStore("books.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO books (id, title, author, description, publication_year, owner_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			b.ID, b.Title, b.Author, b.Description, b.PublicationYear, b.OwnerID, b.CreatedAt, b.UpdatedAt,
		)
		return err
	})

	if err != nil {
		return book.Book{}, err
	}

	return b, nil
}

// Update applies the present fields in one statement so the read-modify-write
// is atomic with respect to other writers.
func (r *BooksRepo) Update(ctx context.Context, id string, req book.UpdateBookRequest) (book.Book, error) {
	var b book.Book

	err := r.metrics.ObserveStore("books.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE books
				SET title = COALESCE($2, title),
					author = COALESCE($3, author),
					description = COALESCE($4, description),
					publication_year = COALESCE($5, publication_year),
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, title, author, description, publication_year, owner_id, created_at, updated_at`,
			id,
			req.Title,
			req.Author,
			req.Description,
			req.PublicationYear,
		).Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PublicationYear, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}

		return book.Book{}, err
	}

	return b, nil
}

func (r *BooksRepo) Delete(ctx context.Context, id string) error {
	return r.metrics.ObserveStore("books.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return book.ErrNotFound
		}

		return nil
	})
}
