package service

import (
	"context"
	"strings"

	"github.com/srokkala/Book-Management-App/internal/domain/book"
	"github.com/srokkala/Book-Management-App/internal/domain/user"
)

// BookStore is the record store contract. ListByOwner returns insertion
// order; Update applies only the present fields atomically.
type BookStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]book.Book, error)
	GetByID(ctx context.Context, id string) (book.Book, error)
	Create(ctx context.Context, ownerID string, req book.CreateBookRequest) (book.Book, error)
	Update(ctx context.Context, id string, req book.UpdateBookRequest) (book.Book, error)
	Delete(ctx context.Context, id string) error
}

// BookService enforces ownership around the record store. Every operation
// takes the caller explicitly; identity is never read from shared state.
type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

func (s *BookService) List(ctx context.Context, asUser user.User) ([]book.Book, error) {
	return s.books.ListByOwner(ctx, asUser.ID)
}

// Create sets the owner to the caller unconditionally; the owner field is
// never client-supplied.
func (s *BookService) Create(ctx context.Context, asUser user.User, req book.CreateBookRequest) (book.Book, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" {
		return book.Book{}, ErrInvalidInput
	}

	return s.books.Create(ctx, asUser.ID, req)
}

// Update checks existence before ownership so a non-owner probing a
// nonexistent id gets NotFound, not Forbidden.
func (s *BookService) Update(ctx context.Context, asUser user.User, id string, req book.UpdateBookRequest) (book.Book, error) {
	// required fields may be replaced but never cleared
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return book.Book{}, ErrInvalidInput
	}
	if req.Author != nil && strings.TrimSpace(*req.Author) == "" {
		return book.Book{}, ErrInvalidInput
	}

	existing, err := s.books.GetByID(ctx, id)

	if err != nil {
		return book.Book{}, err
	}

	if existing.OwnerID != asUser.ID {
		return book.Book{}, book.ErrNotOwner
	}

	return s.books.Update(ctx, id, req)
}

func (s *BookService) Delete(ctx context.Context, asUser user.User, id string) error {
	existing, err := s.books.GetByID(ctx, id)

	if err != nil {
		return err
	}

	if existing.OwnerID != asUser.ID {
		return book.ErrNotOwner
	}

	return s.books.Delete(ctx, id)
}
