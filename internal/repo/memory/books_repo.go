package memory

import (
	"context"
	"sync"
	"time"

	"github.com/srokkala/Book-Management-App/internal/domain/book"
)

// BooksRepo is the in-memory record store. The order slice preserves
// insertion order for listings; every mutation happens inside the lock so
// read-modify-write updates are atomic with respect to other writers.
type BooksRepo struct {
	mu    sync.RWMutex
	items map[string]book.Book
	order []string
}

func NewBooksRepo() *BooksRepo {
	return &BooksRepo{
		items: make(map[string]book.Book),
	}
}

func (r *BooksRepo) ListByOwner(ctx context.Context, ownerID string) ([]book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]book.Book, 0)

	for _, id := range r.order {
		b, ok := r.items[id]
		if ok && b.OwnerID == ownerID {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *BooksRepo) GetByID(ctx context.Context, id string) (book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}

	return b, nil
}

func (r *BooksRepo) Create(ctx context.Context, ownerID string, req book.CreateBookRequest) (book.Book, error) {
	b := book.NewFromCreateRequest(ownerID, req)

	r.mu.Lock()
	r.items[b.ID] = b
	r.order = append(r.order, b.ID)
	r.mu.Unlock()

	return b, nil
}

func (r *BooksRepo) Update(ctx context.Context, id string, req book.UpdateBookRequest) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}

	b = req.Apply(b, time.Now().UTC())
	r.items[id] = b

	return b, nil
}

func (r *BooksRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return book.ErrNotFound
	}

	delete(r.items, id)

	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
