package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/srokkala/Book-Management-App/internal/domain/book"
)

func strPtr(s string) *string { return &s }

func TestBooksRepo_CreateAndListInsertionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewBooksRepo()

	titles := []string{"Dune", "1984", "Emma"}

	for _, title := range titles {
		_, err := r.Create(ctx, "owner-1", book.CreateBookRequest{Title: title, Author: "X"})
		if err != nil {
			t.Fatalf("Create(%q) error: %v", title, err)
		}
	}

	// another owner's entry must not leak into the listing
	if _, err := r.Create(ctx, "owner-2", book.CreateBookRequest{Title: "Other", Author: "Y"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := r.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}

	if len(got) != len(titles) {
		t.Fatalf("got %d books, want %d", len(got), len(titles))
	}

	for i, title := range titles {
		if got[i].Title != title {
			t.Fatalf("position %d: got %q, want %q (insertion order)", i, got[i].Title, title)
		}
	}
}

func TestBooksRepo_PartialUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewBooksRepo()

	created, err := r.Create(ctx, "owner-1", book.CreateBookRequest{
		Title:           "Dune",
		Author:          "Herbert",
		Description:     "desert planet",
		PublicationYear: 1965,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := r.Update(ctx, created.ID, book.UpdateBookRequest{
		Description: strPtr("new"),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Description != "new" {
		t.Fatalf("description: got %q, want %q", updated.Description, "new")
	}
	if updated.Title != "Dune" || updated.Author != "Herbert" || updated.PublicationYear != 1965 {
		t.Fatalf("unspecified fields changed: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt moved backwards: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestBooksRepo_ExplicitDescriptionClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewBooksRepo()

	created, err := r.Create(ctx, "owner-1", book.CreateBookRequest{
		Title:       "Dune",
		Author:      "Herbert",
		Description: "desert planet",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// a present-but-empty description is a clear, not a skip
	updated, err := r.Update(ctx, created.ID, book.UpdateBookRequest{Description: strPtr("")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Description != "" {
		t.Fatalf("expected cleared description, got %q", updated.Description)
	}
}

func TestBooksRepo_UpdateAndDeleteMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewBooksRepo()

	if _, err := r.Update(ctx, "missing", book.UpdateBookRequest{Title: strPtr("X")}); !errors.Is(err, book.ErrNotFound) {
		t.Fatalf("Update miss: expected ErrNotFound, got %v", err)
	}

	if err := r.Delete(ctx, "missing"); !errors.Is(err, book.ErrNotFound) {
		t.Fatalf("Delete miss: expected ErrNotFound, got %v", err)
	}
}

func TestBooksRepo_DeleteRemovesFromListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewBooksRepo()

	a, _ := r.Create(ctx, "owner-1", book.CreateBookRequest{Title: "A", Author: "X"})
	b, _ := r.Create(ctx, "owner-1", book.CreateBookRequest{Title: "B", Author: "X"})

	if err := r.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	got, err := r.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}

	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("expected only %q to remain, got %+v", b.ID, got)
	}

	if _, err := r.GetByID(ctx, a.ID); !errors.Is(err, book.ErrNotFound) {
		t.Fatalf("GetByID after delete: expected ErrNotFound, got %v", err)
	}
}

func TestBooksRepo_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewBooksRepo()

	const writers = 16

	var wg sync.WaitGroup
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_, _ = r.Create(ctx, "owner-1", book.CreateBookRequest{
				Title:  fmt.Sprintf("book-%d", i),
				Author: "X",
			})
		}(i)
	}

	wg.Wait()

	got, err := r.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}

	if len(got) != writers {
		t.Fatalf("got %d books, want %d", len(got), writers)
	}
}
