package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/srokkala/Book-Management-App/internal/domain/user"
)

func TestUsersRepo_CreateAndLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewUsersRepo()

	created, err := r.Create(ctx, "Sam", "sam@example.com", "hashed")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}

	byEmail, err := r.GetByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("GetByEmail returned %q, want %q", byEmail.ID, created.ID)
	}

	byID, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if byID.Email != "sam@example.com" {
		t.Fatalf("GetByID returned email %q", byID.Email)
	}
}

func TestUsersRepo_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewUsersRepo()

	if _, err := r.Create(ctx, "A", "dup@example.com", "h1"); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	_, err := r.Create(ctx, "B", "dup@example.com", "h2")
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUsersRepo_LookupMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewUsersRepo()

	if _, err := r.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("GetByEmail miss: expected ErrNotFound, got %v", err)
	}

	if _, err := r.GetByID(ctx, "missing-id"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("GetByID miss: expected ErrNotFound, got %v", err)
	}
}

func TestUsersRepo_EmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewUsersRepo()

	if _, err := r.Create(ctx, "A", "Case@example.com", "h"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// no normalization: a different casing is a different account
	if _, err := r.GetByEmail(ctx, "case@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for different casing, got %v", err)
	}
}
