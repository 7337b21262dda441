package book

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrNotOwner = errors.New("caller does not own this book")
)

type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description,omitempty"`
	PublicationYear int       `json:"publicationYear,omitempty"`
	OwnerID         string    `json:"user"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateBookRequest struct {
	Title           string `json:"title" binding:"required"`
	Author          string `json:"author" binding:"required"`
	Description     string `json:"description" binding:"omitempty,max=2000"`
	PublicationYear int    `json:"publicationYear" binding:"omitempty,gte=0,lte=3000"`
}

// Partial update payload. Nil means "leave unchanged"; a non-nil empty
// description is an explicit clear. Title and author may not be cleared.
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1"`
	Author          *string `json:"author" binding:"omitempty,min=1"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	PublicationYear *int    `json:"publicationYear" binding:"omitempty,gte=0,lte=3000"`
}

// Apply returns a copy of b with the present fields replaced and the
// update timestamp bumped.
func (req UpdateBookRequest) Apply(b Book, now time.Time) Book {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.PublicationYear != nil {
		b.PublicationYear = *req.PublicationYear
	}
	b.UpdatedAt = now

	return b
}
