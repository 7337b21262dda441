package book

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(ownerID string, req CreateBookRequest) Book {
	now := time.Now().UTC()

	return Book{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		PublicationYear: req.PublicationYear,
		OwnerID:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
