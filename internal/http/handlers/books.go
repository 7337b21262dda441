package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/srokkala/Book-Management-App/internal/domain/book"
	"github.com/srokkala/Book-Management-App/internal/domain/user"
	"github.com/srokkala/Book-Management-App/internal/http/middlewares"
	"github.com/srokkala/Book-Management-App/internal/service"
)

// BookManager performs ownership-guarded catalog operations for an explicit
// caller. Implemented by service.BookService.
type BookManager interface {
	List(ctx context.Context, asUser user.User) ([]book.Book, error)
	Create(ctx context.Context, asUser user.User, req book.CreateBookRequest) (book.Book, error)
	Update(ctx context.Context, asUser user.User, id string, req book.UpdateBookRequest) (book.Book, error)
	Delete(ctx context.Context, asUser user.User, id string) error
}

type BooksHandler struct {
	svc BookManager
}

func NewBooksHandler(svc BookManager) *BooksHandler {
	return &BooksHandler{svc: svc}
}

func (h *BooksHandler) ListBooks(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Not authorized")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)

	defer cancel()

	books, err := h.svc.List(cctx, u)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, books)
}

func (h *BooksHandler) CreateBook(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Not authorized")
		return
	}

	var req book.CreateBookRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)

	defer cancel()

	created, err := h.svc.Create(cctx, u, req)

	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			RespondBadRequest(ctx, "Invalid input")
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, created)
}

func (h *BooksHandler) UpdateBook(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Not authorized")
		return
	}

	id := ctx.Param("id")

	var req book.UpdateBookRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)

	defer cancel()

	updated, err := h.svc.Update(cctx, u, id, req)

	if err != nil {
		h.respondBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *BooksHandler) DeleteBook(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Not authorized")
		return
	}

	id := ctx.Param("id")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)

	defer cancel()

	err := h.svc.Delete(cctx, u, id)

	if err != nil {
		h.respondBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"msg": "Book removed"})
}

// existence is checked before ownership upstream, so NotFound wins for ids
// that do not exist regardless of the caller.
func (h *BooksHandler) respondBookError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrNotFound):
		RespondNotFound(ctx, "Book not found")
	case errors.Is(err, book.ErrNotOwner):
		RespondUnauthorized(ctx, "Not authorized")
	case errors.Is(err, service.ErrInvalidInput):
		RespondBadRequest(ctx, "Invalid input")
	default:
		RespondInternal(ctx)
	}
}
