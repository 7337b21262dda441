package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/srokkala/Book-Management-App/internal/domain/user"
	"github.com/srokkala/Book-Management-App/internal/http/middlewares"
	"github.com/srokkala/Book-Management-App/internal/service"
)

// SessionService issues session tokens. Implemented by service.Authenticator.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (user.User, string, error)
	Login(ctx context.Context, email, password string) (user.User, string, error)
}

type AuthHandler struct {
	svc SessionService
}

func NewAuthHandler(svc SessionService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// generous budget, bcrypt is intentionally slow
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)

	defer cancel()

	_, token, err := h.svc.Register(cctx, req.Name, req.Email, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			RespondBadRequest(ctx, "User already exists")
		case errors.Is(err, service.ErrInvalidInput):
			RespondBadRequest(ctx, "Invalid input")
		default:
			RespondInternal(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)

	defer cancel()

	_, token, err := h.svc.Login(cctx, req.Email, req.Password)

	if err != nil {
		// one message for unknown email and wrong password alike
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondBadRequest(ctx, "Invalid Credentials")
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the authenticated account without the password hash.
func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Not authorized")
		return
	}

	ctx.JSON(http.StatusOK, u)
}
