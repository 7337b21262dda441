package service

import (
	"context"
	"errors"
	"strings"

	"github.com/srokkala/Book-Management-App/internal/auth"
	"github.com/srokkala/Book-Management-App/internal/domain/user"
	"github.com/srokkala/Book-Management-App/internal/security"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the credential store contract. Implemented by repo/memory
// and repo/postgres.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (user.User, error)
}

type Authenticator struct {
	users  UserStore
	tokens *auth.Manager
}

func NewAuthenticator(users UserStore, tokens *auth.Manager) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Register creates an account and issues a session token bound to it. The
// plaintext password never reaches the store.
func (a *Authenticator) Register(ctx context.Context, name, email, password string) (user.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return user.User{}, "", ErrInvalidInput
	}

	hash, err := security.HashPassword(password)

	if err != nil {
		return user.User{}, "", err
	}

	u, err := a.users.Create(ctx, name, email, hash)

	if err != nil {
		return user.User{}, "", err
	}

	token, err := a.tokens.GenerateToken(u.ID)

	if err != nil {
		return user.User{}, "", err
	}

	return u, token, nil
}

// Login verifies credentials and issues a fresh token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (user.User, string, error) {
	u, err := a.users.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}

		return user.User{}, "", err
	}

	err = security.CheckPassword(u.PasswordHash, password)

	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := a.tokens.GenerateToken(u.ID)

	if err != nil {
		return user.User{}, "", err
	}

	return u, token, nil
}

// Verify resolves the account behind a token. A token whose user no longer
// resolves is treated the same as an invalid token.
func (a *Authenticator) Verify(ctx context.Context, token string) (user.User, error) {
	userID, err := a.tokens.VerifyToken(token)

	if err != nil {
		return user.User{}, err
	}

	u, err := a.users.GetByID(ctx, userID)

	if err != nil {
		return user.User{}, auth.ErrInvalidToken
	}

	return u, nil
}
