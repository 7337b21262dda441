// Package identity carries the authenticated caller through a request's
// context. The auth middleware is the only writer; everything downstream
// receives the caller as an explicit argument and this package only bridges
// the HTTP boundary.
package identity

import (
	"context"

	"github.com/srokkala/Book-Management-App/internal/domain/user"
)

type ctxKey struct{}

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFrom(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(user.User)

	return u, ok && u.ID != ""
}
