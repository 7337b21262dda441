package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srokkala/Book-Management-App/internal/domain/user"
	"github.com/srokkala/Book-Management-App/internal/identity"
)

// Existing clients send the session token in this header rather than the
// standard Authorization scheme; kept for wire compatibility.
const TokenHeader = "x-auth-token"

const ctxUserKey = "auth.user"

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (user.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth resolves the caller from the token header and attaches it to
// the request context. All failure modes collapse into a 401 so a caller
// cannot tell which check rejected it.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)

		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "No token, authorization denied",
			})
			return
		}

		u, err := m.verifier.Verify(c.Request.Context(), raw)

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "Token is not valid",
			})
			return
		}

		// Stash the caller on both the gin context and the request context
		c.Set(ctxUserKey, u)
		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), u))

		c.Next()
	}
}

// CurrentUser returns the caller attached by RequireAuth.
func CurrentUser(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)
	return u, ok
}
