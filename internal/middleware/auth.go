package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/auth"
)

const identityKey = "identity"

// TokenValidator verifies a bearer token and returns the caller
// identity. Satisfied by auth.TokenService.
type TokenValidator interface {
	ValidateAccess(token string) (*auth.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and stores
// the caller identity in the gin context for handlers.
func RequireAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := bearerIdentity(c, tokens)
		if !ok {
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerIdentity(c *gin.Context, tokens TokenValidator) (*auth.Identity, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		JSONError(c, http.StatusUnauthorized, "Authentication credentials were not provided", "")
		return nil, false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		JSONError(c, http.StatusUnauthorized, "Bearer token malformed", "")
		return nil, false
	}

	identity, err := tokens.ValidateAccess(token)
	if err != nil {
		JSONError(c, http.StatusUnauthorized, "Invalid or expired token", "")
		return nil, false
	}
	return identity, true
}

// Identity returns the authenticated caller stored by RequireAuth.
func Identity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok
}
