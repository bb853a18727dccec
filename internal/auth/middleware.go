package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys for authenticated request data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyClaims = "auth_claims"
)

// Middleware authenticates requests carrying a bearer token.
type Middleware struct {
	tokens      *TokenService
	revocations *RevocationStore
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(tokens *TokenService, revocations *RevocationStore) *Middleware {
	return &Middleware{
		tokens:      tokens,
		revocations: revocations,
	}
}

// RequireAuth rejects requests without a valid, unexpired, non-revoked
// bearer token before the controller body executes. Each failure class gets
// its own 401 payload.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				abortUnauthorized(c, ErrTokenExpired.Error())
				return
			}
			abortUnauthorized(c, ErrTokenInvalid.Error())
			return
		}

		revoked, err := m.revocations.IsRevoked(claims.JTI)
		if err != nil {
			log.Printf("Failed to check token revocation: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "authentication error",
			})
			return
		}
		if revoked {
			abortUnauthorized(c, ErrTokenRevoked.Error())
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireFresh rejects tokens not issued directly by a login. It must run
// after RequireAuth.
func (m *Middleware) RequireFresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.Fresh {
			abortUnauthorized(c, ErrTokenNotFresh.Error())
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetClaims extracts the validated token claims from the Gin context.
func GetClaims(c *gin.Context) *Claims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
