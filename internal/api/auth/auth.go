// Package auth resolves the caller's identity from a bearer token and
// enforces the self-or-admin access rules.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/audiovault/audiovault/internal/database"
	"github.com/audiovault/audiovault/internal/token"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const userContextKey = "user"

// Provider authenticates requests against the token service and the user store.
type Provider struct {
	tokens *token.Service
	db     database.DB
}

// New creates an auth provider.
func New(tokens *token.Service, db database.DB) *Provider {
	return &Provider{
		tokens: tokens,
		db:     db,
	}
}

// RequireAuth verifies the bearer token and loads the matching user into
// the request context. A missing header, an invalid token and a token
// whose subject no longer exists all produce the same opaque 401.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}

		email, err := p.tokens.Verify(raw)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := p.db.GetUserByEmail(c.Request.Context(), email)
		if err != nil {
			// A missing user means the token's subject was deleted: same
			// opaque 401 as a bad token. Store outages are not auth failures.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				unauthorized(c)
				return
			}
			log.Error("failed to load user for token subject", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after RequireAuth.
func (p *Provider) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet(userContextKey).(*database.User)
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) *database.User {
	return c.MustGet(userContextKey).(*database.User)
}

// CanAccessUser reports whether the user may read or modify the target
// user's data: admins may access anyone, others only themselves.
func CanAccessUser(user *database.User, targetID uint) bool {
	return user.IsAdmin || user.ID == targetID
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
}
