package handler

import (
	"errors"
	"net/http"

	"github.com/audiovault/audiovault/internal/api/auth"
	"github.com/audiovault/audiovault/internal/api/models"
	"github.com/audiovault/audiovault/internal/yandex"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// YandexAuthURL returns the provider authorization URL the client should
// redirect the user to.
func (h *Handler) YandexAuthURL(c *gin.Context) {
	state := uuid.New().String()
	c.JSON(http.StatusOK, gin.H{"auth_url": h.oauth.AuthURL(state)})
}

// Callback completes the OAuth flow: it exchanges the authorization code
// for a provider profile, resolves or creates the local user and issues
// a bearer token bound to the user's email.
func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code parameter"})
		return
	}

	profile, err := h.oauth.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, yandex.ErrProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("oauth exchange failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user, err := h.db.GetOrCreateUserByEmail(c.Request.Context(), profile.Email, profile.Login)
	if err != nil {
		log.Error("failed to resolve user", "email", profile.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.issueToken(c, http.StatusOK, user.Email)
}

// RefreshToken reissues a bearer token for the authenticated caller.
func (h *Handler) RefreshToken(c *gin.Context) {
	user := auth.CurrentUser(c)
	h.issueToken(c, http.StatusOK, user.Email)
}

// Protected is a sample endpoint that echoes the authenticated user.
func (h *Handler) Protected(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"message": "Hello, " + user.Username})
}

func (h *Handler) issueToken(c *gin.Context, status int, email string) {
	tok, err := h.tokens.Issue(email)
	if err != nil {
		log.Error("failed to issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, models.TokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
	})
}
