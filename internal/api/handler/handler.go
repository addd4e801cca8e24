package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/audiovault/audiovault/internal/database"
	"github.com/audiovault/audiovault/internal/storage"
	"github.com/audiovault/audiovault/internal/token"
	"github.com/audiovault/audiovault/internal/yandex"
	"github.com/gin-gonic/gin"
)

// OAuthExchanger resolves an authorization code into a provider profile.
type OAuthExchanger interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*yandex.Profile, error)
}

// Handler maps HTTP requests onto the store, token service and OAuth exchange.
type Handler struct {
	db      database.DB
	tokens  *token.Service
	oauth   OAuthExchanger
	storage *storage.Storage
}

// New creates a Handler.
func New(db database.DB, tokens *token.Service, oauth OAuthExchanger, store *storage.Storage) *Handler {
	return &Handler{
		db:      db,
		tokens:  tokens,
		oauth:   oauth,
		storage: store,
	}
}

// Timestamp is the unauthenticated liveness endpoint.
func (h *Handler) Timestamp(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": float64(time.Now().UnixNano()) / float64(time.Second),
	})
}
