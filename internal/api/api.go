package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/audiovault/audiovault/internal/api/auth"
	"github.com/audiovault/audiovault/internal/api/handler"
	"github.com/audiovault/audiovault/internal/config"
	"github.com/audiovault/audiovault/internal/database"
	"github.com/audiovault/audiovault/internal/storage"
	"github.com/audiovault/audiovault/internal/token"
	"github.com/audiovault/audiovault/internal/yandex"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// Server is the audiovault HTTP server.
type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	httpServer   *http.Server
	authProvider *auth.Provider
	handler      *handler.Handler
}

// New creates the server and wires up its collaborators.
func New(cfg *config.Config, db database.DB) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	tokens := token.New(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	oauth := yandex.New(cfg.Yandex)
	store := storage.New(cfg.Storage.MediaDir)

	s := &Server{
		cfg:          cfg,
		ginEngine:    gin.Default(),
		authProvider: auth.New(tokens, db),
		handler:      handler.New(db, tokens, oauth, store),
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupCORS() {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type"}
	if lo.Contains(s.cfg.CORSOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	s.ginEngine.Use(cors.New(corsCfg))
}

func (s *Server) setupRoutes() {
	s.setupCORS()

	h := s.handler

	s.ginEngine.GET("/", h.Timestamp)

	authGroup := s.ginEngine.Group("/auth")
	authGroup.GET("/yandex/", h.YandexAuthURL)
	authGroup.GET("/callback/", h.Callback)
	authGroup.POST("/token/refresh/", s.authProvider.RequireAuth(), h.RefreshToken)
	authGroup.GET("/protected/", s.authProvider.RequireAuth(), h.Protected)

	users := s.ginEngine.Group("/users", s.authProvider.RequireAuth())
	users.GET("/:id/", h.GetUser)
	users.PATCH("/:id/", h.UpdateUser)
	users.DELETE("/:id/", s.authProvider.RequireAdmin(), h.DeleteUser)

	audio := s.ginEngine.Group("/audio", s.authProvider.RequireAuth())
	audio.GET("/user/:id/", h.ListUserAudioFiles)
	audio.POST("/upload/", h.UploadAudioFile)
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.ginEngine,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
