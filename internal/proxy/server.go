// Package proxy serves the customer route handlers in Go: each request is
// authenticated from the session token and forwarded to the backend API with
// a bearer token.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zoro11031/routegen/internal/config"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	shutdownTimeout = 5 * time.Second
)

// Server is the customer proxy HTTP server
type Server struct {
	settings config.ServeSettings
	engine   *gin.Engine
	logger   *slog.Logger
	sessions *SessionResolver
}

// NewServer builds the router for settings. A nil logger uses slog.Default().
func NewServer(settings config.ServeSettings, logger *slog.Logger) (*Server, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid serve settings: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		settings: settings,
		engine:   gin.New(),
		logger:   logger,
		sessions: NewSessionResolver(settings.AuthSecret, settings.SessionCookie),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(s.accessLog())

	if len(settings.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:     settings.AllowedOrigins,
			AllowMethods:     []string{"GET", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
			ExposeHeaders:    []string{"Content-Length", requestIDHeader},
			AllowCredentials: true,
		}))
	}

	upstream := NewUpstream(settings.APIURL, settings.UpstreamTimeout)
	newResourceHandlers(Customers, s.sessions, upstream, logger).register(s.engine)

	return s, nil
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions returns the resolver used to validate session tokens
func (s *Server) Sessions() *SessionResolver {
	return s.sessions
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.ListenAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Customer proxy listening", "addr", s.settings.ListenAddr, "upstream", s.settings.APIURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down customer proxy")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// requestID propagates X-Request-ID, generating one when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", requestIDFrom(c),
		)
	}
}
