package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"go.uber.org/zap"

	"hookcord/pkg/auth"
	"hookcord/pkg/bus"
	"hookcord/pkg/config"
	"hookcord/pkg/discord"
	"hookcord/pkg/interaction"
	"hookcord/pkg/logger"
	"hookcord/pkg/verify"
	"hookcord/pkg/version"
)

const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"

	defaultAckTimeout = 3 * time.Second
)

// Server receives signed interaction callbacks over HTTP, verifies
// them, and publishes classified interactions onto the event bus. The
// request is held open until a handler delivers the initial response
// or the acknowledgement window lapses.
type Server struct {
	config     *config.Config
	log        *logger.Logger
	bus        bus.Bus
	auth       *auth.Manager
	verifier   *verify.Verifier
	echo       *echo.Echo
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates an interaction gateway server.
func NewServer(cfg *config.Config, log *logger.Logger, eventBus bus.Bus, authManager *auth.Manager) (*Server, error) {
	s := &Server{
		config:    cfg,
		log:       log,
		bus:       eventBus,
		auth:      authManager,
		startedAt: time.Now(),
	}

	if cfg.Gateway.PublicKey != "" {
		verifier, err := verify.New(cfg.Gateway.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("gateway public key: %w", err)
		}
		s.verifier = verifier
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	e := echo.New()

	e.Use(middleware.Recover())

	// The platform posts callbacks to whatever path the deployment
	// registered, so every POST path lands on the same pipeline.
	e.POST("/", s.handleInteraction)
	e.POST("/*", s.handleInteraction)

	e.GET("/health", s.handleHealth)
	e.GET("/api/v1/status", s.handleStatus)

	s.echo = e
}

// Start starts the gateway server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Gateway.Host, s.config.Gateway.Port)
	s.log.Info("Gateway server starting",
		zap.String("addr", addr),
	)

	// Use http.Server directly so we can control shutdown from fx lifecycle
	// (Echo v5's e.Start() manages its own signal handling which conflicts with fx).
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.echo,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("Gateway server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the gateway server.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Gateway server stopping")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleInteraction(c *echo.Context) error {
	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
	}

	timestamp := req.Header.Get(headerTimestamp)
	signature := req.Header.Get(headerSignature)
	if s.verifier == nil || !s.verifier.Verify(timestamp, body, signature) {
		s.log.Warn("Rejected interaction with invalid signature",
			zap.String("remote", c.RealIP()),
		)
		return c.String(http.StatusUnauthorized, "invalid request signature")
	}

	var payload discord.InteractionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed interaction payload"})
	}

	if payload.Type == discord.InteractionPing {
		s.log.Debug("Acknowledged ping", zap.String("interaction_id", payload.ID))
		return c.JSON(http.StatusOK, map[string]discord.ResponseType{"type": discord.ResponsePong})
	}

	responder := newEchoResponder(c)
	instance, kind, ok := interaction.Classify(&payload, responder, s.webhookOptions()...)
	if !ok {
		s.log.Debug("Dropped unmapped interaction",
			zap.String("interaction_id", payload.ID),
			zap.Int("type", int(payload.Type)),
		)
		return c.NoContent(http.StatusNoContent)
	}

	evt := &bus.Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		Timestamp:   time.Now(),
		Payload:     body,
		Interaction: instance,
	}
	if err := s.bus.Publish(evt); err != nil {
		s.log.Error("Failed to publish interaction event",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to dispatch interaction"})
	}

	select {
	case <-responder.Done():
		return nil
	case <-req.Context().Done():
		responder.Abandon()
		return nil
	case <-time.After(s.ackTimeout()):
		s.log.Warn("Interaction not acknowledged in time",
			zap.String("interaction_id", payload.ID),
			zap.String("kind", string(kind)),
		)
		// Written through the responder so a handler racing the
		// deadline loses cleanly instead of double-writing.
		responder.Respond(http.StatusInternalServerError, map[string]string{"error": "interaction not acknowledged"})
		return nil
	}
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(c *echo.Context) error {
	status := map[string]interface{}{
		"version":    version.GetVersion(),
		"uptime":     time.Since(s.startedAt).String(),
		"started_at": s.startedAt.Format(time.RFC3339),
		"bus":        s.bus.GetMetrics(),
		"auth_ready": s.auth != nil && s.auth.Ready(),
	}
	return c.JSON(http.StatusOK, status)
}

func (s *Server) webhookOptions() []discord.WebhookOption {
	if s.config.App.APIBase == "" {
		return nil
	}
	return []discord.WebhookOption{discord.WithAPIBase(s.config.App.APIBase)}
}

func (s *Server) ackTimeout() time.Duration {
	if s.config.Gateway.AckTimeout <= 0 {
		return defaultAckTimeout
	}
	return time.Duration(s.config.Gateway.AckTimeout) * time.Second
}
