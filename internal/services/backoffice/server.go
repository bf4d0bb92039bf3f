// Package backoffice hosts the administrative dashboard HTTP service.
package backoffice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/timeouts"
	"github.com/louisbranch/backoffice/internal/services/backoffice/app"
	"github.com/louisbranch/backoffice/internal/services/backoffice/gate"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/observability"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "backoffice"

// Sessions issues and verifies session tokens.
type Sessions interface {
	TokenParser
	Issue(identity sessiontoken.Identity) (string, time.Time, error)
	TTL() time.Duration
}

// Config defines startup inputs for the backoffice service.
type Config struct {
	HTTPAddr string
	Store    modules.Store
	Sessions Sessions
	// GateExclusions replaces the default gate exclusion patterns when set.
	GateExclusions []string
	// BcryptCost overrides the password hashing cost; zero keeps the default.
	BcryptCost int
	// Now overrides the clock; tests only.
	Now func() time.Time
}

// Server hosts the backoffice HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler: gate, session viewer and the composed
// module mux.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	gateCfg := gate.DefaultConfig()
	if len(cfg.GateExclusions) > 0 {
		gateCfg.Exclusions = cfg.GateExclusions
	}
	routeGate, err := gate.New(gateCfg)
	if err != nil {
		return nil, fmt.Errorf("build route gate: %w", err)
	}

	registry := modules.Registry{Store: cfg.Store, Issuer: cfg.Sessions, BcryptCost: cfg.BcryptCost}
	root, err := app.Composer{}.Compose(app.ComposeInput{
		Dependencies:     module.Dependencies{Now: cfg.Now},
		Authenticated:    signedIn,
		IsPublic:         routeGate.IsPublic,
		PublicModules:    registry.PublicModules(),
		ProtectedModules: registry.ProtectedModules(),
	})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(root,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		traced(),
		observability.RequestLogger(log.Default()),
		routeGate.Middleware,
		withViewer(cfg.Sessions),
	), nil
}

func traced() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

// NewServer validates config and constructs a backoffice server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose backoffice handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ReadTimeout:       timeouts.Read,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("backoffice server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	log.Printf("backoffice listening addr=%s", s.httpAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown backoffice http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve backoffice http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
