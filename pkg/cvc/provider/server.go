package provider

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
	"github.com/MyNextID/cvc-go/pkg/cvc/logging"
)

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

const (
	RoutePublicKeys = "/v1/public-keys"
	RouteSecretKeys = "/v1/secret-keys"
	RoutePing       = "/ping"
	RouteMetrics    = "/metrics"
)

// SecretKeyRequest is the body of POST /v1/secret-keys.
type SecretKeyRequest struct {
	KeyID string `json:"key_id"`
	Hash  string `json:"hash"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	p       *Provider
	logger  logging.Logger
	metrics *Metrics
}

// NewHandler returns the HTTP API for p. When m is non-nil, requests are
// instrumented and GET /metrics serves m.
func NewHandler(p *Provider, m *Metrics) http.Handler {
	h := &handlers{p: p, logger: p.logger, metrics: m}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Get(RoutePing, h.ping)
	r.Post(RoutePublicKeys, h.publicKeys)
	r.Post(RouteSecretKeys, h.secretKeys)
	if m != nil {
		r.Method(http.MethodGet, RouteMetrics, m.Handler())
	}
	return r
}

// instrument logs and records every request under its route pattern.
func (h *handlers) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.recordHTTP(route, r.Method, status, time.Since(start))
		h.logger.Debug(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

func (h *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "pong")
}

func (h *handlers) publicKeys(w http.ResponseWriter, r *http.Request) {
	var hashes []string
	if err := decodeJSON(r, &hashes); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	keys, err := h.p.GeneratePublicKeys(r.Context(), hashes)
	if err != nil {
		h.writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (h *handlers) secretKeys(w http.ResponseWriter, r *http.Request) {
	var req SecretKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	key, err := h.p.GenerateSecretKey(r.Context(), req.KeyID, req.Hash)
	if err != nil {
		h.writeError(w, r, statusFor(err), err)
		return
	}
	body, err := jwk.Marshal(key)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	defer cvc.ZeroizeBytes(body)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrTooManyHashes),
		cvc.IsValidationError(err), cvc.IsCapacityError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "status", status, "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	h.logger.Warn(r.Context(), "bad request", "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Server runs the provider HTTP API.
type Server struct {
	srv      *http.Server
	logger   logging.Logger
	certFile string
	keyFile  string
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
}

// NewServer returns a Server for p.
func NewServer(p *Provider, m *Metrics, cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewHandler(p, m),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		},
		logger:   p.logger,
		certFile: cfg.TLSCertFile,
		keyFile:  cfg.TLSKeyFile,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if s.certFile != "" && s.keyFile != "" {
			s.logger.Info(ctx, "provider listening", "addr", s.srv.Addr, "tls", true)
			errCh <- s.srv.ListenAndServeTLS(s.certFile, s.keyFile)
			return
		}
		s.logger.Info(ctx, "provider listening", "addr", s.srv.Addr, "tls", false)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info(ctx, "provider shutting down")
		return s.srv.Shutdown(shutdownCtx)
	}
}
