// Package server exposes the module renderer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/modtex/internal/logging"
	"github.com/yaklabco/modtex/pkg/config"
	"github.com/yaklabco/modtex/pkg/module"
	"github.com/yaklabco/modtex/pkg/render"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second

	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Options configures a Server.
type Options struct {
	// MaxBodyBytes caps the request body of POST /render.
	// 0 means config.DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Page is used when a request asks for a standalone page.
	Page module.PageOptions

	// NormalizeUnicode converts request text to NFC before rendering.
	NormalizeUnicode bool

	// Engine is reported by the health check.
	Engine string
}

// Server renders module text posted to it.
type Server struct {
	math   render.MathRenderer
	logger *log.Logger
	opts   Options
	mux    *http.ServeMux
}

// New creates a Server that typesets with math and logs through logger.
func New(math render.MathRenderer, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}

	s := &Server{
		math:   math,
		logger: logger,
		opts:   opts,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /render", s.handleRender)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the server's routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("serving", logging.FieldAddr, ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// renderResponse is the JSON body of POST /render?format=json.
type renderResponse struct {
	HTML  string       `json:"html"`
	Title string       `json:"title,omitempty"`
	Stats render.Stats `json:"stats"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondWithError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	mod, err := module.Parse(body, module.ParseOptions{NormalizeUnicode: s.opts.NormalizeUnicode})
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := render.RenderDocument(mod.Text, s.math)
	if err != nil {
		s.logger.Error("render failed", logging.FieldError, err)
		respondWithError(w, http.StatusInternalServerError, "math typesetting failed")
		return
	}

	query := r.URL.Query()

	if query.Get("format") == "json" {
		respondWithJSON(w, http.StatusOK, renderResponse{HTML: doc.HTML, Title: mod.Title, Stats: doc.Stats})
		return
	}

	out := []byte(doc.HTML)
	if wantPage, _ := strconv.ParseBool(query.Get("page")); wantPage {
		out, err = module.Page(mod, doc.HTML, s.opts.Page)
		if err != nil {
			s.logger.Error("compose page failed", logging.FieldError, err)
			respondWithError(w, http.StatusInternalServerError, "could not compose page")
			return
		}
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"engine": s.opts.Engine,
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
