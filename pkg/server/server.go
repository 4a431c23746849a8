// Package server exposes synthesized twins over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/structures
//	GET  /api/structures/{id}/scene?lang=&format=json|svg|cbor
//	GET  /api/structures/{id}/roles
//	POST /api/structures/{id}/click   {"primitive_id": "..."}
//
// Scenes go through a [pipeline.Runner], so repeated requests for unchanged
// progress are served from its cache. Clicks are forwarded to the
// configured handler and, when set, published on Redis.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/observability"
	"github.com/matzehuels/progresstwin/pkg/pipeline"
	"github.com/matzehuels/progresstwin/pkg/synth"
)

// RequestIDHeader carries the per-request uuid.
const RequestIDHeader = "X-Request-ID"

// Options configures a [Server].
type Options struct {
	// Runner synthesizes and renders scenes. Required.
	Runner *pipeline.Runner
	// Source is reloaded on every request unless Dataset is set.
	Source string
	// Dataset pins a preloaded matrix.
	Dataset *matrix.Dataset
	// Synth holds the synthesis defaults; ?lang= overrides the language.
	Synth synth.Options
	// Handler receives forwarded clicks.
	Handler interact.Handler
	// Publisher, when set, also publishes clicks on Redis.
	Publisher *interact.RedisPublisher
	Logger    *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	source    string
	dataset   *matrix.Dataset
	synth     synth.Options
	handler   interact.Handler
	publisher *interact.RedisPublisher
	logger    *log.Logger
	router    chi.Router
}

// New builds the server and its routes.
func New(opts Options) *Server {
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = opts.Runner.Logger
	}
	opts.Synth.SetDefaults()

	s := &Server{
		runner:    opts.Runner,
		source:    opts.Source,
		dataset:   opts.Dataset,
		synth:     opts.Synth,
		handler:   opts.Handler,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/structures", func(r chi.Router) {
		r.Get("/", s.handleListStructures)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/scene", s.handleGetScene)
			r.Get("/roles", s.handleGetRoles)
			r.Post("/click", s.handleClick)
		})
	})
	return r
}

// requestID tags every request with a uuid, reusing a well-formed inbound
// X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", dur,
			"request_id", w.Header().Get(RequestIDHeader))
	})
}

// loadDataset returns the pinned dataset or reloads the source.
func (s *Server) loadDataset(ctx context.Context) (*matrix.Dataset, error) {
	if s.dataset != nil {
		return s.dataset, nil
	}
	return s.runner.Load(ctx, pipeline.Options{Source: s.source})
}
