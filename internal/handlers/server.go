package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pep299/company-news-api/internal/aggregator"
	"github.com/pep299/company-news-api/internal/config"
	"github.com/pep299/company-news-api/internal/deepsearch"
	"github.com/pep299/company-news-api/internal/naver"
	"github.com/pep299/company-news-api/internal/slack"
	"github.com/pep299/company-news-api/internal/transport/response"
	"github.com/pep299/company-news-api/internal/watchlist"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	config     *config.Config
	aggregator *aggregator.Aggregator
	watchlist  *watchlist.Runner
}

// NewServer creates a new HTTP server backed by the live news providers
func NewServer(cfg *config.Config) *Server {
	agg := aggregator.New(
		naver.NewClient(cfg.NaverConfig()),
		deepsearch.NewClient(cfg.DeepSearchConfig(), nil),
	)
	return NewServerWithAggregator(cfg, agg)
}

// NewServerWithAggregator creates a server around an existing aggregator
func NewServerWithAggregator(cfg *config.Config, agg *aggregator.Aggregator) *Server {
	var notifier watchlist.Notifier
	if cfg.SlackWebhookURL != "" {
		notifier = slack.NewClient(cfg.SlackWebhookURL, cfg.SlackChannel)
	}

	return &Server{
		config:     cfg,
		aggregator: agg,
		watchlist:  watchlist.NewRunner(agg, notifier, cfg.Watchlist),
	}
}

// Aggregator returns the news aggregator used by the handlers
func (s *Server) Aggregator() *aggregator.Aggregator {
	return s.aggregator
}

// SetupRoutes configures HTTP routes. News routes are served both at the
// root and under /api/v1.
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/", s.rootHandler).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health/", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)
	s.registerNewsRoutes(api)

	s.registerNewsRoutes(r)

	return r
}

// Handler returns the routes wrapped in a single OpenTelemetry server handler,
// which extracts inbound trace context and records one span per request
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.SetupRoutes(), s.config.AppName)
}

func (s *Server) registerNewsRoutes(r *mux.Router) {
	// Health check
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)

	// Naver
	r.HandleFunc("/news/company", s.companyNewsPostHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/news/company/{company_name}", s.companyNewsGetHandler).Methods(http.MethodGet, http.MethodOptions)

	// DeepSearch
	r.HandleFunc("/news/deepsearch", s.deepSearchPostHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/news/deepsearch/{company_name}", s.deepSearchGetHandler).Methods(http.MethodGet, http.MethodOptions)

	// Both providers
	r.HandleFunc("/news/combined/{company_name}", s.combinedNewsHandler).Methods(http.MethodGet, http.MethodOptions)
}

// Watchlist returns the runner for the configured watchlist
func (s *Server) Watchlist() *watchlist.Runner {
	return s.watchlist
}

// RunWatchlist fetches every watched company and posts the digest
func (s *Server) RunWatchlist(ctx context.Context) error {
	_, err := s.watchlist.Run(ctx)
	if err != nil {
		return fmt.Errorf("running watchlist: %w", err)
	}
	return nil
}

// Middleware functions

// recoverMiddleware turns a handler panic into a 500
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				response.WriteInternalError(w, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers for the configured origins
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(origin string) string {
	if slices.Contains(s.config.CORSOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.config.CORSOrigins, origin) {
		return origin
	}
	return ""
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
