// Package http exposes the statement generator over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bankstmt/internal/aggregate"
	"bankstmt/internal/cache"
	"bankstmt/internal/core"
	applog "bankstmt/internal/log"
	"bankstmt/internal/profile"
	"bankstmt/internal/storage"
)

// StatementAPI is the service surface the handlers need.
type StatementAPI interface {
	Generate(ctx context.Context, prof profile.Profile, seed int64) (core.Statement, error)
	Get(ctx context.Context, id string) (core.Statement, error)
	List(ctx context.Context) ([]storage.StatementInfo, error)
	Report(ctx context.Context, id string) (aggregate.Report, error)
}

type Server struct {
	http.Server

	api            StatementAPI
	defaultProfile profile.Profile
	defaultSeed    int64
	rateLimiter    *rateLimiter

	// Reports for stored statements never change, so they are cached
	// per statement ID with a short TTL.
	reportCache *cache.LRUCache[aggregate.Report]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// Options tunes the server beyond its listen address.
type Options struct {
	DefaultProfile profile.Profile
	DefaultSeed    int64
	ReportCacheTTL time.Duration
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, api StatementAPI, opts Options) *Server {
	if opts.ReportCacheTTL <= 0 {
		opts.ReportCacheTTL = 2 * time.Minute
	}
	if opts.DefaultProfile == (profile.Profile{}) {
		opts.DefaultProfile = profile.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		api:              api,
		defaultProfile:   opts.DefaultProfile,
		defaultSeed:      opts.DefaultSeed,
		rateLimiter:      newRateLimiter(),
		reportCache:      cache.NewLRUCache[aggregate.Report](100, opts.ReportCacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/statements", s.limited(s.handleGenerateStatement))
	mux.HandleFunc("GET /api/statements", s.limited(s.handleListStatements))
	mux.HandleFunc("GET /api/statements/{id}", s.limited(s.handleGetStatement))
	mux.HandleFunc("GET /api/statements/{id}/report", s.limited(s.handleStatementReport))
	mux.HandleFunc("POST /api/ingest", s.limited(s.handleIngest))

	// Every request carries a scoped logger and request ID in its context.
	httpLogger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	s.Server.Handler = applog.Middleware(httpLogger)(
		applog.RequestIDMiddleware(ensureRequestID)(mux))

	return s
}

// limited wraps a handler with the per-client rate limit and tags the
// response with the request ID assigned by the middleware chain.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", r.Header.Get("X-Request-ID"))

		if !s.rateLimiter.allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "report_entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
