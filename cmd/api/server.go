package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/store"

	"github.com/rs/zerolog"
)

// newServer builds the routed, middleware-wrapped handler. ctx bounds the
// lifetime of background work such as rate limiter eviction.
func newServer(ctx context.Context, cfg *config.Config, st *store.Store, logger zerolog.Logger) http.Handler {
	metrics := httpx.NewMetrics()
	limiter := httpx.NewRateLimiter(ctx, cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context(), 500*time.Millisecond); err != nil {
			logger.Warn().Err(err).Msg("readiness check failed")
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())

	bookHandler := book.NewHTTPHandler(book.NewService(st.Books), logger)
	bookHandler.RegisterRoutes(router)

	return httpx.Chain(metrics.Middleware(router),
		httpx.RecoveryMiddleware(logger),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.Security.EnableHSTS),
		httpx.CORSMiddleware(cfg.Security.CORSOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.Security.MaxBodyBytes),
	)
}
