package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/middleware"
	"github.com/mmynk/tipsplit/internal/observability"
	"github.com/mmynk/tipsplit/internal/service"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
	"github.com/mmynk/tipsplit/pkg/api"
)

// newRouter mounts every service plus the health and metrics endpoints.
func newRouter(store *sqlite.SQLiteStore, jwtManager *auth.JWTManager, authenticator auth.Authenticator, logger *slog.Logger) http.Handler {
	observability.RegisterMetrics()

	rpcLogger := middleware.LoggingInterceptor()
	// Auth runs first so the logging interceptor sees the user.
	required := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.AuthRegisterProcedure, api.AuthLoginProcedure, api.CalculationCalculateProcedure),
		rpcLogger,
	)
	optional := connect.WithInterceptors(middleware.OptionalAuth(jwtManager), rpcLogger)

	mux := http.NewServeMux()
	mux.Handle(service.NewAuthService(authenticator, store, jwtManager, logger).Handler(required))
	mux.Handle(service.NewSettingsService(store, logger).Handler(required))
	mux.Handle(service.NewCalculationService(store, logger).Handler(required))
	mux.Handle(service.NewBrandingService(store, logger).Handler(optional))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return loggingMiddleware(corsMiddleware(mux))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
