package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/shepherd/internal/auth"
	"github.com/mmynk/shepherd/internal/config"
	"github.com/mmynk/shepherd/internal/middleware"
	"github.com/mmynk/shepherd/internal/service"
	"github.com/mmynk/shepherd/internal/storage/sqlite"
	"github.com/mmynk/shepherd/pkg/api/apiconnect"
	"github.com/mmynk/shepherd/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Order matters: metrics and logging see the auth interceptor's rejections.
	interceptors := []connect.Interceptor{
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
	}
	authService := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	public := []string{apiconnect.AuthServiceLoginProcedure}
	if cfg.AllowRegistration {
		public = append(public, apiconnect.AuthServiceRegisterProcedure)
	} else {
		authService.CloseRegistration()
		slog.Info("Registration closed; only signed-in leaders can add accounts")
	}

	if cfg.RequireAuth {
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager, public...))
	} else {
		slog.Warn("Authentication disabled; every RPC is open")
		interceptors = append(interceptors, middleware.OptionalAuth(jwtManager))
	}
	opts := connect.WithInterceptors(interceptors...)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authService, opts))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store), opts))
	mux.Handle(apiconnect.NewPeopleServiceHandler(service.NewPeopleService(store), opts))
	mux.Handle(apiconnect.NewReportServiceHandler(service.NewReportService(store), opts))
	mux.Handle(apiconnect.NewAlertServiceHandler(service.NewAlertService(store), opts))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "env", cfg.Env, "require_auth", cfg.RequireAuth)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// loggingMiddleware logs every HTTP request at DEBUG; RPC outcomes are
// logged by the Connect interceptor.
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
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
