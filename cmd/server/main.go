package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitcollect/internal/auth"
	"github.com/mmynk/splitcollect/internal/collect"
	"github.com/mmynk/splitcollect/internal/config"
	"github.com/mmynk/splitcollect/internal/links"
	"github.com/mmynk/splitcollect/internal/middleware"
	"github.com/mmynk/splitcollect/internal/payment"
	"github.com/mmynk/splitcollect/internal/service"
	"github.com/mmynk/splitcollect/internal/storage"
	"github.com/mmynk/splitcollect/internal/storage/postgres"
	"github.com/mmynk/splitcollect/internal/storage/sqlite"
	"github.com/mmynk/splitcollect/pkg/api"
	"github.com/mmynk/splitcollect/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	for _, warning := range cfg.Warnings {
		slog.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	logger := slog.Default()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	builder := links.NewBuilder(cfg.AppURL, cfg.CurrencyCode, cfg.CurrencyDecimals)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, logger)
	splitSvc := service.NewSplitService(collect.New(store, cfg.CurrencyDecimals), store, store, builder, logger)
	paymentSvc := service.NewPaymentService(store, payment.NewProcessor(store), builder, logger)
	reconcileSvc := service.NewReconcileService(store, logger)
	contactSvc := service.NewContactService(store, logger)

	// Participants reach the payment service through their collection link, without a login.
	public := connect.WithInterceptors(middleware.LoggingInterceptor())
	private := connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor())
	accounts := connect.WithInterceptors(middleware.RequireAuth(jwtManager, service.PublicProcedures...), middleware.LoggingInterceptor())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)
	r.Use(corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Mount(api.NewAuthServiceHandler(authSvc, accounts))
	r.Mount(api.NewPaymentServiceHandler(paymentSvc, public))
	r.Mount(api.NewSplitServiceHandler(splitSvc, private))
	r.Mount(api.NewReconcileServiceHandler(reconcileSvc, private))
	r.Mount(api.NewContactServiceHandler(contactSvc, private))

	// Wrap with h2c for HTTP/2 without TLS
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost:%s", cfg.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.DBPath)
	}
}

// requestLogger logs every HTTP request with its chi request ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
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
