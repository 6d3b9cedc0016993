package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/sous/internal/api"
	"github.com/socialchef/sous/internal/config"
	"github.com/socialchef/sous/internal/logger"
	"github.com/socialchef/sous/internal/metrics"
	"github.com/socialchef/sous/internal/middleware"
	"github.com/socialchef/sous/internal/sentry"
	"github.com/socialchef/sous/internal/services/completion"
	"github.com/socialchef/sous/internal/services/recipe"
	"github.com/socialchef/sous/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func main() {
	defer sentry.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer shutdown(context.Background())
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init sentry", "error", err)
	}
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	logger := logger.New(cfg.Env)
	slog.SetDefault(logger)

	// Completion backend, configured once
	setup := completion.Configure(cfg)
	recipes := recipe.NewService(setup, recipe.WithLogger(logger))
	if cfgErr := recipes.ConfigurationError(); cfgErr != nil {
		logger.Error("Completion backend unavailable", "provider", setup.Provider, "error", cfgErr.Error())
		sentry.CaptureMessage(cfgErr.Error())
	} else {
		logger.Info("Completion backend ready", "provider", setup.Provider, "model", setup.Model)
	}

	apiServer := api.NewServer(cfg, recipes)

	r := chi.NewRouter()

	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(sentry.HTTPMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Session)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Page
	r.Get("/", apiServer.HandleIndex)
	r.Post("/generate", apiServer.HandleGenerateForm)

	// API
	r.Get("/api/languages", apiServer.HandleLanguages)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg))
		r.Post("/api/recipes", apiServer.HandleGenerateJSON)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting server", "port", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("Server stopped")
}
