package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fitchef/ember/internal/api"
	"github.com/fitchef/ember/internal/config"
	"github.com/fitchef/ember/internal/logger"
	"github.com/fitchef/ember/internal/metrics"
	"github.com/fitchef/ember/internal/middleware"
	"github.com/fitchef/ember/internal/sentry"
	"github.com/fitchef/ember/internal/services/recipe"
	"github.com/fitchef/ember/internal/session"
	"github.com/fitchef/ember/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env,
			cfg.OtelExporterOTLPEndpoint, telemetry.ParseHeaders(cfg.OtelExporterOTLPHeaders))
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion)
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	logger := logger.New(cfg.Env)
	slog.SetDefault(logger)

	// Redis backs the generation rate limiter; without it the limiter is
	// a pass-through.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	// Recipe provider and session store
	provider := recipe.NewProvider(cfg.Generation, cfg.GeminiAPIKey, cfg.GroqAPIKey)
	store := session.NewStore(provider, time.Duration(cfg.Session.TTLMinutes)*time.Minute, cfg.Session.HistoryLimit)
	go store.Run(ctx)

	// API handlers
	apiServer := api.NewServer(cfg, store)
	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute)

	// Router
	r := chi.NewRouter()

	// Middleware
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
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Protected API routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg))
		r.Mount("/api", apiServer.Routes(rateLimiter.Handler))
	})

	slog.Info("Starting server", "port", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
