package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tayloredroots/salon-api/cmd/mainconfig"
	"github.com/tayloredroots/salon-api/internal/api/router"
	"github.com/tayloredroots/salon-api/internal/availability"
	"github.com/tayloredroots/salon-api/internal/bookings"
	appconfig "github.com/tayloredroots/salon-api/internal/config"
	"github.com/tayloredroots/salon-api/internal/notify"
	"github.com/tayloredroots/salon-api/internal/observability/metrics"
	"github.com/tayloredroots/salon-api/internal/recommend"
	"github.com/tayloredroots/salon-api/internal/tryon"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

func main() {
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salon-api server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	loc := salonLocation(cfg.SalonTimezone, logger)
	metricsHandler, salonMetrics := setupMetrics()

	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool == nil {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := setupRedis(cfg, logger)

	// Availability + bookings
	availabilityRepo := availability.NewRepository(pool)
	bookingsRepo := bookings.NewRepository(pool)
	availabilitySvc := availability.NewService(availabilityRepo, bookingsRepo, logger)
	availabilityHandler := availability.NewHandler(availabilitySvc, availabilityRepo, loc, cfg.DefaultWindowDays, salonMetrics, logger)

	notifier := setupNotifier(ctx, cfg, logger)
	bookingsSvc := bookings.NewService(bookingsRepo, notifier, salonMetrics, logger)
	bookingsHandler := bookings.NewHandler(bookingsSvc, logger)

	tryOnHandler := setupTryOn(ctx, cfg, salonMetrics, logger)
	recommendHandler := recommend.NewHandler(logger)

	r := router.New(&router.Config{
		Logger:              logger,
		AvailabilityHandler: availabilityHandler,
		BookingsHandler:     bookingsHandler,
		TryOnHandler:        tryOnHandler,
		RecommendHandler:    recommendHandler,
		MetricsHandler:      metricsHandler,
		AdminToken:          cfg.AdminToken,
		CORSAllowedOrigins:  splitOrigins(cfg.CORSAllowedOrigins),
		PublicRatePerSec:    cfg.PublicRatePerSec,
		PublicRateBurst:     cfg.PublicRateBurst,
		Redis:               redisClient,
		TryOnRateLimit:      cfg.TryOnRateLimit,
		TryOnRateWindow:     cfg.TryOnRateWindow,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func salonLocation(name string, logger *logging.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Error("invalid salon timezone, falling back to UTC", "timezone", name, "error", err)
		return time.UTC
	}
	return loc
}

func setupMetrics() (http.Handler, *metrics.SalonMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewSalonMetrics(registry)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), m
}

func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres ping failed", "error", err)
	}
	return pool
}

func setupRedis(cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured, try-on rate limiting disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// setupNotifier picks the first configured email transport: SendGrid, then
// SES, then a logging stub.
func setupNotifier(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *notify.Service {
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else if cfg.AWSAccessKeyID != "" && cfg.SendGridFromEmail != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
		} else if ses := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); ses != nil {
			sender = ses
		}
	}
	if sender == nil {
		sender = notify.NewStubEmailSender(logger)
	}
	return notify.NewService(sender, cfg.OwnerEmail, cfg.SalonName, logger)
}

func setupTryOn(ctx context.Context, cfg *appconfig.Config, m *metrics.SalonMetrics, logger *logging.Logger) *tryon.Handler {
	var gen tryon.ImageGenerator
	if cfg.GoogleAPIKey != "" {
		client, err := tryon.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
		} else {
			gen = client
		}
	} else {
		logger.Info("GOOGLE_API_KEY not set, hair try-on disabled")
	}

	var store tryon.PreviewStore
	if cfg.PreviewBucket != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for preview store", "error", err)
		} else if s := tryon.NewS3PreviewStore(s3.NewFromConfig(awsCfg), cfg.PreviewBucket, cfg.PreviewBaseURL, logger); s != nil {
			store = s
		}
	}

	if gen == nil {
		return nil
	}
	return tryon.NewHandler(gen, store, m, cfg.TryOnBodyLimit, logger)
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
