// Package router assembles the public booking API and the admin console
// routes.
package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/tayloredroots/salon-api/internal/availability"
	"github.com/tayloredroots/salon-api/internal/bookings"
	httpmiddleware "github.com/tayloredroots/salon-api/internal/http/middleware"
	"github.com/tayloredroots/salon-api/internal/recommend"
	"github.com/tayloredroots/salon-api/internal/tryon"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	AvailabilityHandler *availability.Handler
	BookingsHandler     *bookings.Handler
	TryOnHandler        *tryon.Handler
	RecommendHandler    *recommend.Handler
	MetricsHandler      http.Handler

	// AdminToken gates /admin; empty disables the whole admin surface.
	AdminToken         string
	CORSAllowedOrigins []string

	// PublicRatePerSec/Burst apply per IP to the public surface; zero
	// disables.
	PublicRatePerSec float64
	PublicRateBurst  int

	// Redis backs the try-on limiter; nil disables it.
	Redis           *redis.Client
	TryOnRateLimit  int
	TryOnRateWindow time.Duration
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(httpmiddleware.CORSOptions{AllowedOrigins: cfg.CORSAllowedOrigins}))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		if cfg.PublicRatePerSec > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.PublicRatePerSec, cfg.PublicRateBurst))
		}

		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.AvailabilityHandler != nil {
			public.Get("/availability", cfg.AvailabilityHandler.GetSlots)
		}
		if cfg.BookingsHandler != nil {
			public.Post("/bookings", cfg.BookingsHandler.Create)
		}
		if cfg.RecommendHandler != nil {
			public.Post("/recommendations", cfg.RecommendHandler.Recommend)
		}
		if cfg.TryOnHandler != nil {
			public.With(httpmiddleware.RedisRateLimit(cfg.Redis, "tryon",
				cfg.TryOnRateLimit, cfg.TryOnRateWindow, cfg.Logger)).
				Post("/try-on", cfg.TryOnHandler.Generate)
		}
	})

	// Admin console (shared-token gate; 401s everything when unset)
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminToken(cfg.AdminToken))

		if cfg.AvailabilityHandler != nil {
			admin.Route("/availability", func(av chi.Router) {
				av.Get("/rules", cfg.AvailabilityHandler.ListRules)
				av.Post("/rules", cfg.AvailabilityHandler.CreateRule)
				av.Delete("/rules/{id}", cfg.AvailabilityHandler.DeleteRule)
				av.Get("/blackouts", cfg.AvailabilityHandler.ListBlackouts)
				av.Post("/blackouts", cfg.AvailabilityHandler.CreateBlackout)
				av.Delete("/blackouts/{id}", cfg.AvailabilityHandler.DeleteBlackout)
			})
		}
		if cfg.BookingsHandler != nil {
			admin.Route("/bookings", func(bk chi.Router) {
				bk.Get("/", cfg.BookingsHandler.List)
				bk.Patch("/{id}", cfg.BookingsHandler.UpdateStatus)
				bk.Delete("/{id}", cfg.BookingsHandler.Delete)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "salon-api",
	})
}
