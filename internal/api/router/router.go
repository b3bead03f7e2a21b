package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codewithhamza1/advanced-appointments/internal/appointments"
	httpmiddleware "github.com/codewithhamza1/advanced-appointments/internal/http/middleware"
	"github.com/codewithhamza1/advanced-appointments/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	BookingHandler     *appointments.Handler
	AdminHandler       *appointments.AdminHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// PublicRateLimit wraps the booking endpoints. Optional; when nil the
	// public surface is unthrottled.
	PublicRateLimit func(http.Handler) http.Handler
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public booking surface.
	r.Group(func(public chi.Router) {
		if cfg.PublicRateLimit != nil {
			public.Use(cfg.PublicRateLimit)
		}
		public.Get("/health", healthCheck)
		public.Post("/appointments", cfg.BookingHandler.Submit)
		public.Get("/appointments/form-token", cfg.BookingHandler.FormToken)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin surface, behind bearer JWT.
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		admin.Get("/appointments", cfg.AdminHandler.List)
		admin.Patch("/appointments/{id}", cfg.AdminHandler.Update)
		admin.Get("/appointments/stats", cfg.AdminHandler.Stats)
		admin.Get("/appointments/export", cfg.AdminHandler.ExportCSV)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
