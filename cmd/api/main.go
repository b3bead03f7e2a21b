package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/codewithhamza1/advanced-appointments/cmd/mainconfig"
	"github.com/codewithhamza1/advanced-appointments/internal/api/router"
	"github.com/codewithhamza1/advanced-appointments/internal/appointments"
	"github.com/codewithhamza1/advanced-appointments/internal/clinic"
	appconfig "github.com/codewithhamza1/advanced-appointments/internal/config"
	httpmiddleware "github.com/codewithhamza1/advanced-appointments/internal/http/middleware"
	"github.com/codewithhamza1/advanced-appointments/internal/notify"
	"github.com/codewithhamza1/advanced-appointments/internal/observability/metrics"
	"github.com/codewithhamza1/advanced-appointments/pkg/logging"
)

func main() {
	// Load .env if present; environment variables win.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting appointment booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	cl := clinic.FromConfig(cfg)

	repo := buildRepository(ctx, cfg, logger)
	bookingMetrics := metrics.NewBookingMetrics(nil)
	sender := buildEmailSender(ctx, cfg, logger)

	validator := appointments.NewValidator()
	validator.WindowMonths = cfg.BookingWindowMonths
	validator.EnforceWindow = cfg.EnforceBookingWindow
	validator.Location = loadClinicLocation(cfg, logger)

	dispatcher := appointments.NewDispatcher(validator, repo, nil, sender, cl, bookingMetrics, logger)
	tokens := buildTokenVerifier(cfg, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		BookingHandler:     appointments.NewHandler(dispatcher, tokens, logger),
		AdminHandler:       appointments.NewAdminHandler(repo, tokens, bookingMetrics, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PublicRateLimit:    buildRateLimit(cfg, logger),
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
}

// loadClinicLocation resolves CLINIC_TIMEZONE so the booking window works on
// the clinic's local calendar, falling back to UTC on a bad zone name.
func loadClinicLocation(cfg *appconfig.Config, logger *logging.Logger) *time.Location {
	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Warn("invalid CLINIC_TIMEZONE, falling back to UTC", "timezone", cfg.ClinicTimezone, "error", err)
		return time.UTC
	}
	return loc
}

// buildTokenVerifier returns a nil interface when no secret is configured.
// Wrapping the issuer's nil pointer in the interface would defeat the
// handlers' nil checks, so the conversion happens only for a live issuer.
func buildTokenVerifier(cfg *appconfig.Config, logger *logging.Logger) appointments.TokenVerifier {
	issuer := httpmiddleware.NewFormTokenIssuer(cfg.FormTokenSecret, cfg.FormTokenTTL)
	if issuer == nil {
		logger.Warn("FORM_TOKEN_SECRET not set; form token checks are disabled")
		return nil
	}
	return issuer
}

// buildRepository connects Postgres when DATABASE_URL is set and falls back
// to the in-memory store otherwise. The fallback keeps local development
// working without a database, at the cost of losing bookings on restart.
func buildRepository(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) appointments.Repository {
	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool == nil {
		logger.Warn("DATABASE_URL not set; using in-memory appointment store")
		return appointments.NewInMemoryRepository()
	}
	return appointments.NewPostgresRepository(pool)
}

func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if databaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to postgres")
	return pool
}

// buildEmailSender selects the email transport from EMAIL_PROVIDER. A nil
// return disables both email channels; bookings still succeed.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFromEmail,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		return sender
	case "stub":
		return notify.NewStubEmailSender(logger)
	default:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			logger.Warn("SENDGRID_API_KEY not set; email notifications disabled")
			return nil
		}
		return sender
	}
}

// buildRateLimit prefers the Redis limiter when REDIS_ADDR is configured so
// multiple instances share one window, otherwise the in-memory token bucket.
func buildRateLimit(cfg *appconfig.Config, logger *logging.Logger) func(http.Handler) http.Handler {
	if cfg.RateLimitPerMin <= 0 {
		return nil
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		logger.Info("using redis rate limiter", "addr", cfg.RedisAddr)
		return httpmiddleware.NewRedisRateLimiter(rdb, cfg.RateLimitPerMin, time.Minute).Middleware(logger)
	}
	return httpmiddleware.RateLimit(float64(cfg.RateLimitPerMin)/60.0, cfg.RateLimitBurst)
}
