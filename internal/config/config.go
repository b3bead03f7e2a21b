package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DatabaseURL        string
	CORSAllowedOrigins []string

	// Public form protection
	FormTokenSecret string
	FormTokenTTL    time.Duration
	RateLimitPerMin int
	RateLimitBurst  int
	RedisAddr       string
	RedisPassword   string

	// Admin surface
	AdminJWTSecret string
	AdminListURL   string

	// Clinic identity used in notifications
	ClinicName           string
	ClinicAdminEmail     string
	ClinicContactPhone   string
	ClinicWhatsAppNumber string
	ClinicFallbackNumber string
	ClinicTimezone       string
	BookingWindowMonths  int
	EnforceBookingWindow bool

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Email transport selection and provider-neutral sender identity.
	// EmailFromEmail/EmailFromName fall back to the SendGrid values so a
	// SendGrid-only deployment needs no duplicate keys.
	EmailProvider  string
	EmailFromEmail string
	EmailFromName  string
	AWSRegion      string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),

		FormTokenSecret: getEnv("FORM_TOKEN_SECRET", ""),
		FormTokenTTL:    getEnvAsDuration("FORM_TOKEN_TTL", 2*time.Hour),
		RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MIN", 30),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 10),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		AdminListURL:   getEnv("ADMIN_LIST_URL", "/admin/appointments"),

		ClinicName:           getEnv("CLINIC_NAME", "Dr. Farwa's Physiotherapy Clinic"),
		ClinicAdminEmail:     getEnv("CLINIC_ADMIN_EMAIL", ""),
		ClinicContactPhone:   getEnv("CLINIC_CONTACT_PHONE", ""),
		ClinicWhatsAppNumber: getEnv("CLINIC_WHATSAPP_NUMBER", ""),
		ClinicFallbackNumber: getEnv("CLINIC_WHATSAPP_FALLBACK_NUMBER", ""),
		ClinicTimezone:       getEnv("CLINIC_TIMEZONE", "Asia/Karachi"),
		BookingWindowMonths:  getEnvAsInt("BOOKING_WINDOW_MONTHS", 3),
		EnforceBookingWindow: getEnvAsBool("ENFORCE_BOOKING_WINDOW", true),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", ""),

		EmailProvider:  strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),
		EmailFromEmail: getEnv("EMAIL_FROM_EMAIL", getEnv("SENDGRID_FROM_EMAIL", "")),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", getEnv("SENDGRID_FROM_NAME", "")),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
