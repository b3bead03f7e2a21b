package clinic

import "github.com/codewithhamza1/advanced-appointments/internal/config"

// Context carries the clinic identity injected into notifications. It
// replaces hardcoded contact details so a deployment can point the booking
// pipeline at any clinic without touching the composer.
type Context struct {
	Name           string
	AdminEmail     string
	ContactPhone   string
	WhatsAppNumber string
	FallbackNumber string
	AdminListURL   string
}

// FromConfig builds a clinic context from application configuration. The
// fallback WhatsApp number defaults to the primary one when unset.
func FromConfig(cfg *config.Config) Context {
	ctx := Context{
		Name:           cfg.ClinicName,
		AdminEmail:     cfg.ClinicAdminEmail,
		ContactPhone:   cfg.ClinicContactPhone,
		WhatsAppNumber: cfg.ClinicWhatsAppNumber,
		FallbackNumber: cfg.ClinicFallbackNumber,
		AdminListURL:   cfg.AdminListURL,
	}
	if ctx.FallbackNumber == "" {
		ctx.FallbackNumber = ctx.WhatsAppNumber
	}
	return ctx
}
