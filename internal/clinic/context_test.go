package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codewithhamza1/advanced-appointments/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		ClinicName:           "Dr. Farwa's Physiotherapy Clinic",
		ClinicAdminEmail:     "admin@clinic.example",
		ClinicContactPhone:   "+92 300 1112233",
		ClinicWhatsAppNumber: "923001112233",
		ClinicFallbackNumber: "923009998877",
		AdminListURL:         "https://clinic.example/admin/appointments",
	}

	ctx := FromConfig(cfg)

	assert.Equal(t, "Dr. Farwa's Physiotherapy Clinic", ctx.Name)
	assert.Equal(t, "admin@clinic.example", ctx.AdminEmail)
	assert.Equal(t, "923001112233", ctx.WhatsAppNumber)
	assert.Equal(t, "923009998877", ctx.FallbackNumber)
}

func TestFromConfigFallbackDefaultsToPrimary(t *testing.T) {
	cfg := &config.Config{
		ClinicWhatsAppNumber: "923001112233",
	}

	ctx := FromConfig(cfg)

	assert.Equal(t, "923001112233", ctx.FallbackNumber)
}
