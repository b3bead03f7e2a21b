package appointments

import "time"

// Status tracks where an appointment sits in the clinic workflow. It is
// mutated only through the admin edit endpoint, never by the public form.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a single booking request record. Duplicate submissions are
// stored as distinct records; there is no dedup or slot-conflict concept.
type Appointment struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Service         string    `json:"service"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Time            string    `json:"time"` // slot token, e.g. "14:00-15:00"
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	Status          Status    `json:"status"`
	AdminNotes      string    `json:"admin_notes,omitempty"`
	WhatsAppURL     string    `json:"whatsapp_url,omitempty"`
	WhatsAppMessage string    `json:"whatsapp_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Submission is the untyped public form payload. It never crosses the
// validation boundary; the dispatcher works with Booking only.
type Submission struct {
	Name    string
	Service string
	Date    string
	Time    string
	Phone   string
	Email   string
}

// Booking is a validated, trimmed submission ready to persist.
type Booking struct {
	Name    string
	Service string
	Date    string
	Time    string
	Phone   string
	Email   string
}

// Services lists the options the public form offers. The handler accepts any
// non-empty service string; this list exists for form rendering and admin
// tooling, not server-side enforcement.
var Services = []string{
	"Physiotherapy Session",
	"Dry Needling / Acupuncture",
	"Hijama Therapy (Static Cupping)",
	"Dynamic Cupping Massage",
	"Consultation Only",
	"Home Physiotherapy Visit",
	"Online Consultation",
}

// TimeSlots lists the bookable slot tokens. Same enforcement caveat as
// Services.
var TimeSlots = []string{
	"12:00-13:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
	"17:00-18:00",
	"18:00-19:00",
	"19:00-20:00",
	"20:00-21:00",
	"21:00-22:30",
}
