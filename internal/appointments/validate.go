package appointments

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]*$`)
)

// Validator checks public submissions. It is pure: no I/O, clock injected.
type Validator struct {
	// Now supplies the current time for the booking-window check.
	Now func() time.Time
	// WindowMonths bounds how far ahead a date may be booked.
	WindowMonths int
	// EnforceWindow enables the server-side date range check. The original
	// form only constrained the range client-side; keeping this switchable
	// preserves that permissive behavior for deployments that want it.
	EnforceWindow bool
	// Location is the clinic's timezone for deciding what "today" means.
	// A patient booking just after local midnight must not be told the
	// date is in the past because the server still sits on yesterday UTC.
	Location *time.Location
}

// NewValidator returns a validator with the standard three-month window.
func NewValidator() *Validator {
	return &Validator{Now: time.Now, WindowMonths: 3, EnforceWindow: true, Location: time.UTC}
}

// Validate trims the submission and collects every failed check into a
// single ValidationError. Service and time are required to be non-empty but
// are not checked against the option sets; the form constrains choices and
// the handler accepts whatever string arrives.
func (v *Validator) Validate(sub Submission) (*Booking, error) {
	b := &Booking{
		Name:    strings.TrimSpace(sub.Name),
		Service: strings.TrimSpace(sub.Service),
		Date:    strings.TrimSpace(sub.Date),
		Time:    strings.TrimSpace(sub.Time),
		Phone:   strings.TrimSpace(sub.Phone),
		Email:   strings.TrimSpace(sub.Email),
	}

	ve := &ValidationError{}
	if b.Name == "" {
		ve.Missing = append(ve.Missing, "name")
	}
	if b.Service == "" {
		ve.Missing = append(ve.Missing, "service")
	}
	if b.Date == "" {
		ve.Missing = append(ve.Missing, "date")
	}
	if b.Time == "" {
		ve.Missing = append(ve.Missing, "time")
	}
	if b.Phone == "" {
		ve.Missing = append(ve.Missing, "phone")
	}

	if b.Phone != "" && !phonePattern.MatchString(b.Phone) {
		ve.Reasons = append(ve.Reasons, "phone must contain only digits with an optional leading +")
	}
	if b.Email != "" && !emailPattern.MatchString(b.Email) {
		ve.Reasons = append(ve.Reasons, "email address is not valid")
	}
	if b.Date != "" {
		v.checkDate(b.Date, ve)
	}

	if !ve.empty() {
		return nil, ve
	}
	return b, nil
}

func (v *Validator) checkDate(date string, ve *ValidationError) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		ve.Reasons = append(ve.Reasons, "date must be in YYYY-MM-DD format")
		return
	}
	if !v.EnforceWindow {
		return
	}

	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	months := v.WindowMonths
	if months <= 0 {
		months = 3
	}

	loc := v.Location
	if loc == nil {
		loc = time.UTC
	}

	n := now().In(loc)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	latest := today.AddDate(0, months, 0)
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc)

	if day.Before(today) {
		ve.Reasons = append(ve.Reasons, "date must not be in the past")
	} else if day.After(latest) {
		ve.Reasons = append(ve.Reasons, "date is too far in the future")
	}
}
