package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/codewithhamza1/advanced-appointments/internal/clinic"
	"github.com/codewithhamza1/advanced-appointments/internal/notify"
	"github.com/codewithhamza1/advanced-appointments/internal/observability/metrics"
	"github.com/codewithhamza1/advanced-appointments/pkg/logging"
)

// Result aggregates the outcome of a submission: the stored record, the
// per-channel delivery flags, and the WhatsApp handoff URLs. Notification
// failures never fail the request; they only flip flags to false.
type Result struct {
	Appointment      *Appointment
	Message          string
	AdminEmailSent   bool
	PatientEmailSent bool
	WhatsAppSent     bool
	WhatsAppURL      string
	FallbackURL      string
}

// Dispatcher runs the submission pipeline: validate, persist, notify,
// respond. Persistence failures abort before any notification; notification
// failures are recorded and processing continues.
type Dispatcher struct {
	validator *Validator
	repo      Repository
	composer  *Composer
	email     notify.EmailSender
	clinic    clinic.Context
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
	now       func() time.Time
}

// NewDispatcher wires the submission pipeline. email may be nil when no
// transport is configured; both email channels then report false.
func NewDispatcher(validator *Validator, repo Repository, composer *Composer, email notify.EmailSender, cl clinic.Context, m *metrics.BookingMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if validator == nil {
		validator = NewValidator()
	}
	if composer == nil {
		composer = NewComposer()
	}
	return &Dispatcher{
		validator: validator,
		repo:      repo,
		composer:  composer,
		email:     email,
		clinic:    cl,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the dispatcher clock, for tests.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Submit processes one public booking submission. A returned ValidationError
// means nothing was persisted or sent; any other error means record creation
// failed. A nil error means exactly one record was created, whatever the
// notification flags say.
func (d *Dispatcher) Submit(ctx context.Context, sub Submission) (*Result, error) {
	booking, err := d.validator.Validate(sub)
	if err != nil {
		d.metrics.ObserveSubmission("invalid")
		return nil, err
	}

	now := d.now()
	appt, err := d.repo.Create(ctx, booking, now)
	if err != nil {
		d.metrics.ObserveSubmission("persist_error")
		d.logger.Error("failed to create appointment", "error", err, "name", booking.Name)
		return nil, fmt.Errorf("appointments: create record: %w", err)
	}
	d.logger.Info("appointment created", "id", appt.ID, "service", appt.Service, "date", appt.Date)

	result := &Result{Appointment: appt}

	result.AdminEmailSent = d.sendAdminEmail(ctx, booking)
	if booking.Email != "" {
		result.PatientEmailSent = d.sendPatientEmail(ctx, booking)
	}

	// WhatsApp composition is pure string building and cannot fail.
	wa := d.composer.WhatsAppMessage(booking, d.clinic, now)
	result.WhatsAppSent = true
	result.WhatsAppURL = wa.DeepLinkURL
	result.FallbackURL = wa.FallbackURL
	d.metrics.ObserveNotification("whatsapp", true)

	// Cache the handoff on the record for admin convenience. A failed update
	// does not undo the booking.
	if _, err := d.repo.Update(ctx, appt.ID, UpdateFields{
		WhatsAppURL:     &wa.DeepLinkURL,
		WhatsAppMessage: &wa.Text,
	}); err != nil {
		d.logger.Error("failed to store whatsapp metadata", "error", err, "id", appt.ID)
	} else {
		appt.WhatsAppURL = wa.DeepLinkURL
		appt.WhatsAppMessage = wa.Text
	}

	result.Message = successMessage(booking.Email != "" && result.PatientEmailSent)
	d.metrics.ObserveSubmission("booked")
	return result, nil
}

func (d *Dispatcher) sendAdminEmail(ctx context.Context, b *Booking) bool {
	if d.email == nil || d.clinic.AdminEmail == "" {
		d.metrics.ObserveNotification("admin_email", false)
		return false
	}
	email := d.composer.AdminEmail(b, d.clinic)
	err := d.email.Send(ctx, notify.EmailMessage{
		To:      d.clinic.AdminEmail,
		ToName:  d.clinic.Name,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		d.logger.Error("admin email failed", "error", err)
	}
	d.metrics.ObserveNotification("admin_email", err == nil)
	return err == nil
}

func (d *Dispatcher) sendPatientEmail(ctx context.Context, b *Booking) bool {
	if d.email == nil {
		d.metrics.ObserveNotification("patient_email", false)
		return false
	}
	email := d.composer.PatientEmail(b, d.clinic)
	err := d.email.Send(ctx, notify.EmailMessage{
		To:      b.Email,
		ToName:  b.Name,
		Subject: email.Subject,
		HTML:    email.HTML,
		ReplyTo: d.clinic.AdminEmail,
	})
	if err != nil {
		d.logger.Error("patient email failed", "error", err, "to", b.Email)
	}
	d.metrics.ObserveNotification("patient_email", err == nil)
	return err == nil
}

func successMessage(confirmationEmailed bool) string {
	msg := "Appointment booked successfully!"
	if confirmationEmailed {
		msg += " A confirmation email has been sent to your email address."
	}
	msg += " You will be redirected to WhatsApp to send your appointment details to the clinic."
	return msg
}
