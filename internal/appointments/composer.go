package appointments

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/codewithhamza1/advanced-appointments/internal/clinic"
)

// Composer builds notification payloads from a validated booking. It is pure
// string construction; nothing here can fail at runtime.
type Composer struct{}

// NewComposer returns a composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Email is a composed email payload ready for an EmailSender.
type Email struct {
	Subject string
	HTML    string
}

// WhatsApp is the composed patient-to-clinic WhatsApp handoff: the message
// text plus two launch URLs. DeepLinkURL targets the wa.me scheme; FallbackURL
// uses api.whatsapp.com for desktop clients that mishandle wa.me.
type WhatsApp struct {
	Text        string
	DeepLinkURL string
	FallbackURL string
}

var nonPhoneChars = regexp.MustCompile(`[^0-9+]`)

// WhatsAppLink strips a phone number down to digits and + and returns a
// wa.me chat link for it.
func WhatsAppLink(phone string) string {
	return "https://wa.me/" + nonPhoneChars.ReplaceAllString(phone, "")
}

// LongDate renders a YYYY-MM-DD date as "Monday, June 2, 2025". Unparseable
// input is returned as-is rather than dropped, so a record corrected by an
// admin to an odd value still shows up in notifications.
func LongDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 2, 2006")
}

// StartTime extracts the start component of an "HH:MM-HH:MM" slot token for
// email display. Tokens without a dash are shown whole.
func StartTime(slot string) string {
	if start, _, ok := strings.Cut(slot, "-"); ok {
		return start
	}
	return slot
}

// AdminEmail builds the booking notification sent to the clinic inbox.
func (c *Composer) AdminEmail(b *Booking, cl clinic.Context) Email {
	subject := fmt.Sprintf("New Appointment Booking - %s", cl.Name)

	// Booking fields are patient input and must not reach the HTML raw.
	emailRow := ""
	if b.Email != "" {
		emailRow = fmt.Sprintf(`
                <tr>
                    <td style="padding: 8px 0; font-weight: bold;">Email:</td>
                    <td style="padding: 8px 0;"><a href="mailto:%s">%s</a></td>
                </tr>`, html.EscapeString(b.Email), html.EscapeString(b.Email))
	}

	html := fmt.Sprintf(`<html>
<head><title>%s</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
        <h2 style="color: #2c3e50; text-align: center; margin-bottom: 30px;">New Appointment Booking</h2>

        <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
            <h3 style="color: #27ae60; margin-top: 0;">Patient Details:</h3>
            <table style="width: 100%%; border-collapse: collapse;">
                <tr>
                    <td style="padding: 8px 0; font-weight: bold; width: 120px;">Name:</td>
                    <td style="padding: 8px 0;">%s</td>
                </tr>
                <tr>
                    <td style="padding: 8px 0; font-weight: bold;">Phone:</td>
                    <td style="padding: 8px 0;">
                        <a href="tel:%s">%s</a>
                        <a href="%s" style="margin-left: 10px; color: #25D366; text-decoration: none;">WhatsApp</a>
                    </td>
                </tr>%s
            </table>
        </div>

        <div style="background: #e8f5e8; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
            <h3 style="color: #27ae60; margin-top: 0;">Appointment Details:</h3>
            <table style="width: 100%%; border-collapse: collapse;">
                <tr>
                    <td style="padding: 8px 0; font-weight: bold; width: 120px;">Service:</td>
                    <td style="padding: 8px 0; color: #2c3e50; font-weight: bold;">%s</td>
                </tr>
                <tr>
                    <td style="padding: 8px 0; font-weight: bold;">Date:</td>
                    <td style="padding: 8px 0; color: #e74c3c; font-weight: bold;">%s</td>
                </tr>
                <tr>
                    <td style="padding: 8px 0; font-weight: bold;">Time:</td>
                    <td style="padding: 8px 0; color: #e74c3c; font-weight: bold;">%s</td>
                </tr>
            </table>
        </div>

        <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background: #3498db; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">
                Manage Appointments
            </a>
        </div>

        <div style="text-align: center; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 15px; margin-top: 20px;">
            <p>This email was sent automatically from %s</p>
        </div>
    </div>
</body>
</html>`,
		subject,
		html.EscapeString(b.Name),
		html.EscapeString(b.Phone), html.EscapeString(b.Phone),
		WhatsAppLink(b.Phone),
		emailRow,
		html.EscapeString(b.Service),
		html.EscapeString(LongDate(b.Date)),
		html.EscapeString(StartTime(b.Time)),
		cl.AdminListURL,
		cl.Name,
	)

	return Email{Subject: subject, HTML: html}
}

// PatientEmail builds the confirmation sent to the patient. Callers must only
// send it when the booking carries an email address.
func (c *Composer) PatientEmail(b *Booking, cl clinic.Context) Email {
	subject := fmt.Sprintf("Appointment Confirmation - %s", cl.Name)

	html := fmt.Sprintf(`<html>
<head><title>%s</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
        <div style="text-align: center; margin-bottom: 30px;">
            <h2 style="color: #2c3e50; margin-bottom: 10px;">%s</h2>
            <h3 style="color: #27ae60; margin-top: 0;">Appointment Confirmation</h3>
        </div>

        <div style="background: #f0f8ff; padding: 20px; border-radius: 5px; margin-bottom: 20px; border-left: 4px solid #3498db;">
            <p style="margin: 0; font-size: 16px;">
                <strong>Dear %s,</strong><br><br>
                Thank you for booking an appointment with %s. We have successfully received your appointment request.
            </p>
        </div>

        <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
            <h3 style="color: #2c3e50; margin-top: 0; text-align: center;">Your Appointment Details</h3>
            <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
                <tr style="background: #e8f5e8;">
                    <td style="padding: 12px; font-weight: bold; border: 1px solid #ddd;">Service:</td>
                    <td style="padding: 12px; border: 1px solid #ddd; color: #2c3e50; font-weight: bold;">%s</td>
                </tr>
                <tr>
                    <td style="padding: 12px; font-weight: bold; border: 1px solid #ddd;">Date:</td>
                    <td style="padding: 12px; border: 1px solid #ddd; color: #e74c3c; font-weight: bold;">%s</td>
                </tr>
                <tr style="background: #e8f5e8;">
                    <td style="padding: 12px; font-weight: bold; border: 1px solid #ddd;">Time:</td>
                    <td style="padding: 12px; border: 1px solid #ddd; color: #e74c3c; font-weight: bold;">%s</td>
                </tr>
                <tr>
                    <td style="padding: 12px; font-weight: bold; border: 1px solid #ddd;">Status:</td>
                    <td style="padding: 12px; border: 1px solid #ddd;"><span style="background: #fff3cd; color: #856404; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold;">PENDING CONFIRMATION</span></td>
                </tr>
            </table>
        </div>

        <div style="background: #fff3cd; padding: 15px; border-radius: 5px; margin-bottom: 20px; border-left: 4px solid #ffc107;">
            <p style="margin: 0; color: #856404;">
                <strong>Important Note:</strong><br>
                Your appointment is currently <strong>pending confirmation</strong>. Our team will contact you within 24 hours to confirm your appointment slot.
            </p>
        </div>

        <div style="background: #d4edda; padding: 15px; border-radius: 5px; margin-bottom: 20px; border-left: 4px solid #28a745;">
            <h4 style="margin-top: 0; color: #155724;">Need to Contact Us?</h4>
            <p style="margin: 5px 0; color: #155724;">
                If you have any questions or need to reschedule, please contact us:<br>
                <strong>Phone:</strong> %s<br>
                <strong>Email:</strong> %s
            </p>
        </div>

        <div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin-bottom: 20px;">
            <h4 style="margin-top: 0; color: #2c3e50;">Before Your Appointment:</h4>
            <ul style="color: #495057; margin: 0; padding-left: 20px;">
                <li>Please arrive 10 minutes early for your appointment</li>
                <li>Bring any relevant medical documents or previous reports</li>
                <li>Wear comfortable clothing suitable for physical examination</li>
                <li>If you need to cancel or reschedule, please notify us at least 24 hours in advance</li>
            </ul>
        </div>

        <div style="text-align: center; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 15px; margin-top: 20px;">
            <p><strong>%s</strong><br>
            Providing quality healthcare services</p>
        </div>
    </div>
</body>
</html>`,
		subject,
		cl.Name,
		html.EscapeString(b.Name),
		cl.Name,
		html.EscapeString(b.Service),
		html.EscapeString(LongDate(b.Date)),
		html.EscapeString(StartTime(b.Time)),
		cl.ContactPhone,
		cl.AdminEmail,
		cl.Name,
	)

	return Email{Subject: subject, HTML: html}
}

// WhatsAppMessage builds the plain-text handoff message the patient sends to
// the clinic, with deep-link and fallback URLs. The booking reference is
// derived from the submission timestamp; it is a human-friendly token for the
// chat thread, not a database key.
func (c *Composer) WhatsAppMessage(b *Booking, cl clinic.Context, now time.Time) WhatsApp {
	var sb strings.Builder
	sb.WriteString("APPOINTMENT BOOKING REQUEST\n\n")
	sb.WriteString("Hello! I would like to book an appointment.\n\n")
	sb.WriteString("My Details:\n")
	sb.WriteString("- Name: " + b.Name + "\n")
	sb.WriteString("- Phone: " + b.Phone + "\n")
	if b.Email != "" {
		sb.WriteString("- Email: " + b.Email + "\n")
	}
	sb.WriteString("\nService Required:\n")
	sb.WriteString("- " + b.Service + "\n")
	sb.WriteString("\nPreferred Appointment:\n")
	sb.WriteString("- Date: " + LongDate(b.Date) + "\n")
	sb.WriteString("- Time: " + b.Time + "\n")
	sb.WriteString("\nAdditional Information:\n")
	sb.WriteString("- This booking was made online\n")
	sb.WriteString(fmt.Sprintf("- Booking ID: %d\n", now.Unix()))
	sb.WriteString("- Please confirm my appointment slot\n\n")
	sb.WriteString("Thank you!")

	text := sb.String()
	encoded := url.QueryEscape(text)

	return WhatsApp{
		Text:        text,
		DeepLinkURL: fmt.Sprintf("https://wa.me/%s?text=%s", cl.WhatsAppNumber, encoded),
		FallbackURL: fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", cl.FallbackNumber, encoded),
	}
}
