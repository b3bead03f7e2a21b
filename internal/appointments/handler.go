package appointments

import (
	"encoding/json"
	"net/http"

	"github.com/codewithhamza1/advanced-appointments/pkg/logging"
)

// Form-token actions. Each protected operation verifies against its own
// action so a token issued for the booking form cannot drive an export.
const (
	ActionSubmit = "submit_appointment"
	ActionExport = "export_csv"
)

// TokenVerifier gates form posts with a CSRF-style token. The router wires
// the HMAC implementation from the middleware package.
type TokenVerifier interface {
	Issue(action string) string
	Verify(token, action string) bool
}

// Handler serves the public booking endpoints.
type Handler struct {
	dispatcher *Dispatcher
	tokens     TokenVerifier
	logger     *logging.Logger
}

// NewHandler creates the public booking handler.
func NewHandler(dispatcher *Dispatcher, tokens TokenVerifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{dispatcher: dispatcher, tokens: tokens, logger: logger}
}

// envelope mirrors the wire contract of the original AJAX endpoint: failures
// carry a message string in data, successes carry the booking payload. Both
// are served with HTTP 200; clients branch on the success flag.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type submitResponse struct {
	Message          string `json:"message"`
	AdminEmailSent   bool   `json:"admin_email_sent"`
	PatientEmailSent bool   `json:"patient_email_sent"`
	WhatsAppSent     bool   `json:"whatsapp_sent"`
	WhatsAppURL      string `json:"whatsapp_url"`
	FallbackURL      string `json:"fallback_url"`
}

// Submit handles POST /appointments form submissions.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, "Invalid form submission.")
		return
	}

	// The security token is a distinct abort class, checked before any
	// field validation.
	if h.tokens != nil && !h.tokens.Verify(r.PostFormValue("form_token"), ActionSubmit) {
		h.logger.Warn("form token verification failed", "remote_ip", r.RemoteAddr)
		respondError(w, "Security check failed")
		return
	}

	sub := Submission{
		Name:    r.PostFormValue("name"),
		Service: r.PostFormValue("service"),
		Date:    r.PostFormValue("date"),
		Time:    r.PostFormValue("time"),
		Phone:   r.PostFormValue("phone"),
		Email:   r.PostFormValue("email"),
	}

	result, err := h.dispatcher.Submit(r.Context(), sub)
	if err != nil {
		if IsValidationError(err) {
			respondError(w, err.Error())
			return
		}
		respondError(w, "Failed to book appointment. Please try again.")
		return
	}

	respondSuccess(w, submitResponse{
		Message:          result.Message,
		AdminEmailSent:   result.AdminEmailSent,
		PatientEmailSent: result.PatientEmailSent,
		WhatsAppSent:     result.WhatsAppSent,
		WhatsAppURL:      result.WhatsAppURL,
		FallbackURL:      result.FallbackURL,
	})
}

// FormToken handles GET /appointments/form-token, issuing the token the
// booking page embeds in its form.
func (h *Handler) FormToken(w http.ResponseWriter, r *http.Request) {
	if h.tokens == nil {
		respondError(w, "Form tokens are not configured.")
		return
	}
	action := r.URL.Query().Get("action")
	if action == "" {
		action = ActionSubmit
	}
	if action != ActionSubmit && action != ActionExport {
		respondError(w, "Unknown action.")
		return
	}
	respondSuccess(w, map[string]string{"token": h.tokens.Issue(action), "action": action})
}

func respondSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope{Success: false, Data: message})
}
