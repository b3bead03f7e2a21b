package appointments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codewithhamza1/advanced-appointments/internal/observability/metrics"
	"github.com/codewithhamza1/advanced-appointments/pkg/logging"
)

// AdminHandler serves the authenticated admin surface: listing, editing,
// exporting, and summarizing appointments. Authorization happens in the
// router middleware; handlers here assume the caller is an administrator.
type AdminHandler struct {
	repo    Repository
	tokens  TokenVerifier
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(repo Repository, tokens TokenVerifier, m *metrics.BookingMetrics, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{repo: repo, tokens: tokens, metrics: m, logger: logger, now: time.Now}
}

// ListResponse is the response for listing appointments.
type ListResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
}

// List handles GET /admin/appointments.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Appointments: appts, Count: len(appts)})
}

// UpdateRequest is the admin edit payload. Omitted fields are untouched;
// created_at can never be edited.
type UpdateRequest struct {
	Name       *string `json:"name"`
	Service    *string `json:"service"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// Update handles PATCH /admin/appointments/{id}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing appointment id", http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	fields := UpdateFields{
		Name:       req.Name,
		Service:    req.Service,
		Date:       req.Date,
		Time:       req.Time,
		Phone:      req.Phone,
		Email:      req.Email,
		AdminNotes: req.AdminNotes,
	}
	if req.Status != nil {
		status := Status(*req.Status)
		fields.Status = &status
	}

	appt, err := h.repo.Update(r.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to update appointment", "error", err, "id", id)
			http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("appointment updated", "id", appt.ID, "status", appt.Status)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}

// StatsResponse carries the dashboard counters.
type StatsResponse struct {
	Total   int `json:"total"`
	Today   int `json:"today"`
	Pending int `json:"pending"`
}

// Stats handles GET /admin/appointments/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	appts, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load stats", "error", err)
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}

	today := h.now().Format("2006-01-02")
	stats := StatsResponse{Total: len(appts)}
	for _, a := range appts {
		if a.Date == today {
			stats.Today++
		}
		if a.Status == StatusPending {
			stats.Pending++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// ExportCSV handles GET /admin/appointments/export, streaming the 9-column
// projection as a dated attachment. The form token is verified before any
// data is read.
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if h.tokens != nil && !h.tokens.Verify(r.URL.Query().Get("form_token"), ActionExport) {
		http.Error(w, "Security check failed", http.StatusForbidden)
		return
	}

	appts, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to export appointments", "error", err)
		http.Error(w, "failed to export appointments", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("appointments-%s.csv", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := WriteCSV(w, appts); err != nil {
		h.logger.Error("failed to write csv", "error", err)
		return
	}
	h.metrics.ObserveExport()
	h.logger.Info("appointments exported", "count", len(appts))
}
