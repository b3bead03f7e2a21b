package appointments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UpdateFields is a partial update applied by the dispatcher (WhatsApp
// metadata) or an admin edit. Nil pointers leave the column untouched.
type UpdateFields struct {
	Name            *string
	Service         *string
	Date            *string
	Time            *string
	Phone           *string
	Email           *string
	Status          *Status
	AdminNotes      *string
	WhatsAppURL     *string
	WhatsAppMessage *string
}

// Repository defines the interface for appointment storage.
type Repository interface {
	Create(ctx context.Context, b *Booking, now time.Time) (*Appointment, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
}

// InMemoryRepository stores appointments in memory, for tests and local
// development without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*Appointment
	order []string
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*Appointment)}
}

// Create stores a new appointment with status pending.
func (r *InMemoryRepository) Create(ctx context.Context, b *Booking, now time.Time) (*Appointment, error) {
	appt := &Appointment{
		ID:        uuid.New().String(),
		Name:      b.Name,
		Service:   b.Service,
		Date:      b.Date,
		Time:      b.Time,
		Phone:     b.Phone,
		Email:     b.Email,
		Status:    StatusPending,
		CreatedAt: now,
	}

	r.mu.Lock()
	r.byID[appt.ID] = appt
	r.order = append(r.order, appt.ID)
	r.mu.Unlock()

	return cloneAppointment(appt), nil
}

// Update applies the non-nil fields and returns the updated record.
// CreatedAt is never touched.
func (r *InMemoryRepository) Update(ctx context.Context, id string, fields UpdateFields) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if fields.Status != nil && !fields.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	applyFields(appt, fields)
	return cloneAppointment(appt), nil
}

// GetByID retrieves an appointment by ID.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneAppointment(appt), nil
}

// List returns all appointments in insertion order.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Appointment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneAppointment(r.byID[id]))
	}
	return out, nil
}

func applyFields(appt *Appointment, fields UpdateFields) {
	if fields.Name != nil {
		appt.Name = *fields.Name
	}
	if fields.Service != nil {
		appt.Service = *fields.Service
	}
	if fields.Date != nil {
		appt.Date = *fields.Date
	}
	if fields.Time != nil {
		appt.Time = *fields.Time
	}
	if fields.Phone != nil {
		appt.Phone = *fields.Phone
	}
	if fields.Email != nil {
		appt.Email = *fields.Email
	}
	if fields.Status != nil {
		appt.Status = *fields.Status
	}
	if fields.AdminNotes != nil {
		appt.AdminNotes = *fields.AdminNotes
	}
	if fields.WhatsAppURL != nil {
		appt.WhatsAppURL = *fields.WhatsAppURL
	}
	if fields.WhatsAppMessage != nil {
		appt.WhatsAppMessage = *fields.WhatsAppMessage
	}
}

func cloneAppointment(a *Appointment) *Appointment {
	c := *a
	return &c
}
