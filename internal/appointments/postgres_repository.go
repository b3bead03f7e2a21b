package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const appointmentColumns = `id, name, service, date, time, phone, email, status, admin_notes, whatsapp_url, whatsapp_message, created_at`

// Create inserts a new row with status pending.
func (r *PostgresRepository) Create(ctx context.Context, b *Booking, now time.Time) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, name, service, date, time, phone, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		b.Name,
		b.Service,
		b.Date,
		b.Time,
		b.Phone,
		b.Email,
		string(StatusPending),
		now,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:        id.String(),
		Name:      b.Name,
		Service:   b.Service,
		Date:      b.Date,
		Time:      b.Time,
		Phone:     b.Phone,
		Email:     b.Email,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}, nil
}

// Update applies the non-nil fields and returns the updated record.
func (r *PostgresRepository) Update(ctx context.Context, id string, fields UpdateFields) (*Appointment, error) {
	if fields.Status != nil && !fields.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	set := make([]string, 0, 10)
	args := make([]any, 0, 11)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Service != nil {
		add("service", *fields.Service)
	}
	if fields.Date != nil {
		add("date", *fields.Date)
	}
	if fields.Time != nil {
		add("time", *fields.Time)
	}
	if fields.Phone != nil {
		add("phone", *fields.Phone)
	}
	if fields.Email != nil {
		add("email", *fields.Email)
	}
	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if fields.AdminNotes != nil {
		add("admin_notes", *fields.AdminNotes)
	}
	if fields.WhatsAppURL != nil {
		add("whatsapp_url", *fields.WhatsAppURL)
	}
	if fields.WhatsAppMessage != nil {
		add("whatsapp_message", *fields.WhatsAppMessage)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE appointments SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args), appointmentColumns)

	return scanAppointment(r.pool.QueryRow(ctx, query, args...))
}

// GetByID fetches a single appointment.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1`, appointmentColumns)
	return scanAppointment(r.pool.QueryRow(ctx, query, id))
}

// List returns every appointment in natural retrieval order. The export view
// imposes no sort of its own.
func (r *PostgresRepository) List(ctx context.Context) ([]*Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments`, appointmentColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: row iteration failed: %w", err)
	}
	return out, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var (
		appt   Appointment
		status string
	)
	if err := row.Scan(
		&appt.ID,
		&appt.Name,
		&appt.Service,
		&appt.Date,
		&appt.Time,
		&appt.Phone,
		&appt.Email,
		&status,
		&appt.AdminNotes,
		&appt.WhatsAppURL,
		&appt.WhatsAppMessage,
		&appt.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: scan failed: %w", err)
	}
	appt.Status = Status(status)
	return &appt, nil
}
