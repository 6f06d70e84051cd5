package repository

import (
	"context"
	"fmt"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	CustomerID *uuid.UUID
	ProjectID  *uuid.UUID
	Status     *entity.AppointmentStatus
	Upcoming   bool // scheduled_at in the future only
}

// AppointmentStats feeds the dashboard.
type AppointmentStats struct {
	Total              int64
	Today              int64
	Upcoming7Days      int64
	CompletedThisMonth int64
	Cancelled          int64
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter AppointmentFilter, limit, offset int) ([]*entity.Appointment, error)
	CountAll(ctx context.Context, filter AppointmentFilter) (int64, error)
	FindToday(ctx context.Context) ([]*entity.Appointment, error)
	FindUpcoming(ctx context.Context, days, limit int) ([]*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Stats(ctx context.Context) (*AppointmentStats, error)
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const appointmentColumns = `id, customer_id, project_id, service_id, title,
	       description, location, scheduled_at, duration_minutes, status,
	       cancel_reason, created_at, updated_at, deleted_at`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.ProjectID,
		&a.ServiceID,
		&a.Title,
		&a.Description,
		&a.Location,
		&a.ScheduledAt,
		&a.DurationMinutes,
		&a.Status,
		&a.CancelReason,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, customer_id, project_id, service_id,
		                         title, description, location, scheduled_at,
		                         duration_minutes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		appointment.ID,
		appointment.CustomerID,
		appointment.ProjectID,
		appointment.ServiceID,
		appointment.Title,
		appointment.Description,
		appointment.Location,
		appointment.ScheduledAt,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("customer_id", appointment.CustomerID.String()),
		)
		return fmt.Errorf("create appointment %s: %w", appointment.Title, err)
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 AND deleted_at IS NULL`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return appointment, nil
}

func buildAppointmentWhere(filter AppointmentFilter, args []any) (string, []any) {
	where := ` WHERE deleted_at IS NULL`

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		where += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Upcoming {
		where += " AND scheduled_at > NOW()"
	}

	return where, args
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter AppointmentFilter, limit, offset int) ([]*entity.Appointment, error) {
	where, args := buildAppointmentWhere(filter, nil)

	query := `SELECT ` + appointmentColumns + ` FROM appointments` + where
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY scheduled_at ASC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("find all appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*entity.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *appointmentRepository) CountAll(ctx context.Context, filter AppointmentFilter) (int64, error) {
	where, args := buildAppointmentWhere(filter, nil)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting appointments", zap.Error(err))
		return 0, fmt.Errorf("count appointments: %w", err)
	}

	return count, nil
}

func (r *appointmentRepository) FindToday(ctx context.Context) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE deleted_at IS NULL
		  AND scheduled_at::date = NOW()::date
		  AND status IN ('geplant', 'bestaetigt')
		ORDER BY scheduled_at ASC`

	return r.queryAppointments(ctx, query)
}

func (r *appointmentRepository) FindUpcoming(ctx context.Context, days, limit int) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE deleted_at IS NULL
		  AND scheduled_at > NOW()
		  AND scheduled_at < NOW() + ($1 * INTERVAL '1 day')
		  AND status IN ('geplant', 'bestaetigt')
		ORDER BY scheduled_at ASC
		LIMIT $2`

	return r.queryAppointments(ctx, query, days, limit)
}

func (r *appointmentRepository) queryAppointments(ctx context.Context, query string, args ...any) ([]*entity.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query appointments", zap.Error(err))
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*entity.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	query := `
		UPDATE appointments
		SET customer_id = $2, project_id = $3, service_id = $4, title = $5,
		    description = $6, location = $7, scheduled_at = $8,
		    duration_minutes = $9, status = $10, cancel_reason = $11,
		    updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		appointment.ID,
		appointment.CustomerID,
		appointment.ProjectID,
		appointment.ServiceID,
		appointment.Title,
		appointment.Description,
		appointment.Location,
		appointment.ScheduledAt,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.CancelReason,
		appointment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update appointment",
			zap.Error(err),
			zap.String("appointment_id", appointment.ID.String()),
		)
		return fmt.Errorf("update appointment %s: %w", appointment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found or already deleted", appointment.ID.String())
	}

	return nil
}

// Stats aggregates the appointment counters shown on the dashboard.
func (r *appointmentRepository) Stats(ctx context.Context) (*AppointmentStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE scheduled_at::date = NOW()::date
		                          AND status IN ('geplant', 'bestaetigt')),
		       COUNT(*) FILTER (WHERE scheduled_at > NOW()
		                          AND scheduled_at < NOW() + INTERVAL '7 days'
		                          AND status IN ('geplant', 'bestaetigt')),
		       COUNT(*) FILTER (WHERE status = 'abgeschlossen'
		                          AND updated_at >= date_trunc('month', NOW())),
		       COUNT(*) FILTER (WHERE status = 'storniert')
		FROM appointments
		WHERE deleted_at IS NULL
	`

	var stats AppointmentStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Today,
		&stats.Upcoming7Days,
		&stats.CompletedThisMonth,
		&stats.Cancelled,
	)
	if err != nil {
		r.log.Error("Failed to aggregate appointment stats", zap.Error(err))
		return nil, fmt.Errorf("appointment stats: %w", err)
	}

	return &stats, nil
}
