package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateRequestNumber signals a request_number collision so the
// caller can regenerate and retry.
var ErrDuplicateRequestNumber = errors.New("duplicate request number")

// RequestFilter narrows contact request listings.
type RequestFilter struct {
	Status     *entity.RequestStatus
	Priority   *entity.RequestPriority
	AssignedTo *uuid.UUID
	Unassigned bool
}

// RequestStats feeds the dashboard.
type RequestStats struct {
	Total              int64
	Neu                int64
	InBearbeitung      int64
	CompletedThisMonth int64
	Completed          int64
}

// CompletionRate is total completed over total non-cancelled, in percent.
func (s *RequestStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

type ContactRequestRepository interface {
	Create(ctx context.Context, request *entity.ContactRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactRequest, error)
	FindAll(ctx context.Context, filter RequestFilter, limit, offset int) ([]*entity.ContactRequest, error)
	CountAll(ctx context.Context, filter RequestFilter) (int64, error)
	Update(ctx context.Context, request *entity.ContactRequest) error
	Stats(ctx context.Context) (*RequestStats, error)

	AddNote(ctx context.Context, note *entity.RequestNote) error
	FindNotes(ctx context.Context, requestID uuid.UUID) ([]*entity.RequestNote, error)

	// ConvertToAppointment atomically inserts the appointment and closes
	// the request that spawned it.
	ConvertToAppointment(ctx context.Context, request *entity.ContactRequest, appointment *entity.Appointment) error
}

type contactRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewContactRequestRepository(db database.PgxIface, log *zap.Logger) ContactRequestRepository {
	return &contactRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "contact_request")),
	}
}

const requestColumns = `id, request_number, customer_id, name, email, phone,
	       subject, message, category, priority, status, assigned_to,
	       appointment_id, created_at, updated_at, deleted_at`

func scanRequest(row pgx.Row) (*entity.ContactRequest, error) {
	var cr entity.ContactRequest
	err := row.Scan(
		&cr.ID,
		&cr.RequestNumber,
		&cr.CustomerID,
		&cr.Name,
		&cr.Email,
		&cr.Phone,
		&cr.Subject,
		&cr.Message,
		&cr.Category,
		&cr.Priority,
		&cr.Status,
		&cr.AssignedTo,
		&cr.AppointmentID,
		&cr.CreatedAt,
		&cr.UpdatedAt,
		&cr.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *contactRequestRepository) Create(ctx context.Context, request *entity.ContactRequest) error {
	query := `
		INSERT INTO contact_requests (id, request_number, customer_id, name,
		                             email, phone, subject, message, category,
		                             priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		request.ID,
		request.RequestNumber,
		request.CustomerID,
		request.Name,
		request.Email,
		request.Phone,
		request.Subject,
		request.Message,
		request.Category,
		request.Priority,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "request_number") {
		return ErrDuplicateRequestNumber
	}
	if err != nil {
		r.log.Error("Failed to create contact request",
			zap.Error(err),
			zap.String("request_number", request.RequestNumber),
		)
		return fmt.Errorf("create contact request %s: %w", request.RequestNumber, err)
	}

	return nil
}

func (r *contactRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM contact_requests WHERE id = $1 AND deleted_at IS NULL`

	request, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find contact request by ID",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, fmt.Errorf("find contact request by ID %s: %w", id.String(), err)
	}

	return request, nil
}

func buildRequestWhere(filter RequestFilter, args []any) (string, []any) {
	where := ` WHERE deleted_at IS NULL`

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		where += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}
	if filter.Unassigned {
		where += " AND assigned_to IS NULL"
	}

	return where, args
}

func (r *contactRequestRepository) FindAll(ctx context.Context, filter RequestFilter, limit, offset int) ([]*entity.ContactRequest, error) {
	where, args := buildRequestWhere(filter, nil)

	query := `SELECT ` + requestColumns + ` FROM contact_requests` + where
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list contact requests", zap.Error(err))
		return nil, fmt.Errorf("find all contact requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.ContactRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact request row: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact request rows: %w", err)
	}

	return requests, nil
}

func (r *contactRequestRepository) CountAll(ctx context.Context, filter RequestFilter) (int64, error) {
	where, args := buildRequestWhere(filter, nil)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_requests`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting contact requests", zap.Error(err))
		return 0, fmt.Errorf("count contact requests: %w", err)
	}

	return count, nil
}

func (r *contactRequestRepository) Update(ctx context.Context, request *entity.ContactRequest) error {
	query := `
		UPDATE contact_requests
		SET customer_id = $2, name = $3, email = $4, phone = $5,
		    subject = $6, message = $7, category = $8, priority = $9,
		    status = $10, assigned_to = $11, appointment_id = $12,
		    updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		request.ID,
		request.CustomerID,
		request.Name,
		request.Email,
		request.Phone,
		request.Subject,
		request.Message,
		request.Category,
		request.Priority,
		request.Status,
		request.AssignedTo,
		request.AppointmentID,
		request.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update contact request",
			zap.Error(err),
			zap.String("request_id", request.ID.String()),
		)
		return fmt.Errorf("update contact request %s: %w", request.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("contact request %s not found or already deleted", request.ID.String())
	}

	return nil
}

// Stats aggregates the request counters shown on the dashboard.
func (r *contactRequestRepository) Stats(ctx context.Context) (*RequestStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'neu'),
		       COUNT(*) FILTER (WHERE status = 'in_bearbeitung'),
		       COUNT(*) FILTER (WHERE status = 'abgeschlossen'
		                          AND updated_at >= date_trunc('month', NOW())),
		       COUNT(*) FILTER (WHERE status = 'abgeschlossen')
		FROM contact_requests
		WHERE deleted_at IS NULL
	`

	var stats RequestStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Neu,
		&stats.InBearbeitung,
		&stats.CompletedThisMonth,
		&stats.Completed,
	)
	if err != nil {
		r.log.Error("Failed to aggregate request stats", zap.Error(err))
		return nil, fmt.Errorf("request stats: %w", err)
	}

	return &stats, nil
}

func (r *contactRequestRepository) AddNote(ctx context.Context, note *entity.RequestNote) error {
	query := `
		INSERT INTO request_notes (id, request_id, author_id, content,
		                          note_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		note.ID,
		note.RequestID,
		note.AuthorID,
		note.Content,
		note.NoteType,
		note.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to add request note",
			zap.Error(err),
			zap.String("request_id", note.RequestID.String()),
		)
		return fmt.Errorf("add note for request %s: %w", note.RequestID.String(), err)
	}

	return nil
}

func (r *contactRequestRepository) FindNotes(ctx context.Context, requestID uuid.UUID) ([]*entity.RequestNote, error) {
	query := `
		SELECT id, request_id, author_id, content, note_type, created_at
		FROM request_notes
		WHERE request_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		r.log.Error("Failed to list request notes",
			zap.Error(err),
			zap.String("request_id", requestID.String()),
		)
		return nil, fmt.Errorf("find notes for request %s: %w", requestID.String(), err)
	}
	defer rows.Close()

	var notes []*entity.RequestNote
	for rows.Next() {
		var note entity.RequestNote
		err := rows.Scan(&note.ID, &note.RequestID, &note.AuthorID, &note.Content, &note.NoteType, &note.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan request note row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request note rows: %w", err)
	}

	return notes, nil
}

func (r *contactRequestRepository) ConvertToAppointment(ctx context.Context, request *entity.ContactRequest, appointment *entity.Appointment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin convert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO appointments (id, customer_id, project_id, service_id,
		                         title, description, location, scheduled_at,
		                         duration_minutes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, insertQuery,
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
		r.log.Error("Failed to insert converted appointment",
			zap.Error(err),
			zap.String("request_id", request.ID.String()),
		)
		return fmt.Errorf("insert converted appointment: %w", err)
	}

	updateQuery := `
		UPDATE contact_requests
		SET status = $2, appointment_id = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := tx.Exec(ctx, updateQuery,
		request.ID,
		request.Status,
		appointment.ID,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("close converted request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("contact request %s not found", request.ID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit convert transaction: %w", err)
	}

	r.log.Info("Contact request converted to appointment",
		zap.String("request_id", request.ID.String()),
		zap.String("appointment_id", appointment.ID.String()),
	)

	return nil
}
