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

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Service, error)
	CountAll(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, name, description, category, price,
	       duration_minutes, is_active, created_at, updated_at, deleted_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Category,
		&s.Price,
		&s.DurationMinutes,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, name, description, category, price,
		                     duration_minutes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.Name,
		service.Description,
		service.Category,
		service.Price,
		service.DurationMinutes,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("name", service.Name),
		)
		return fmt.Errorf("create service %s: %w", service.Name, err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return service, nil
}

func (r *serviceRepository) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("find all services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM services WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting services", zap.Error(err))
		return 0, fmt.Errorf("count services: %w", err)
	}

	return count, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, category = $4, price = $5,
		    duration_minutes = $6, is_active = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Name,
		service.Description,
		service.Category,
		service.Price,
		service.DurationMinutes,
		service.IsActive,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found or already deleted", service.ID.String())
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE services SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete service",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete service %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", id.String())
	}

	return nil
}
