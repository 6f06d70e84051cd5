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

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	CustomerID *uuid.UUID
	Status     *entity.ProjectStatus
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	FindAll(ctx context.Context, filter ProjectFilter, limit, offset int) ([]*entity.Project, error)
	CountAll(ctx context.Context, filter ProjectFilter) (int64, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProjectRepository(db database.PgxIface, log *zap.Logger) ProjectRepository {
	return &projectRepository{
		db:  db,
		log: log.With(zap.String("repository", "project")),
	}
}

const projectColumns = `id, customer_id, name, description, status,
	       start_date, end_date, budget, created_at, updated_at, deleted_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID,
		&p.CustomerID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.Budget,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (id, customer_id, name, description, status,
		                     start_date, end_date, budget, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		project.ID,
		project.CustomerID,
		project.Name,
		project.Description,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create project",
			zap.Error(err),
			zap.String("customer_id", project.CustomerID.String()),
		)
		return fmt.Errorf("create project %s: %w", project.Name, err)
	}

	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND deleted_at IS NULL`

	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find project by ID",
			zap.Error(err),
			zap.String("project_id", id.String()),
		)
		return nil, fmt.Errorf("find project by ID %s: %w", id.String(), err)
	}

	return project, nil
}

func buildProjectWhere(filter ProjectFilter, args []any) (string, []any) {
	where := ` WHERE deleted_at IS NULL`

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	return where, args
}

func (r *projectRepository) FindAll(ctx context.Context, filter ProjectFilter, limit, offset int) ([]*entity.Project, error) {
	where, args := buildProjectWhere(filter, nil)

	query := `SELECT ` + projectColumns + ` FROM projects` + where
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("find all projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) CountAll(ctx context.Context, filter ProjectFilter) (int64, error) {
	where, args := buildProjectWhere(filter, nil)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting projects", zap.Error(err))
		return 0, fmt.Errorf("count projects: %w", err)
	}

	return count, nil
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, start_date = $5,
		    end_date = $6, budget = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update project",
			zap.Error(err),
			zap.String("project_id", project.ID.String()),
		)
		return fmt.Errorf("update project %s: %w", project.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s not found or already deleted", project.ID.String())
	}

	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE projects SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete project",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete project %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s not found", id.String())
	}

	return nil
}
