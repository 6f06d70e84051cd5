package repository

import (
	"context"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduledTaskRepository interface {
	Create(ctx context.Context, task *entity.ScheduledTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduledTask, error)
	FindAll(ctx context.Context) ([]*entity.ScheduledTask, error)
	FindActive(ctx context.Context) ([]*entity.ScheduledTask, error)
	Update(ctx context.Context, task *entity.ScheduledTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	TouchLastRun(ctx context.Context, id uuid.UUID, at time.Time) error
}

type scheduledTaskRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduledTaskRepository(db database.PgxIface, log *zap.Logger) ScheduledTaskRepository {
	return &scheduledTaskRepository{
		db:  db,
		log: log.With(zap.String("repository", "scheduled_task")),
	}
}

const scheduledTaskColumns = `id, name, cron_expr, webhook_id, payload,
	       is_active, last_run_at, created_at, updated_at, deleted_at`

func scanScheduledTask(row pgx.Row) (*entity.ScheduledTask, error) {
	var t entity.ScheduledTask
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.CronExpr,
		&t.WebhookID,
		&t.Payload,
		&t.IsActive,
		&t.LastRunAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *scheduledTaskRepository) Create(ctx context.Context, task *entity.ScheduledTask) error {
	query := `
		INSERT INTO scheduled_tasks (id, name, cron_expr, webhook_id, payload,
		                            is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		task.ID,
		task.Name,
		task.CronExpr,
		task.WebhookID,
		task.Payload,
		task.IsActive,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create scheduled task",
			zap.Error(err),
			zap.String("name", task.Name),
		)
		return fmt.Errorf("create scheduled task %s: %w", task.Name, err)
	}

	return nil
}

func (r *scheduledTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduledTask, error) {
	query := `SELECT ` + scheduledTaskColumns + ` FROM scheduled_tasks WHERE id = $1 AND deleted_at IS NULL`

	task, err := scanScheduledTask(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find scheduled task by ID",
			zap.Error(err),
			zap.String("task_id", id.String()),
		)
		return nil, fmt.Errorf("find scheduled task by ID %s: %w", id.String(), err)
	}

	return task, nil
}

func (r *scheduledTaskRepository) findMany(ctx context.Context, query string) ([]*entity.ScheduledTask, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*entity.ScheduledTask
	for rows.Next() {
		task, err := scanScheduledTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *scheduledTaskRepository) FindAll(ctx context.Context) ([]*entity.ScheduledTask, error) {
	query := `SELECT ` + scheduledTaskColumns + ` FROM scheduled_tasks
		WHERE deleted_at IS NULL ORDER BY name ASC`

	tasks, err := r.findMany(ctx, query)
	if err != nil {
		r.log.Error("Failed to list scheduled tasks", zap.Error(err))
		return nil, fmt.Errorf("find all scheduled tasks: %w", err)
	}

	return tasks, nil
}

func (r *scheduledTaskRepository) FindActive(ctx context.Context) ([]*entity.ScheduledTask, error) {
	query := `SELECT ` + scheduledTaskColumns + ` FROM scheduled_tasks
		WHERE deleted_at IS NULL AND is_active = TRUE ORDER BY name ASC`

	tasks, err := r.findMany(ctx, query)
	if err != nil {
		r.log.Error("Failed to list active scheduled tasks", zap.Error(err))
		return nil, fmt.Errorf("find active scheduled tasks: %w", err)
	}

	return tasks, nil
}

func (r *scheduledTaskRepository) Update(ctx context.Context, task *entity.ScheduledTask) error {
	query := `
		UPDATE scheduled_tasks
		SET name = $2, cron_expr = $3, webhook_id = $4, payload = $5,
		    is_active = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		task.ID,
		task.Name,
		task.CronExpr,
		task.WebhookID,
		task.Payload,
		task.IsActive,
		task.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update scheduled task",
			zap.Error(err),
			zap.String("task_id", task.ID.String()),
		)
		return fmt.Errorf("update scheduled task %s: %w", task.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("scheduled task %s not found or already deleted", task.ID.String())
	}

	return nil
}

func (r *scheduledTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE scheduled_tasks SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete scheduled task",
			zap.Error(err),
			zap.String("task_id", id.String()),
		)
		return fmt.Errorf("delete scheduled task %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("scheduled task %s not found or already deleted", id.String())
	}

	return nil
}

func (r *scheduledTaskRepository) TouchLastRun(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE scheduled_tasks SET last_run_at = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, at); err != nil {
		r.log.Error("Failed to update last run time",
			zap.Error(err),
			zap.String("task_id", id.String()),
		)
		return fmt.Errorf("touch last run for task %s: %w", id.String(), err)
	}

	return nil
}
