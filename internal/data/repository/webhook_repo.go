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

type WebhookRepository interface {
	Create(ctx context.Context, webhook *entity.Webhook) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Webhook, error)
	FindAll(ctx context.Context) ([]*entity.Webhook, error)
	FindActiveByEvent(ctx context.Context, event string) ([]*entity.Webhook, error)
	Update(ctx context.Context, webhook *entity.Webhook) error
	Delete(ctx context.Context, id uuid.UUID) error

	RecordExecution(ctx context.Context, execution *entity.WebhookExecution) error
	FindExecutions(ctx context.Context, webhookID uuid.UUID, limit int) ([]*entity.WebhookExecution, error)
}

type webhookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWebhookRepository(db database.PgxIface, log *zap.Logger) WebhookRepository {
	return &webhookRepository{
		db:  db,
		log: log.With(zap.String("repository", "webhook")),
	}
}

const webhookColumns = `id, name, url, event, secret, is_active,
	       created_at, updated_at, deleted_at`

func scanWebhook(row pgx.Row) (*entity.Webhook, error) {
	var w entity.Webhook
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.URL,
		&w.Event,
		&w.Secret,
		&w.IsActive,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *webhookRepository) Create(ctx context.Context, webhook *entity.Webhook) error {
	query := `
		INSERT INTO webhooks (id, name, url, event, secret, is_active,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		webhook.ID,
		webhook.Name,
		webhook.URL,
		webhook.Event,
		webhook.Secret,
		webhook.IsActive,
		webhook.CreatedAt,
		webhook.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create webhook",
			zap.Error(err),
			zap.String("name", webhook.Name),
		)
		return fmt.Errorf("create webhook %s: %w", webhook.Name, err)
	}

	return nil
}

func (r *webhookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE id = $1 AND deleted_at IS NULL`

	webhook, err := scanWebhook(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find webhook by ID",
			zap.Error(err),
			zap.String("webhook_id", id.String()),
		)
		return nil, fmt.Errorf("find webhook by ID %s: %w", id.String(), err)
	}

	return webhook, nil
}

func (r *webhookRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Webhook, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var webhooks []*entity.Webhook
	for rows.Next() {
		webhook, err := scanWebhook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook row: %w", err)
		}
		webhooks = append(webhooks, webhook)
	}

	return webhooks, rows.Err()
}

func (r *webhookRepository) FindAll(ctx context.Context) ([]*entity.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE deleted_at IS NULL ORDER BY name ASC`

	webhooks, err := r.findMany(ctx, query)
	if err != nil {
		r.log.Error("Failed to list webhooks", zap.Error(err))
		return nil, fmt.Errorf("find all webhooks: %w", err)
	}

	return webhooks, nil
}

func (r *webhookRepository) FindActiveByEvent(ctx context.Context, event string) ([]*entity.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks
		WHERE deleted_at IS NULL AND is_active = TRUE AND event = $1`

	webhooks, err := r.findMany(ctx, query, event)
	if err != nil {
		r.log.Error("Failed to list webhooks for event",
			zap.Error(err),
			zap.String("event", event),
		)
		return nil, fmt.Errorf("find webhooks for event %s: %w", event, err)
	}

	return webhooks, nil
}

func (r *webhookRepository) Update(ctx context.Context, webhook *entity.Webhook) error {
	query := `
		UPDATE webhooks
		SET name = $2, url = $3, event = $4, secret = $5, is_active = $6,
		    updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		webhook.ID,
		webhook.Name,
		webhook.URL,
		webhook.Event,
		webhook.Secret,
		webhook.IsActive,
		webhook.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update webhook",
			zap.Error(err),
			zap.String("webhook_id", webhook.ID.String()),
		)
		return fmt.Errorf("update webhook %s: %w", webhook.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("webhook %s not found or already deleted", webhook.ID.String())
	}

	return nil
}

func (r *webhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE webhooks SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete webhook",
			zap.Error(err),
			zap.String("webhook_id", id.String()),
		)
		return fmt.Errorf("delete webhook %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("webhook %s not found or already deleted", id.String())
	}

	return nil
}

func (r *webhookRepository) RecordExecution(ctx context.Context, execution *entity.WebhookExecution) error {
	query := `
		INSERT INTO webhook_executions (id, webhook_id, trigger, status_code,
		                               success, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		execution.ID,
		execution.WebhookID,
		execution.Trigger,
		execution.StatusCode,
		execution.Success,
		execution.Error,
		execution.DurationMS,
		execution.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to record webhook execution",
			zap.Error(err),
			zap.String("webhook_id", execution.WebhookID.String()),
		)
		return fmt.Errorf("record execution for webhook %s: %w", execution.WebhookID.String(), err)
	}

	return nil
}

func (r *webhookRepository) FindExecutions(ctx context.Context, webhookID uuid.UUID, limit int) ([]*entity.WebhookExecution, error) {
	query := `
		SELECT id, webhook_id, trigger, status_code, success, error,
		       duration_ms, created_at
		FROM webhook_executions
		WHERE webhook_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, webhookID, limit)
	if err != nil {
		r.log.Error("Failed to list webhook executions",
			zap.Error(err),
			zap.String("webhook_id", webhookID.String()),
		)
		return nil, fmt.Errorf("find executions for webhook %s: %w", webhookID.String(), err)
	}
	defer rows.Close()

	var executions []*entity.WebhookExecution
	for rows.Next() {
		var e entity.WebhookExecution
		err := rows.Scan(&e.ID, &e.WebhookID, &e.Trigger, &e.StatusCode, &e.Success, &e.Error, &e.DurationMS, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan webhook execution row: %w", err)
		}
		executions = append(executions, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook execution rows: %w", err)
	}

	return executions, nil
}
