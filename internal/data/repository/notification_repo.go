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

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

const notificationColumns = `id, user_id, type, title, message,
	       reference_type, reference_id, is_read, read_at, created_at`

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.ReferenceType,
		&n.ReferenceID,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message,
		                          reference_type, reference_id, is_read,
		                          created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.ReferenceType,
		notification.ReferenceID,
		notification.IsRead,
		notification.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("user_id", notification.UserID.String()),
		)
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	notification, err := scanNotification(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find notification by ID",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return nil, fmt.Errorf("find notification by ID %s: %w", id.String(), err)
	}

	return notification, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find notifications for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Database error counting notifications", zap.Error(err))
		return 0, fmt.Errorf("count notifications for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.CountByUser(ctx, userID, true)
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s not found", id.String())
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to mark all notifications read",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("mark all notifications read for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete notification",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("delete notification %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s not found", id.String())
	}

	return nil
}
