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

type UserSettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)
	Upsert(ctx context.Context, settings *entity.UserSettings) error
}

type userSettingsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserSettingsRepository(db database.PgxIface, log *zap.Logger) UserSettingsRepository {
	return &userSettingsRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_settings")),
	}
}

func (r *userSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	query := `
		SELECT id, user_id, language, timezone, notifications_enabled,
		       email_digest, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s entity.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.Language,
		&s.Timezone,
		&s.NotificationsEnabled,
		&s.EmailDigest,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user settings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find settings for user %s: %w", userID.String(), err)
	}

	return &s, nil
}

// Upsert inserts settings on first save and updates them afterwards.
func (r *userSettingsRepository) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	query := `
		INSERT INTO user_settings (id, user_id, language, timezone,
		                          notifications_enabled, email_digest,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET language = EXCLUDED.language,
		    timezone = EXCLUDED.timezone,
		    notifications_enabled = EXCLUDED.notifications_enabled,
		    email_digest = EXCLUDED.email_digest,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		settings.ID,
		settings.UserID,
		settings.Language,
		settings.Timezone,
		settings.NotificationsEnabled,
		settings.EmailDigest,
		settings.CreatedAt,
		settings.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert user settings",
			zap.Error(err),
			zap.String("user_id", settings.UserID.String()),
		)
		return fmt.Errorf("upsert settings for user %s: %w", settings.UserID.String(), err)
	}

	return nil
}
