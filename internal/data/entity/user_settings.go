package entity

import "github.com/google/uuid"

type UserSettings struct {
	BaseNoDelete
	UserID               uuid.UUID `db:"user_id"`
	Language             string    `db:"language"` // "de" or "en"
	Timezone             string    `db:"timezone"`
	NotificationsEnabled bool      `db:"notifications_enabled"`
	EmailDigest          bool      `db:"email_digest"`
}
