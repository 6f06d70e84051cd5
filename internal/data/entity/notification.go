package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationNewRequest       NotificationType = "new_request"
	NotificationRequestAssigned  NotificationType = "request_assigned"
	NotificationRequestConverted NotificationType = "request_converted"
	NotificationAppointment      NotificationType = "appointment"
	NotificationSystem           NotificationType = "system"
)

type Notification struct {
	BaseSimple
	UserID        uuid.UUID        `db:"user_id"`
	Type          NotificationType `db:"type"`
	Title         string           `db:"title"`
	Message       string           `db:"message"`
	ReferenceType *string          `db:"reference_type"`
	ReferenceID   *uuid.UUID       `db:"reference_id"`
	IsRead        bool             `db:"is_read"`
	ReadAt        *time.Time       `db:"read_at"`
}
