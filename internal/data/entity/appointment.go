package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusGeplant       AppointmentStatus = "geplant"
	AppointmentStatusBestaetigt    AppointmentStatus = "bestaetigt"
	AppointmentStatusAbgeschlossen AppointmentStatus = "abgeschlossen"
	AppointmentStatusStorniert     AppointmentStatus = "storniert"
)

type Appointment struct {
	Base
	CustomerID      uuid.UUID         `db:"customer_id"`
	ProjectID       *uuid.UUID        `db:"project_id"`
	ServiceID       *uuid.UUID        `db:"service_id"`
	Title           string            `db:"title"`
	Description     *string           `db:"description"`
	Location        *string           `db:"location"`
	ScheduledAt     time.Time         `db:"scheduled_at"`
	DurationMinutes int               `db:"duration_minutes"`
	Status          AppointmentStatus `db:"status"`
	CancelReason    *string           `db:"cancel_reason"`
}
