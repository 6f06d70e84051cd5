package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusGeplant       ProjectStatus = "geplant"
	ProjectStatusAktiv         ProjectStatus = "aktiv"
	ProjectStatusPausiert      ProjectStatus = "pausiert"
	ProjectStatusAbgeschlossen ProjectStatus = "abgeschlossen"
	ProjectStatusStorniert     ProjectStatus = "storniert"
)

type Project struct {
	Base
	CustomerID  uuid.UUID     `db:"customer_id"`
	Name        string        `db:"name"`
	Description *string       `db:"description"`
	Status      ProjectStatus `db:"status"`
	StartDate   *time.Time    `db:"start_date"`
	EndDate     *time.Time    `db:"end_date"`
	Budget      *float64      `db:"budget"`
}
