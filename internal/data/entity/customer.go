package entity

import "github.com/google/uuid"

type CustomerStatus string

// Status values are stored in German, matching the business vocabulary
// used across the application.
const (
	CustomerStatusAktiv       CustomerStatus = "aktiv"
	CustomerStatusInaktiv     CustomerStatus = "inaktiv"
	CustomerStatusInteressent CustomerStatus = "interessent"
)

type Customer struct {
	Base
	Name    string         `db:"name"`
	Email   string         `db:"email"`
	Phone   *string        `db:"phone"`
	Company *string        `db:"company"`
	Address *string        `db:"address"`
	Status  CustomerStatus `db:"status"`
}

type CustomerNote struct {
	BaseSimple
	CustomerID uuid.UUID `db:"customer_id"`
	AuthorID   uuid.UUID `db:"author_id"`
	Content    string    `db:"content"`
}
