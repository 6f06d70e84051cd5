package entity

// Service is a catalog entry the business offers (not to be confused
// with the usecase layer).
type Service struct {
	Base
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	Category        *string `db:"category"`
	Price           float64 `db:"price"`
	DurationMinutes int     `db:"duration_minutes"`
	IsActive        bool    `db:"is_active"`
}
