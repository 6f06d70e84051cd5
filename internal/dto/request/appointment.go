package request

type AppointmentRequest struct {
	CustomerID      string  `json:"customer_id" validate:"required,uuid4"`
	ProjectID       *string `json:"project_id,omitempty" validate:"omitempty,uuid4"`
	ServiceID       *string `json:"service_id,omitempty" validate:"omitempty,uuid4"`
	Title           string  `json:"title" validate:"required,min=2,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=300"`
	ScheduledAt     string  `json:"scheduled_at" validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=1440"`
}

type AppointmentUpdateRequest struct {
	ProjectID       *string `json:"project_id,omitempty" validate:"omitempty,uuid4"`
	ServiceID       *string `json:"service_id,omitempty" validate:"omitempty,uuid4"`
	Title           *string `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=300"`
	ScheduledAt     *string `json:"scheduled_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=1440"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=geplant bestaetigt abgeschlossen storniert"`
}

type AppointmentCancelRequest struct {
	Reason string `json:"reason" validate:"required,min=2,max=500"`
}

type AppointmentListRequest struct {
	PaginatedRequest
	CustomerID string `json:"customer_id" validate:"omitempty,uuid4"`
	ProjectID  string `json:"project_id" validate:"omitempty,uuid4"`
	Status     string `json:"status" validate:"omitempty,oneof=geplant bestaetigt abgeschlossen storniert"`
	Upcoming   bool   `json:"upcoming"`
}
