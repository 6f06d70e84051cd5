package request

type ContactRequestCreate struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Subject  string  `json:"subject" validate:"required,min=2,max=300"`
	Message  string  `json:"message" validate:"required,min=5,max=5000"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority string  `json:"priority" validate:"omitempty,oneof=niedrig normal hoch dringend"`
}

type ContactRequestUpdate struct {
	Subject  *string `json:"subject,omitempty" validate:"omitempty,min=2,max=300"`
	Message  *string `json:"message,omitempty" validate:"omitempty,min=5,max=5000"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=niedrig normal hoch dringend"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=neu zugewiesen in_bearbeitung abgeschlossen storniert"`
}

type ContactRequestAssign struct {
	AssigneeID string  `json:"assignee_id" validate:"required,uuid4"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

type ContactRequestStatusChange struct {
	Status string  `json:"status" validate:"required,oneof=neu zugewiesen in_bearbeitung abgeschlossen storniert"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

type ContactRequestNote struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// ContactRequestConvert carries the appointment details when a request
// is turned into a scheduled appointment.
type ContactRequestConvert struct {
	CustomerID      string  `json:"customer_id" validate:"required,uuid4"`
	ProjectID       *string `json:"project_id,omitempty" validate:"omitempty,uuid4"`
	ServiceID       *string `json:"service_id,omitempty" validate:"omitempty,uuid4"`
	Title           string  `json:"title" validate:"required,min=2,max=200"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=300"`
	ScheduledAt     string  `json:"scheduled_at" validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=1440"`
}

type ContactRequestList struct {
	PaginatedRequest
	Status     string `json:"status" validate:"omitempty,oneof=neu zugewiesen in_bearbeitung abgeschlossen storniert"`
	Priority   string `json:"priority" validate:"omitempty,oneof=niedrig normal hoch dringend"`
	AssignedTo string `json:"assigned_to" validate:"omitempty,uuid4"`
	Unassigned bool   `json:"unassigned"`
}
