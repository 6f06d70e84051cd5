package request

type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=1440"`
}

type ServiceUpdateRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=1440"`
	IsActive        *bool    `json:"is_active,omitempty"`
}
