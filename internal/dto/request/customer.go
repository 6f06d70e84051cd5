package request

type CustomerRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Status  string  `json:"status" validate:"omitempty,oneof=aktiv inaktiv interessent"`
}

type CustomerUpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=aktiv inaktiv interessent"`
}

type CustomerNoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CustomerListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=aktiv inaktiv interessent"`
	Search string `json:"search" validate:"omitempty,max=200"`
}
