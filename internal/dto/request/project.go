package request

type ProjectRequest struct {
	CustomerID  string   `json:"customer_id" validate:"required,uuid4"`
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      string   `json:"status" validate:"omitempty,oneof=geplant aktiv pausiert abgeschlossen storniert"`
	StartDate   *string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gt=0"`
}

type ProjectUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=geplant aktiv pausiert abgeschlossen storniert"`
	StartDate   *string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gt=0"`
}

type ProjectListRequest struct {
	PaginatedRequest
	CustomerID string `json:"customer_id" validate:"omitempty,uuid4"`
	Status     string `json:"status" validate:"omitempty,oneof=geplant aktiv pausiert abgeschlossen storniert"`
}
