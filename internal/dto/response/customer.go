package response

import (
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/locale"
)

type CustomerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Company     *string `json:"company,omitempty"`
	Address     *string `json:"address,omitempty"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	CreatedAt   string  `json:"created_at"`
}

type CustomerNoteResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerStatsResponse struct {
	Total        int64 `json:"total"`
	Aktiv        int64 `json:"aktiv"`
	Inaktiv      int64 `json:"inaktiv"`
	Interessent  int64 `json:"interessent"`
	NewThisMonth int64 `json:"new_this_month"`
}

// Helper converters
func CustomerToResponse(customer *entity.Customer, lang string) CustomerResponse {
	return CustomerResponse{
		ID:          customer.ID.String(),
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Company:     customer.Company,
		Address:     customer.Address,
		Status:      string(customer.Status),
		StatusLabel: locale.CustomerStatusLabel(string(customer.Status), lang),
		CreatedAt:   locale.FormatDate(customer.CreatedAt),
	}
}

func CustomersToResponse(customers []*entity.Customer, lang string) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, CustomerToResponse(customer, lang))
	}
	return responses
}

func CustomerNoteToResponse(note *entity.CustomerNote) CustomerNoteResponse {
	return CustomerNoteResponse{
		ID:        note.ID.String(),
		AuthorID:  note.AuthorID.String(),
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}
