package response

import (
	"rising-bms/internal/data/entity"
	"rising-bms/pkg/locale"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	Price           float64 `json:"price"`
	PriceFormatted  string  `json:"price_formatted"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

// Helper converters
func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              service.ID.String(),
		Name:            service.Name,
		Description:     service.Description,
		Category:        service.Category,
		Price:           service.Price,
		PriceFormatted:  locale.FormatCurrency(service.Price),
		DurationMinutes: service.DurationMinutes,
		IsActive:        service.IsActive,
	}
}

func ServicesToResponse(services []*entity.Service) []ServiceResponse {
	responses := make([]ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, ServiceToResponse(service))
	}
	return responses
}
