package response

import (
	"rising-bms/internal/data/entity"
	"rising-bms/pkg/locale"
)

type ProjectResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Budget      *string `json:"budget,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// Helper converters
func ProjectToResponse(project *entity.Project, lang string) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID.String(),
		CustomerID:  project.CustomerID.String(),
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		StatusLabel: locale.ProjectStatusLabel(string(project.Status), lang),
		CreatedAt:   locale.FormatDate(project.CreatedAt),
	}

	if project.StartDate != nil {
		start := locale.FormatDate(*project.StartDate)
		resp.StartDate = &start
	}
	if project.EndDate != nil {
		end := locale.FormatDate(*project.EndDate)
		resp.EndDate = &end
	}
	if project.Budget != nil {
		budget := locale.FormatCurrency(*project.Budget)
		resp.Budget = &budget
	}

	return resp
}

func ProjectsToResponse(projects []*entity.Project, lang string) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, ProjectToResponse(project, lang))
	}
	return responses
}
