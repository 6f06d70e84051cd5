package response

import (
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/locale"
)

type AppointmentResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customer_id"`
	ProjectID   *string `json:"project_id,omitempty"`
	ServiceID   *string `json:"service_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	ScheduledAt string  `json:"scheduled_at"`
	// ScheduledAtISO keeps the machine-readable timestamp next to the
	// localized display value.
	ScheduledAtISO  time.Time `json:"scheduled_at_iso"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"status_label"`
	CancelReason    *string   `json:"cancel_reason,omitempty"`
}

type AppointmentStatsResponse struct {
	Total              int64 `json:"total"`
	Today              int64 `json:"today"`
	Upcoming7Days      int64 `json:"upcoming_7_days"`
	CompletedThisMonth int64 `json:"completed_this_month"`
	Cancelled          int64 `json:"cancelled"`
}

// Helper converters
func AppointmentToResponse(appointment *entity.Appointment, lang string) AppointmentResponse {
	resp := AppointmentResponse{
		ID:              appointment.ID.String(),
		CustomerID:      appointment.CustomerID.String(),
		Title:           appointment.Title,
		Description:     appointment.Description,
		Location:        appointment.Location,
		ScheduledAt:     locale.FormatDateTime(appointment.ScheduledAt),
		ScheduledAtISO:  appointment.ScheduledAt,
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		StatusLabel:     locale.AppointmentStatusLabel(string(appointment.Status), lang),
		CancelReason:    appointment.CancelReason,
	}

	if appointment.ProjectID != nil {
		projectID := appointment.ProjectID.String()
		resp.ProjectID = &projectID
	}
	if appointment.ServiceID != nil {
		serviceID := appointment.ServiceID.String()
		resp.ServiceID = &serviceID
	}

	return resp
}

func AppointmentsToResponse(appointments []*entity.Appointment, lang string) []AppointmentResponse {
	responses := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, AppointmentToResponse(appointment, lang))
	}
	return responses
}
