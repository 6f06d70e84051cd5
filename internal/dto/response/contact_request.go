package response

import (
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/locale"
)

type ContactRequestResponse struct {
	ID            string  `json:"id"`
	RequestNumber string  `json:"request_number"`
	CustomerID    *string `json:"customer_id,omitempty"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Subject       string  `json:"subject"`
	Message       string  `json:"message"`
	Category      *string `json:"category,omitempty"`
	Priority      string  `json:"priority"`
	PriorityLabel string  `json:"priority_label"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	AppointmentID *string `json:"appointment_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type RequestNoteResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	NoteType  string    `json:"note_type"`
	CreatedAt time.Time `json:"created_at"`
}

type RequestStatsResponse struct {
	Total              int64   `json:"total"`
	Neu                int64   `json:"neu"`
	InBearbeitung      int64   `json:"in_bearbeitung"`
	CompletedThisMonth int64   `json:"completed_this_month"`
	CompletionRate     float64 `json:"completion_rate"`
}

// Helper converters
func ContactRequestToResponse(request *entity.ContactRequest, lang string) ContactRequestResponse {
	resp := ContactRequestResponse{
		ID:            request.ID.String(),
		RequestNumber: request.RequestNumber,
		Name:          request.Name,
		Email:         request.Email,
		Phone:         request.Phone,
		Subject:       request.Subject,
		Message:       request.Message,
		Category:      request.Category,
		Priority:      string(request.Priority),
		PriorityLabel: locale.PriorityLabel(string(request.Priority), lang),
		Status:        string(request.Status),
		StatusLabel:   locale.RequestStatusLabel(string(request.Status), lang),
		CreatedAt:     locale.FormatDateTime(request.CreatedAt),
	}

	if request.CustomerID != nil {
		customerID := request.CustomerID.String()
		resp.CustomerID = &customerID
	}
	if request.AssignedTo != nil {
		assignedTo := request.AssignedTo.String()
		resp.AssignedTo = &assignedTo
	}
	if request.AppointmentID != nil {
		appointmentID := request.AppointmentID.String()
		resp.AppointmentID = &appointmentID
	}

	return resp
}

func ContactRequestsToResponse(requests []*entity.ContactRequest, lang string) []ContactRequestResponse {
	responses := make([]ContactRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, ContactRequestToResponse(request, lang))
	}
	return responses
}

func RequestNoteToResponse(note *entity.RequestNote) RequestNoteResponse {
	return RequestNoteResponse{
		ID:        note.ID.String(),
		AuthorID:  note.AuthorID.String(),
		Content:   note.Content,
		NoteType:  string(note.NoteType),
		CreatedAt: note.CreatedAt,
	}
}
