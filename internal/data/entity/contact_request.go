package entity

import "github.com/google/uuid"

type RequestStatus string

const (
	RequestStatusNeu           RequestStatus = "neu"
	RequestStatusZugewiesen    RequestStatus = "zugewiesen"
	RequestStatusInBearbeitung RequestStatus = "in_bearbeitung"
	RequestStatusAbgeschlossen RequestStatus = "abgeschlossen"
	RequestStatusStorniert     RequestStatus = "storniert"
)

type RequestPriority string

const (
	PriorityNiedrig  RequestPriority = "niedrig"
	PriorityNormal   RequestPriority = "normal"
	PriorityHoch     RequestPriority = "hoch"
	PriorityDringend RequestPriority = "dringend"
)

type ContactRequest struct {
	Base
	RequestNumber string          `db:"request_number"`
	CustomerID    *uuid.UUID      `db:"customer_id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	Phone         *string         `db:"phone"`
	Subject       string          `db:"subject"`
	Message       string          `db:"message"`
	Category      *string         `db:"category"`
	Priority      RequestPriority `db:"priority"`
	Status        RequestStatus   `db:"status"`
	AssignedTo    *uuid.UUID      `db:"assigned_to"`
	AppointmentID *uuid.UUID      `db:"appointment_id"`
}

type RequestNoteType string

const (
	RequestNoteGeneral      RequestNoteType = "general"
	RequestNoteAssignment   RequestNoteType = "assignment"
	RequestNoteStatusChange RequestNoteType = "status_change"
)

type RequestNote struct {
	BaseSimple
	RequestID uuid.UUID       `db:"request_id"`
	AuthorID  uuid.UUID       `db:"author_id"`
	Content   string          `db:"content"`
	NoteType  RequestNoteType `db:"note_type"`
}
