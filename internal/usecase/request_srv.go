package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestService handles incoming contact requests and their lifecycle
// from "neu" to "abgeschlossen".
type RequestService interface {
	Create(ctx context.Context, req *request.ContactRequestCreate, lang string) (*response.ContactRequestResponse, error)
	GetByID(ctx context.Context, id, lang string) (*response.ContactRequestResponse, error)
	List(ctx context.Context, req *request.ContactRequestList, lang string) (*response.PaginatedResponse[response.ContactRequestResponse], error)
	Update(ctx context.Context, id string, req *request.ContactRequestUpdate, lang string) (*response.ContactRequestResponse, error)
	Assign(ctx context.Context, id string, actorID uuid.UUID, req *request.ContactRequestAssign, lang string) (*response.ContactRequestResponse, error)
	ChangeStatus(ctx context.Context, id string, actorID uuid.UUID, req *request.ContactRequestStatusChange, lang string) (*response.ContactRequestResponse, error)
	AddNote(ctx context.Context, id string, authorID uuid.UUID, req *request.ContactRequestNote) (*response.RequestNoteResponse, error)
	ListNotes(ctx context.Context, id string) ([]response.RequestNoteResponse, error)
	Convert(ctx context.Context, id string, actorID uuid.UUID, req *request.ContactRequestConvert, lang string) (*response.AppointmentResponse, error)
	Stats(ctx context.Context) (*response.RequestStatsResponse, error)
}

type requestService struct {
	repo         *repository.Repository
	notification NotificationService
	automation   AutomationService
	log          *zap.Logger
}

func NewRequestService(repo *repository.Repository, notification NotificationService, automation AutomationService, log *zap.Logger) RequestService {
	return &requestService{
		repo:         repo,
		notification: notification,
		automation:   automation,
		log:          log,
	}
}

// Create accepts a contact request from the public form. Every new
// request is announced to all active admins.
func (s *requestService) Create(ctx context.Context, req *request.ContactRequestCreate, lang string) (*response.ContactRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	priority := entity.RequestPriority(req.Priority)
	if priority == "" {
		priority = entity.PriorityNormal
	}

	now := time.Now()
	cr := &entity.ContactRequest{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RequestNumber: utils.GenerateRequestNumber(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       req.Subject,
		Message:       req.Message,
		Category:      req.Category,
		Priority:      priority,
		Status:        entity.RequestStatusNeu,
	}

	// Link to an existing customer when the email matches
	customer, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Warn("Failed to match request to customer", zap.Error(err), zap.String("email", req.Email))
	} else if customer != nil {
		cr.CustomerID = &customer.ID
	}

	// A request_number collision is regenerated and retried
	createErr := s.repo.ContactRequest.Create(ctx, cr)
	for attempt := 1; attempt < 3 && errors.Is(createErr, repository.ErrDuplicateRequestNumber); attempt++ {
		cr.RequestNumber = utils.GenerateRequestNumber()
		createErr = s.repo.ContactRequest.Create(ctx, cr)
	}
	if createErr != nil {
		s.log.Error("Failed to create contact request", zap.Error(createErr), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to submit request")
	}

	refType := "contact_request"
	s.notification.NotifyAdmins(ctx, entity.NotificationNewRequest,
		"Neue Anfrage",
		fmt.Sprintf("Neue Anfrage %s von %s: %s", cr.RequestNumber, cr.Name, cr.Subject),
		&refType, &cr.ID)

	s.log.Info("Contact request created",
		zap.String("request_id", cr.ID.String()),
		zap.String("request_number", cr.RequestNumber))

	s.automation.FireEvent(ctx, "request.created", map[string]any{
		"id":             cr.ID.String(),
		"request_number": cr.RequestNumber,
		"subject":        cr.Subject,
		"priority":       string(cr.Priority),
	})

	resp := response.ContactRequestToResponse(cr, lang)
	return &resp, nil
}

func (s *requestService) GetByID(ctx context.Context, id, lang string) (*response.ContactRequestResponse, error) {
	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ContactRequestToResponse(cr, lang)
	return &resp, nil
}

func (s *requestService) List(ctx context.Context, req *request.ContactRequestList, lang string) (*response.PaginatedResponse[response.ContactRequestResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.RequestFilter{Unassigned: req.Unassigned}
	if req.Status != "" {
		status := entity.RequestStatus(req.Status)
		filter.Status = &status
	}
	if req.Priority != "" {
		priority := entity.RequestPriority(req.Priority)
		filter.Priority = &priority
	}
	if req.AssignedTo != "" {
		assignedTo, err := utils.ParseUUID(req.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee ID")
		}
		filter.AssignedTo = &assignedTo
	}

	requests, err := s.repo.ContactRequest.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list contact requests", zap.Error(err))
		return nil, fmt.Errorf("failed to load requests")
	}

	total, err := s.repo.ContactRequest.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load requests")
	}

	return response.NewPaginatedResponse(
		response.ContactRequestsToResponse(requests, lang),
		req.PageOrDefault(), req.Limit(), total,
	), nil
}

func (s *requestService) Update(ctx context.Context, id string, req *request.ContactRequestUpdate, lang string) (*response.ContactRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		cr.Subject = *req.Subject
	}
	if req.Message != nil {
		cr.Message = *req.Message
	}
	if req.Category != nil {
		cr.Category = req.Category
	}
	if req.Priority != nil {
		cr.Priority = entity.RequestPriority(*req.Priority)
	}
	if req.Status != nil {
		cr.Status = entity.RequestStatus(*req.Status)
	}
	cr.UpdatedAt = time.Now()

	if err := s.repo.ContactRequest.Update(ctx, cr); err != nil {
		s.log.Error("Failed to update contact request", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to update request")
	}

	resp := response.ContactRequestToResponse(cr, lang)
	return &resp, nil
}

// Assign hands a request to an employee, moves it to "zugewiesen" and
// notifies the assignee.
func (s *requestService) Assign(ctx context.Context, id string, actorID uuid.UUID, req *request.ContactRequestAssign, lang string) (*response.ContactRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.Status == entity.RequestStatusAbgeschlossen || cr.Status == entity.RequestStatusStorniert {
		return nil, fmt.Errorf("request is closed")
	}

	assigneeID, err := utils.ParseUUID(req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("invalid assignee ID")
	}

	assignee, err := s.repo.User.FindByID(ctx, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignee")
	}
	if assignee == nil || !assignee.IsActive {
		return nil, fmt.Errorf("assignee not found")
	}

	cr.AssignedTo = &assigneeID
	if cr.Status == entity.RequestStatusNeu {
		cr.Status = entity.RequestStatusZugewiesen
	}
	cr.UpdatedAt = time.Now()

	if err := s.repo.ContactRequest.Update(ctx, cr); err != nil {
		s.log.Error("Failed to assign contact request", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to assign request")
	}

	content := fmt.Sprintf("Zugewiesen an %s", assignee.Username)
	if req.Note != nil && *req.Note != "" {
		content = fmt.Sprintf("%s: %s", content, *req.Note)
	}
	s.addSystemNote(ctx, cr.ID, actorID, content, entity.RequestNoteAssignment)

	refType := "contact_request"
	s.notification.Notify(ctx, assigneeID, entity.NotificationRequestAssigned,
		"Anfrage zugewiesen",
		fmt.Sprintf("Anfrage %s wurde Ihnen zugewiesen: %s", cr.RequestNumber, cr.Subject),
		&refType, &cr.ID)

	s.log.Info("Contact request assigned",
		zap.String("request_id", id),
		zap.String("assignee_id", assigneeID.String()))

	resp := response.ContactRequestToResponse(cr, lang)
	return &resp, nil
}

func (s *requestService) ChangeStatus(ctx context.Context, id string, actorID uuid.UUID, req *request.ContactRequestStatusChange, lang string) (*response.ContactRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := cr.Status
	newStatus := entity.RequestStatus(req.Status)
	if oldStatus == newStatus {
		resp := response.ContactRequestToResponse(cr, lang)
		return &resp, nil
	}

	cr.Status = newStatus
	cr.UpdatedAt = time.Now()

	if err := s.repo.ContactRequest.Update(ctx, cr); err != nil {
		s.log.Error("Failed to change request status", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to change status")
	}

	content := fmt.Sprintf("Status: %s -> %s", oldStatus, newStatus)
	if req.Note != nil && *req.Note != "" {
		content = fmt.Sprintf("%s: %s", content, *req.Note)
	}
	s.addSystemNote(ctx, cr.ID, actorID, content, entity.RequestNoteStatusChange)

	s.log.Info("Contact request status changed",
		zap.String("request_id", id),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)))

	resp := response.ContactRequestToResponse(cr, lang)
	return &resp, nil
}

func (s *requestService) AddNote(ctx context.Context, id string, authorID uuid.UUID, req *request.ContactRequestNote) (*response.RequestNoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	note := &entity.RequestNote{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		RequestID: cr.ID,
		AuthorID:  authorID,
		Content:   req.Content,
		NoteType:  entity.RequestNoteGeneral,
	}

	if err := s.repo.ContactRequest.AddNote(ctx, note); err != nil {
		s.log.Error("Failed to add request note", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to add note")
	}

	resp := response.RequestNoteToResponse(note)
	return &resp, nil
}

func (s *requestService) ListNotes(ctx context.Context, id string) ([]response.RequestNoteResponse, error) {
	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.repo.ContactRequest.FindNotes(ctx, cr.ID)
	if err != nil {
		s.log.Error("Failed to list request notes", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to load notes")
	}

	responses := make([]response.RequestNoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, response.RequestNoteToResponse(note))
	}

	return responses, nil
}

// Convert closes a request by turning it into a scheduled appointment.
// Appointment insert and request update happen in one transaction.
func (s *requestService) Convert(ctx context.Context, id string, actorID uuid.UUID, req *request.ContactRequestConvert, lang string) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	cr, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.AppointmentID != nil {
		return nil, fmt.Errorf("request already converted")
	}
	if cr.Status == entity.RequestStatusStorniert {
		return nil, fmt.Errorf("request is cancelled")
	}

	customerID, err := utils.ParseUUID(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID")
	}
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer")
	}
	if customer == nil {
		return nil, fmt.Errorf("customer not found")
	}

	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled time")
	}
	if scheduledAt.Before(time.Now()) {
		return nil, fmt.Errorf("scheduled time is in the past")
	}

	now := time.Now()
	description := fmt.Sprintf("Aus Anfrage %s: %s", cr.RequestNumber, cr.Message)
	appointment := &entity.Appointment{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:      customerID,
		Title:           req.Title,
		Description:     &description,
		Location:        req.Location,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          entity.AppointmentStatusGeplant,
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		projectID, err := utils.ParseUUID(*req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("invalid project ID")
		}
		appointment.ProjectID = &projectID
	}
	if req.ServiceID != nil && *req.ServiceID != "" {
		serviceID, err := utils.ParseUUID(*req.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("invalid service ID")
		}
		appointment.ServiceID = &serviceID
	}

	cr.Status = entity.RequestStatusAbgeschlossen
	cr.CustomerID = &customerID
	cr.UpdatedAt = now

	if err := s.repo.ContactRequest.ConvertToAppointment(ctx, cr, appointment); err != nil {
		s.log.Error("Failed to convert contact request", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to convert request")
	}

	s.addSystemNote(ctx, cr.ID, actorID,
		fmt.Sprintf("In Termin umgewandelt (%s)", appointment.ID.String()),
		entity.RequestNoteStatusChange)

	refType := "appointment"
	if cr.AssignedTo != nil && *cr.AssignedTo != actorID {
		s.notification.Notify(ctx, *cr.AssignedTo, entity.NotificationRequestConverted,
			"Anfrage umgewandelt",
			fmt.Sprintf("Anfrage %s wurde in einen Termin umgewandelt", cr.RequestNumber),
			&refType, &appointment.ID)
	}

	s.log.Info("Contact request converted",
		zap.String("request_id", id),
		zap.String("appointment_id", appointment.ID.String()))

	resp := response.AppointmentToResponse(appointment, lang)
	return &resp, nil
}

func (s *requestService) Stats(ctx context.Context) (*response.RequestStatsResponse, error) {
	stats, err := s.repo.ContactRequest.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load request stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load request stats")
	}

	return &response.RequestStatsResponse{
		Total:              stats.Total,
		Neu:                stats.Neu,
		InBearbeitung:      stats.InBearbeitung,
		CompletedThisMonth: stats.CompletedThisMonth,
		CompletionRate:     stats.CompletionRate(),
	}, nil
}

func (s *requestService) findRequest(ctx context.Context, id string) (*entity.ContactRequest, error) {
	requestID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request ID")
	}

	cr, err := s.repo.ContactRequest.FindByID(ctx, requestID)
	if err != nil {
		s.log.Error("Failed to find contact request", zap.Error(err), zap.String("request_id", id))
		return nil, fmt.Errorf("failed to load request")
	}
	if cr == nil {
		return nil, fmt.Errorf("request not found")
	}

	return cr, nil
}

func (s *requestService) addSystemNote(ctx context.Context, requestID, authorID uuid.UUID, content string, noteType entity.RequestNoteType) {
	note := &entity.RequestNote{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		RequestID: requestID,
		AuthorID:  authorID,
		Content:   content,
		NoteType:  noteType,
	}

	if err := s.repo.ContactRequest.AddNote(ctx, note); err != nil {
		s.log.Warn("Failed to record system note",
			zap.Error(err),
			zap.String("request_id", requestID.String()),
		)
	}
}
