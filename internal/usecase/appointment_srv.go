package usecase

import (
	"context"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/locale"
	"rising-bms/pkg/utils"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type AppointmentService interface {
	Create(ctx context.Context, req *request.AppointmentRequest, lang string) (*response.AppointmentResponse, error)
	GetByID(ctx context.Context, id, lang string) (*response.AppointmentResponse, error)
	List(ctx context.Context, req *request.AppointmentListRequest, lang string) (*response.PaginatedResponse[response.AppointmentResponse], error)
	Update(ctx context.Context, id string, req *request.AppointmentUpdateRequest, lang string) (*response.AppointmentResponse, error)
	Cancel(ctx context.Context, id string, req *request.AppointmentCancelRequest, lang string) (*response.AppointmentResponse, error)
	Complete(ctx context.Context, id, lang string) (*response.AppointmentResponse, error)
	Today(ctx context.Context, lang string) ([]response.AppointmentResponse, error)
	Upcoming(ctx context.Context, days int, lang string) ([]response.AppointmentResponse, error)
	Stats(ctx context.Context) (*response.AppointmentStatsResponse, error)
	// ExportXLSX renders the appointment list as a spreadsheet.
	ExportXLSX(ctx context.Context, req *request.AppointmentListRequest, lang string) ([]byte, error)
}

type appointmentService struct {
	repo         *repository.Repository
	notification NotificationService
	automation   AutomationService
	log          *zap.Logger
}

func NewAppointmentService(repo *repository.Repository, notification NotificationService, automation AutomationService, log *zap.Logger) AppointmentService {
	return &appointmentService{
		repo:         repo,
		notification: notification,
		automation:   automation,
		log:          log,
	}
}

func (s *appointmentService) Create(ctx context.Context, req *request.AppointmentRequest, lang string) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
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
	appointment := &entity.Appointment{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:      customerID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          entity.AppointmentStatusGeplant,
	}

	if appointment.ProjectID, err = s.resolveProject(ctx, req.ProjectID, customerID); err != nil {
		return nil, err
	}
	if appointment.ServiceID, err = s.resolveService(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	if err := s.repo.Appointment.Create(ctx, appointment); err != nil {
		s.log.Error("Failed to create appointment", zap.Error(err), zap.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to create appointment")
	}

	s.log.Info("Appointment created",
		zap.String("appointment_id", appointment.ID.String()),
		zap.Time("scheduled_at", appointment.ScheduledAt))

	resp := response.AppointmentToResponse(appointment, lang)
	return &resp, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id, lang string) (*response.AppointmentResponse, error) {
	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.AppointmentToResponse(appointment, lang)
	return &resp, nil
}

func (s *appointmentService) List(ctx context.Context, req *request.AppointmentListRequest, lang string) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := buildAppointmentFilter(req)
	if err != nil {
		return nil, err
	}

	appointments, err := s.repo.Appointment.FindAll(ctx, *filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("failed to load appointments")
	}

	total, err := s.repo.Appointment.CountAll(ctx, *filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments")
	}

	return response.NewPaginatedResponse(
		response.AppointmentsToResponse(appointments, lang),
		req.PageOrDefault(), req.Limit(), total,
	), nil
}

func (s *appointmentService) Update(ctx context.Context, id string, req *request.AppointmentUpdateRequest, lang string) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == entity.AppointmentStatusStorniert {
		return nil, fmt.Errorf("appointment is cancelled")
	}

	if req.Title != nil {
		appointment.Title = *req.Title
	}
	if req.Description != nil {
		appointment.Description = req.Description
	}
	if req.Location != nil {
		appointment.Location = req.Location
	}
	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := parseScheduledAt(*req.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled time")
		}
		appointment.ScheduledAt = scheduledAt
	}
	if req.ProjectID != nil {
		if appointment.ProjectID, err = s.resolveProject(ctx, req.ProjectID, appointment.CustomerID); err != nil {
			return nil, err
		}
	}
	if req.ServiceID != nil {
		if appointment.ServiceID, err = s.resolveService(ctx, req.ServiceID); err != nil {
			return nil, err
		}
	}
	appointment.UpdatedAt = time.Now()

	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Error("Failed to update appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, fmt.Errorf("failed to update appointment")
	}

	resp := response.AppointmentToResponse(appointment, lang)
	return &resp, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string, req *request.AppointmentCancelRequest, lang string) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == entity.AppointmentStatusStorniert {
		return nil, fmt.Errorf("appointment is already cancelled")
	}
	if appointment.Status == entity.AppointmentStatusAbgeschlossen {
		return nil, fmt.Errorf("appointment is already completed")
	}

	appointment.Status = entity.AppointmentStatusStorniert
	appointment.CancelReason = &req.Reason
	appointment.UpdatedAt = time.Now()

	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Error("Failed to cancel appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, fmt.Errorf("failed to cancel appointment")
	}

	refType := "appointment"
	s.notification.NotifyAdmins(ctx, entity.NotificationAppointment,
		"Termin storniert",
		fmt.Sprintf("Termin %q am %s wurde storniert: %s",
			appointment.Title, locale.FormatDateTime(appointment.ScheduledAt), req.Reason),
		&refType, &appointment.ID)

	s.log.Info("Appointment cancelled", zap.String("appointment_id", id))

	s.automation.FireEvent(ctx, "appointment.cancelled", map[string]any{
		"id":     appointment.ID.String(),
		"title":  appointment.Title,
		"reason": req.Reason,
	})

	resp := response.AppointmentToResponse(appointment, lang)
	return &resp, nil
}

func (s *appointmentService) Complete(ctx context.Context, id, lang string) (*response.AppointmentResponse, error) {
	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == entity.AppointmentStatusStorniert {
		return nil, fmt.Errorf("appointment is cancelled")
	}

	appointment.Status = entity.AppointmentStatusAbgeschlossen
	appointment.UpdatedAt = time.Now()

	if err := s.repo.Appointment.Update(ctx, appointment); err != nil {
		s.log.Error("Failed to complete appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, fmt.Errorf("failed to complete appointment")
	}

	resp := response.AppointmentToResponse(appointment, lang)
	return &resp, nil
}

func (s *appointmentService) Today(ctx context.Context, lang string) ([]response.AppointmentResponse, error) {
	appointments, err := s.repo.Appointment.FindToday(ctx)
	if err != nil {
		s.log.Error("Failed to load today's appointments", zap.Error(err))
		return nil, fmt.Errorf("failed to load appointments")
	}

	return response.AppointmentsToResponse(appointments, lang), nil
}

func (s *appointmentService) Upcoming(ctx context.Context, days int, lang string) ([]response.AppointmentResponse, error) {
	if days < 1 || days > 90 {
		days = 7
	}

	appointments, err := s.repo.Appointment.FindUpcoming(ctx, days, 100)
	if err != nil {
		s.log.Error("Failed to load upcoming appointments", zap.Error(err))
		return nil, fmt.Errorf("failed to load appointments")
	}

	return response.AppointmentsToResponse(appointments, lang), nil
}

func (s *appointmentService) Stats(ctx context.Context) (*response.AppointmentStatsResponse, error) {
	stats, err := s.repo.Appointment.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load appointment stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load appointment stats")
	}

	return &response.AppointmentStatsResponse{
		Total:              stats.Total,
		Today:              stats.Today,
		Upcoming7Days:      stats.Upcoming7Days,
		CompletedThisMonth: stats.CompletedThisMonth,
		Cancelled:          stats.Cancelled,
	}, nil
}

func (s *appointmentService) ExportXLSX(ctx context.Context, req *request.AppointmentListRequest, lang string) ([]byte, error) {
	filter, err := buildAppointmentFilter(req)
	if err != nil {
		return nil, err
	}

	// Export is unpaginated but capped to keep memory bounded
	appointments, err := s.repo.Appointment.FindAll(ctx, *filter, 10000, 0)
	if err != nil {
		s.log.Error("Failed to load appointments for export", zap.Error(err))
		return nil, fmt.Errorf("failed to export appointments")
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Termine"
	if lang == locale.LangEN {
		sheet = "Appointments"
	}
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create export sheet: %w", err)
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	header := []string{"Titel", "Datum", "Dauer (Min.)", "Status", "Ort"}
	if lang == locale.LangEN {
		header = []string{"Title", "Date", "Duration (min.)", "Status", "Location"}
	}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("write export header: %w", err)
		}
	}

	for row, appointment := range appointments {
		values := []any{
			appointment.Title,
			locale.FormatDateTime(appointment.ScheduledAt),
			appointment.DurationMinutes,
			locale.AppointmentStatusLabel(string(appointment.Status), lang),
			deref(appointment.Location),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write export row: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}

	s.log.Info("Appointments exported", zap.Int("count", len(appointments)))
	return buf.Bytes(), nil
}

func (s *appointmentService) findAppointment(ctx context.Context, id string) (*entity.Appointment, error) {
	appointmentID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID")
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, appointmentID)
	if err != nil {
		s.log.Error("Failed to find appointment", zap.Error(err), zap.String("appointment_id", id))
		return nil, fmt.Errorf("failed to load appointment")
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment not found")
	}

	return appointment, nil
}

func (s *appointmentService) resolveProject(ctx context.Context, projectID *string, customerID uuid.UUID) (*uuid.UUID, error) {
	if projectID == nil || *projectID == "" {
		return nil, nil
	}

	id, err := utils.ParseUUID(*projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID")
	}

	project, err := s.repo.Project.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project")
	}
	if project == nil {
		return nil, fmt.Errorf("project not found")
	}
	if project.CustomerID != customerID {
		return nil, fmt.Errorf("project belongs to another customer")
	}

	return &id, nil
}

func (s *appointmentService) resolveService(ctx context.Context, serviceID *string) (*uuid.UUID, error) {
	if serviceID == nil || *serviceID == "" {
		return nil, nil
	}

	id, err := utils.ParseUUID(*serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID")
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load service")
	}
	if service == nil {
		return nil, fmt.Errorf("service not found")
	}

	return &id, nil
}

func buildAppointmentFilter(req *request.AppointmentListRequest) (*repository.AppointmentFilter, error) {
	var filter repository.AppointmentFilter

	if req.CustomerID != "" {
		customerID, err := utils.ParseUUID(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer ID")
		}
		filter.CustomerID = &customerID
	}
	if req.ProjectID != "" {
		projectID, err := utils.ParseUUID(req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("invalid project ID")
		}
		filter.ProjectID = &projectID
	}
	if req.Status != "" {
		status := entity.AppointmentStatus(req.Status)
		filter.Status = &status
	}
	filter.Upcoming = req.Upcoming

	return &filter, nil
}

// parseScheduledAt accepts RFC 3339 and the common short form without
// zone, which is interpreted as local time.
func parseScheduledAt(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", value, time.Local)
}
