package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/locale"
	"rising-bms/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	Create(ctx context.Context, req *request.CustomerRequest, lang string) (*response.CustomerResponse, error)
	GetByID(ctx context.Context, id, lang string) (*response.CustomerResponse, error)
	List(ctx context.Context, req *request.CustomerListRequest, lang string) (*response.PaginatedResponse[response.CustomerResponse], error)
	Update(ctx context.Context, id string, req *request.CustomerUpdateRequest, lang string) (*response.CustomerResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*response.CustomerStatsResponse, error)
	AddNote(ctx context.Context, customerID string, authorID uuid.UUID, req *request.CustomerNoteRequest) (*response.CustomerNoteResponse, error)
	ListNotes(ctx context.Context, customerID string) ([]response.CustomerNoteResponse, error)
	// ExportCSV renders all customers matching the filter as a CSV file.
	ExportCSV(ctx context.Context, filter request.CustomerListRequest, lang string) ([]byte, error)
}

type customerService struct {
	repo       *repository.Repository
	automation AutomationService
	log        *zap.Logger
}

func NewCustomerService(repo *repository.Repository, automation AutomationService, log *zap.Logger) CustomerService {
	return &customerService{
		repo:       repo,
		automation: automation,
		log:        log,
	}
}

func (s *customerService) Create(ctx context.Context, req *request.CustomerRequest, lang string) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check customer email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	status := entity.CustomerStatus(req.Status)
	if status == "" {
		status = entity.CustomerStatusInteressent
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Address: req.Address,
		Status:  status,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create customer")
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("status", string(customer.Status)))

	s.automation.FireEvent(ctx, "customer.created", map[string]any{
		"id":     customer.ID.String(),
		"name":   customer.Name,
		"email":  customer.Email,
		"status": string(customer.Status),
	})

	resp := response.CustomerToResponse(customer, lang)
	return &resp, nil
}

func (s *customerService) GetByID(ctx context.Context, id, lang string) (*response.CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer, lang)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, req *request.CustomerListRequest, lang string) (*response.PaginatedResponse[response.CustomerResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.CustomerFilter{Search: &req.Search}
	if req.Status != "" {
		status := entity.CustomerStatus(req.Status)
		filter.Status = &status
	}

	customers, err := s.repo.Customer.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("failed to load customers")
	}

	total, err := s.repo.Customer.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers")
	}

	return response.NewPaginatedResponse(
		response.CustomersToResponse(customers, lang),
		req.PageOrDefault(), req.Limit(), total,
	), nil
}

func (s *customerService) Update(ctx context.Context, id string, req *request.CustomerUpdateRequest, lang string) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != customer.Email {
		existing, err := s.repo.Customer.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email")
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, fmt.Errorf("email already registered")
		}
		customer.Email = *req.Email
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Company != nil {
		customer.Company = req.Company
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.Status != nil {
		customer.Status = entity.CustomerStatus(*req.Status)
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", id))
		return nil, fmt.Errorf("failed to update customer")
	}

	resp := response.CustomerToResponse(customer, lang)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Customer.Delete(ctx, customer.ID); err != nil {
		s.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", id))
		return fmt.Errorf("failed to delete customer")
	}

	s.log.Info("Customer deleted", zap.String("customer_id", id))

	s.automation.FireEvent(ctx, "customer.deleted", map[string]any{
		"id":   customer.ID.String(),
		"name": customer.Name,
	})

	return nil
}

func (s *customerService) Stats(ctx context.Context) (*response.CustomerStatsResponse, error) {
	stats, err := s.repo.Customer.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load customer stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load customer stats")
	}

	return &response.CustomerStatsResponse{
		Total:        stats.Total,
		Aktiv:        stats.Aktiv,
		Inaktiv:      stats.Inaktiv,
		Interessent:  stats.Interessent,
		NewThisMonth: stats.NewThisMonth,
	}, nil
}

func (s *customerService) AddNote(ctx context.Context, customerID string, authorID uuid.UUID, req *request.CustomerNoteRequest) (*response.CustomerNoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	note := &entity.CustomerNote{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		CustomerID: customer.ID,
		AuthorID:   authorID,
		Content:    req.Content,
	}

	if err := s.repo.Customer.AddNote(ctx, note); err != nil {
		s.log.Error("Failed to add customer note", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to add note")
	}

	resp := response.CustomerNoteToResponse(note)
	return &resp, nil
}

func (s *customerService) ListNotes(ctx context.Context, customerID string) ([]response.CustomerNoteResponse, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	notes, err := s.repo.Customer.FindNotes(ctx, customer.ID)
	if err != nil {
		s.log.Error("Failed to list customer notes", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to load notes")
	}

	responses := make([]response.CustomerNoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, response.CustomerNoteToResponse(note))
	}

	return responses, nil
}

func (s *customerService) ExportCSV(ctx context.Context, filter request.CustomerListRequest, lang string) ([]byte, error) {
	repoFilter := repository.CustomerFilter{Search: &filter.Search}
	if filter.Status != "" {
		status := entity.CustomerStatus(filter.Status)
		repoFilter.Status = &status
	}

	// Export is unpaginated but capped to keep memory bounded
	customers, err := s.repo.Customer.FindAll(ctx, repoFilter, 10000, 0)
	if err != nil {
		s.log.Error("Failed to load customers for export", zap.Error(err))
		return nil, fmt.Errorf("failed to export customers")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = ';' // German Excel expects semicolons

	header := []string{"Name", "E-Mail", "Telefon", "Firma", "Adresse", "Status", "Erstellt"}
	if lang == locale.LangEN {
		header = []string{"Name", "Email", "Phone", "Company", "Address", "Status", "Created"}
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}

	for _, customer := range customers {
		record := []string{
			customer.Name,
			customer.Email,
			deref(customer.Phone),
			deref(customer.Company),
			deref(customer.Address),
			locale.CustomerStatusLabel(string(customer.Status), lang),
			locale.FormatDate(customer.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}

	s.log.Info("Customers exported", zap.Int("count", len(customers)))
	return buf.Bytes(), nil
}

func (s *customerService) findCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customerID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID")
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		s.log.Error("Failed to find customer", zap.Error(err), zap.String("customer_id", id))
		return nil, fmt.Errorf("failed to load customer")
	}
	if customer == nil {
		return nil, fmt.Errorf("customer not found")
	}

	return customer, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
