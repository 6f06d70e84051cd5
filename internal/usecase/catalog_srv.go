package usecase

import (
	"context"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

// CatalogService manages the offered services (entity.Service).
type CatalogService interface {
	Create(ctx context.Context, req *request.ServiceRequest) (*response.ServiceResponse, error)
	GetByID(ctx context.Context, id string) (*response.ServiceResponse, error)
	List(ctx context.Context, activeOnly bool, page, perPage int) (*response.PaginatedResponse[response.ServiceResponse], error)
	Update(ctx context.Context, id string, req *request.ServiceUpdateRequest) (*response.ServiceResponse, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log,
	}
}

func (s *catalogService) Create(ctx context.Context, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create service")
	}

	s.log.Info("Service created", zap.String("service_id", service.ID.String()))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*response.ServiceResponse, error) {
	service, err := s.findService(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) List(ctx context.Context, activeOnly bool, page, perPage int) (*response.PaginatedResponse[response.ServiceResponse], error) {
	limit := perPage
	if limit < 1 {
		limit = 20
	}
	offset := utils.CalculateOffset(page, limit)

	services, err := s.repo.Service.FindAll(ctx, activeOnly, limit, offset)
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("failed to load services")
	}

	total, err := s.repo.Service.CountAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load services")
	}

	return response.NewPaginatedResponse(
		response.ServicesToResponse(services),
		page, limit, total,
	), nil
}

func (s *catalogService) Update(ctx context.Context, id string, req *request.ServiceUpdateRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.findService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Category != nil {
		service.Category = req.Category
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		s.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", id))
		return nil, fmt.Errorf("failed to update service")
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	service, err := s.findService(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Service.Delete(ctx, service.ID); err != nil {
		s.log.Error("Failed to delete service", zap.Error(err), zap.String("service_id", id))
		return fmt.Errorf("failed to delete service")
	}

	s.log.Info("Service deleted", zap.String("service_id", id))
	return nil
}

func (s *catalogService) findService(ctx context.Context, id string) (*entity.Service, error) {
	serviceID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID")
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.String("service_id", id))
		return nil, fmt.Errorf("failed to load service")
	}
	if service == nil {
		return nil, fmt.Errorf("service not found")
	}

	return service, nil
}
