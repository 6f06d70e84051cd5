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

type ProjectService interface {
	Create(ctx context.Context, req *request.ProjectRequest, lang string) (*response.ProjectResponse, error)
	GetByID(ctx context.Context, id, lang string) (*response.ProjectResponse, error)
	List(ctx context.Context, req *request.ProjectListRequest, lang string) (*response.PaginatedResponse[response.ProjectResponse], error)
	Update(ctx context.Context, id string, req *request.ProjectUpdateRequest, lang string) (*response.ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProjectService(repo *repository.Repository, log *zap.Logger) ProjectService {
	return &projectService{
		repo: repo,
		log:  log,
	}
}

const dateLayout = "2006-01-02"

func (s *projectService) Create(ctx context.Context, req *request.ProjectRequest, lang string) (*response.ProjectResponse, error) {
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

	status := entity.ProjectStatus(req.Status)
	if status == "" {
		status = entity.ProjectStatusGeplant
	}

	now := time.Now()
	project := &entity.Project{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:  customerID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Budget:      req.Budget,
	}

	if project.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start date")
	}
	if project.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, fmt.Errorf("invalid end date")
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		return nil, fmt.Errorf("end date is before start date")
	}

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.log.Error("Failed to create project", zap.Error(err), zap.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to create project")
	}

	s.log.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("customer_id", customerID.String()))

	resp := response.ProjectToResponse(project, lang)
	return &resp, nil
}

func (s *projectService) GetByID(ctx context.Context, id, lang string) (*response.ProjectResponse, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ProjectToResponse(project, lang)
	return &resp, nil
}

func (s *projectService) List(ctx context.Context, req *request.ProjectListRequest, lang string) (*response.PaginatedResponse[response.ProjectResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var filter repository.ProjectFilter
	if req.CustomerID != "" {
		customerID, err := utils.ParseUUID(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer ID")
		}
		filter.CustomerID = &customerID
	}
	if req.Status != "" {
		status := entity.ProjectStatus(req.Status)
		filter.Status = &status
	}

	projects, err := s.repo.Project.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to load projects")
	}

	total, err := s.repo.Project.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects")
	}

	return response.NewPaginatedResponse(
		response.ProjectsToResponse(projects, lang),
		req.PageOrDefault(), req.Limit(), total,
	), nil
}

func (s *projectService) Update(ctx context.Context, id string, req *request.ProjectUpdateRequest, lang string) (*response.ProjectResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Status != nil {
		project.Status = entity.ProjectStatus(*req.Status)
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.StartDate != nil {
		if project.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
			return nil, fmt.Errorf("invalid start date")
		}
	}
	if req.EndDate != nil {
		if project.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
			return nil, fmt.Errorf("invalid end date")
		}
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		return nil, fmt.Errorf("end date is before start date")
	}
	project.UpdatedAt = time.Now()

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.log.Error("Failed to update project", zap.Error(err), zap.String("project_id", id))
		return nil, fmt.Errorf("failed to update project")
	}

	resp := response.ProjectToResponse(project, lang)
	return &resp, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Project.Delete(ctx, project.ID); err != nil {
		s.log.Error("Failed to delete project", zap.Error(err), zap.String("project_id", id))
		return fmt.Errorf("failed to delete project")
	}

	s.log.Info("Project deleted", zap.String("project_id", id))
	return nil
}

func (s *projectService) findProject(ctx context.Context, id string) (*entity.Project, error) {
	projectID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID")
	}

	project, err := s.repo.Project.FindByID(ctx, projectID)
	if err != nil {
		s.log.Error("Failed to find project", zap.Error(err), zap.String("project_id", id))
		return nil, fmt.Errorf("failed to load project")
	}
	if project == nil {
		return nil, fmt.Errorf("project not found")
	}

	return project, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
