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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	List(ctx context.Context, activeOnly bool, page, perPage int) (*response.PaginatedResponse[response.UserResponse], error)
	GetByID(ctx context.Context, id string) (*response.UserResponse, error)
	Update(ctx context.Context, id string, req *request.UserUpdateRequest) (*response.UserResponse, error)
	Deactivate(ctx context.Context, id string) error
	GetSettings(ctx context.Context, userID uuid.UUID) (*response.UserSettingsResponse, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *request.UserSettingsRequest) (*response.UserSettingsResponse, error)
	// Language resolves the display language for a user, falling back
	// to the configured default.
	Language(ctx context.Context, userID uuid.UUID) string
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *userService) List(ctx context.Context, activeOnly bool, page, perPage int) (*response.PaginatedResponse[response.UserResponse], error) {
	limit := perPage
	if limit < 1 {
		limit = 20
	}
	offset := utils.CalculateOffset(page, limit)

	users, err := s.repo.User.FindAll(ctx, activeOnly, limit, offset)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to load users")
	}

	total, err := s.repo.User.CountAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load users")
	}

	responses := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(responses, page, limit, total), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*response.UserResponse, error) {
	userID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("failed to load user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id string, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	if req.Username != nil {
		existing, err := s.repo.User.FindByUsername(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username")
		}
		if existing != nil && existing.ID != user.ID {
			return nil, fmt.Errorf("username already taken")
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email")
		}
		if existing != nil && existing.ID != user.ID {
			return nil, fmt.Errorf("email already registered")
		}
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("failed to update user")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Deactivate(ctx context.Context, id string) error {
	userID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		s.log.Error("Failed to deactivate user", zap.Error(err), zap.String("user_id", id))
		return fmt.Errorf("failed to deactivate user")
	}

	// A deactivated account cannot keep working with existing sessions
	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		s.log.Warn("Failed to revoke sessions on deactivate", zap.Error(err))
	}
	if err := s.repo.RefreshToken.RevokeAllForUser(ctx, userID); err != nil {
		s.log.Warn("Failed to revoke refresh tokens on deactivate", zap.Error(err))
	}

	s.log.Info("User deactivated", zap.String("user_id", id))
	return nil
}

func (s *userService) GetSettings(ctx context.Context, userID uuid.UUID) (*response.UserSettingsResponse, error) {
	settings, err := s.repo.UserSettings.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load settings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load settings")
	}
	if settings == nil {
		settings = s.defaultSettings(userID)
	}

	resp := response.SettingsToResponse(settings)
	return &resp, nil
}

func (s *userService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *request.UserSettingsRequest) (*response.UserSettingsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	settings, err := s.repo.UserSettings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings")
	}
	if settings == nil {
		settings = s.defaultSettings(userID)
	}

	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.Timezone != nil {
		settings.Timezone = *req.Timezone
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.EmailDigest != nil {
		settings.EmailDigest = *req.EmailDigest
	}
	settings.UpdatedAt = time.Now()

	if err := s.repo.UserSettings.Upsert(ctx, settings); err != nil {
		s.log.Error("Failed to save settings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to save settings")
	}

	resp := response.SettingsToResponse(settings)
	return &resp, nil
}

func (s *userService) Language(ctx context.Context, userID uuid.UUID) string {
	settings, err := s.repo.UserSettings.FindByUserID(ctx, userID)
	if err != nil || settings == nil || settings.Language == "" {
		return s.config.Locale.DefaultLanguage
	}
	return settings.Language
}

func (s *userService) defaultSettings(userID uuid.UUID) *entity.UserSettings {
	now := time.Now()
	return &entity.UserSettings{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:               userID,
		Language:             s.config.Locale.DefaultLanguage,
		Timezone:             "Europe/Berlin",
		NotificationsEnabled: true,
		EmailDigest:          false,
	}
}
