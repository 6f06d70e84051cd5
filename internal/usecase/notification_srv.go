package usecase

import (
	"context"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, perPage int) (*response.PaginatedResponse[response.NotificationResponse], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (*response.UnreadCountResponse, error)
	MarkRead(ctx context.Context, id string, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id string, userID uuid.UUID) error

	// Notify writes a notification for one user. Delivery respects the
	// recipient's notification settings.
	Notify(ctx context.Context, userID uuid.UUID, notifType entity.NotificationType, title, message string, refType *string, refID *uuid.UUID)
	// NotifyAdmins fans one notification out to every active admin.
	NotifyAdmins(ctx context.Context, notifType entity.NotificationType, title, message string, refType *string, refID *uuid.UUID)
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log,
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, perPage int) (*response.PaginatedResponse[response.NotificationResponse], error) {
	limit := perPage
	if limit < 1 {
		limit = 20
	}
	offset := utils.CalculateOffset(page, limit)

	notifications, err := s.repo.Notification.FindByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load notifications")
	}

	total, err := s.repo.Notification.CountByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications")
	}

	return response.NewPaginatedResponse(
		response.NotificationsToResponse(notifications),
		page, limit, total,
	), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (*response.UnreadCountResponse, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count unread notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load unread count")
	}

	return &response.UnreadCountResponse{Unread: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string, userID uuid.UUID) error {
	notificationID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID")
	}

	if err := s.repo.Notification.MarkRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Notification.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read")
	}

	return count, nil
}

func (s *notificationService) Delete(ctx context.Context, id string, userID uuid.UUID) error {
	notificationID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID")
	}

	if err := s.repo.Notification.Delete(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, notifType entity.NotificationType, title, message string, refType *string, refID *uuid.UUID) {
	settings, err := s.repo.UserSettings.FindByUserID(ctx, userID)
	if err == nil && settings != nil && !settings.NotificationsEnabled {
		return
	}

	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:        userID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		ReferenceType: refType,
		ReferenceID:   refID,
	}

	// Notification delivery must never fail the triggering operation
	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Warn("Failed to deliver notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("type", string(notifType)),
		)
	}
}

func (s *notificationService) NotifyAdmins(ctx context.Context, notifType entity.NotificationType, title, message string, refType *string, refID *uuid.UUID) {
	admins, err := s.repo.User.FindActiveAdmins(ctx)
	if err != nil {
		s.log.Warn("Failed to load admins for notification fanout", zap.Error(err))
		return
	}

	for _, admin := range admins {
		s.Notify(ctx, admin.ID, notifType, title, message, refType, refID)
	}
}
