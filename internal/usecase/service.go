package usecase

import (
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/cache"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Customer     CustomerService
	Project      ProjectService
	Appointment  AppointmentService
	Catalog      CatalogService
	Request      RequestService
	Notification NotificationService
	Dashboard    DashboardService
	Automation   AutomationService
}

func NewService(repo *repository.Repository, config *utils.Config, store *cache.Cache, log *zap.Logger) *Service {
	notification := NewNotificationService(repo, log)
	automation := NewAutomationService(repo, config, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo, config, log),
		Customer:     NewCustomerService(repo, automation, log),
		Project:      NewProjectService(repo, log),
		Appointment:  NewAppointmentService(repo, notification, automation, log),
		Catalog:      NewCatalogService(repo, log),
		Request:      NewRequestService(repo, notification, automation, log),
		Notification: notification,
		Dashboard:    NewDashboardService(repo, store, config, log),
		Automation:   automation,
	}
}
