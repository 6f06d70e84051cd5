package repository

import (
	"rising-bms/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User           UserRepository
	Session        SessionRepository
	RefreshToken   RefreshTokenRepository
	UserSettings   UserSettingsRepository
	Customer       CustomerRepository
	Project        ProjectRepository
	Appointment    AppointmentRepository
	Service        ServiceRepository
	ContactRequest ContactRequestRepository
	Notification   NotificationRepository
	Webhook        WebhookRepository
	ScheduledTask  ScheduledTaskRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Session:        NewSessionRepository(db, log),
		RefreshToken:   NewRefreshTokenRepository(db, log),
		UserSettings:   NewUserSettingsRepository(db, log),
		Customer:       NewCustomerRepository(db, log),
		Project:        NewProjectRepository(db, log),
		Appointment:    NewAppointmentRepository(db, log),
		Service:        NewServiceRepository(db, log),
		ContactRequest: NewContactRequestRepository(db, log),
		Notification:   NewNotificationRepository(db, log),
		Webhook:        NewWebhookRepository(db, log),
		ScheduledTask:  NewScheduledTaskRepository(db, log),
	}
}
