package usecase

import (
	"context"
	"strings"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/utils"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the usecase tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, activeOnly bool, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range f.users {
		if user.DeletedAt != nil || (activeOnly && !user.IsActive) {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) FindActiveAdmins(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range f.users {
		if user.Role == entity.RoleAdmin && user.IsActive && user.DeletedAt == nil {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	users, _ := f.FindAll(ctx, activeOnly, 0, 0)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if user, ok := f.users[id]; ok {
		now := time.Now()
		user.DeletedAt = &now
		user.IsActive = false
	}
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	if session, ok := f.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(_ context.Context) error { return nil }

type fakeRefreshTokenRepo struct {
	tokens map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	f.tokens[token.Token.String()] = token
	return nil
}

func (f *fakeRefreshTokenRepo) FindValid(_ context.Context, token string) (*entity.RefreshToken, error) {
	stored, ok := f.tokens[token]
	if !ok || stored.RevokedAt != nil || stored.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return stored, nil
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, token string) error {
	if stored, ok := f.tokens[token]; ok {
		now := time.Now()
		stored.RevokedAt = &now
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, stored := range f.tokens {
		if stored.UserID == userID {
			stored.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) CleanExpired(_ context.Context) error { return nil }

type fakeUserSettingsRepo struct {
	settings map[uuid.UUID]*entity.UserSettings
}

func newFakeUserSettingsRepo() *fakeUserSettingsRepo {
	return &fakeUserSettingsRepo{settings: make(map[uuid.UUID]*entity.UserSettings)}
}

func (f *fakeUserSettingsRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	return f.settings[userID], nil
}

func (f *fakeUserSettingsRepo) Upsert(_ context.Context, settings *entity.UserSettings) error {
	f.settings[settings.UserID] = settings
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	notes     []*entity.CustomerNote
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := f.customers[id]
	if !ok || customer.DeletedAt != nil {
		return nil, nil
	}
	return customer, nil
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, customer := range f.customers {
		if customer.Email == email && customer.DeletedAt == nil {
			return customer, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) matches(customer *entity.Customer, filter repository.CustomerFilter) bool {
	if customer.DeletedAt != nil {
		return false
	}
	if filter.Status != nil && customer.Status != *filter.Status {
		return false
	}
	if filter.Search != nil && *filter.Search != "" {
		needle := strings.ToLower(*filter.Search)
		company := ""
		if customer.Company != nil {
			company = *customer.Company
		}
		haystack := strings.ToLower(customer.Name + " " + customer.Email + " " + company)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (f *fakeCustomerRepo) FindAll(_ context.Context, filter repository.CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, customer := range f.customers {
		if f.matches(customer, filter) {
			out = append(out, customer)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) CountAll(ctx context.Context, filter repository.CustomerFilter) (int64, error) {
	customers, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(customers)), nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if customer, ok := f.customers[id]; ok {
		now := time.Now()
		customer.DeletedAt = &now
	}
	return nil
}

func (f *fakeCustomerRepo) Stats(_ context.Context) (*repository.CustomerStats, error) {
	stats := &repository.CustomerStats{}
	for _, customer := range f.customers {
		if customer.DeletedAt != nil {
			continue
		}
		stats.Total++
		switch customer.Status {
		case entity.CustomerStatusAktiv:
			stats.Aktiv++
		case entity.CustomerStatusInaktiv:
			stats.Inaktiv++
		case entity.CustomerStatusInteressent:
			stats.Interessent++
		}
	}
	return stats, nil
}

func (f *fakeCustomerRepo) AddNote(_ context.Context, note *entity.CustomerNote) error {
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeCustomerRepo) FindNotes(_ context.Context, customerID uuid.UUID) ([]*entity.CustomerNote, error) {
	var out []*entity.CustomerNote
	for _, note := range f.notes {
		if note.CustomerID == customerID {
			out = append(out, note)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*entity.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, project *entity.Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	project, ok := f.projects[id]
	if !ok || project.DeletedAt != nil {
		return nil, nil
	}
	return project, nil
}

func (f *fakeProjectRepo) FindAll(_ context.Context, filter repository.ProjectFilter, limit, offset int) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range f.projects {
		if project.DeletedAt != nil {
			continue
		}
		if filter.CustomerID != nil && project.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && project.Status != *filter.Status {
			continue
		}
		out = append(out, project)
	}
	return out, nil
}

func (f *fakeProjectRepo) CountAll(ctx context.Context, filter repository.ProjectFilter) (int64, error) {
	projects, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(projects)), nil
}

func (f *fakeProjectRepo) Update(_ context.Context, project *entity.Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if project, ok := f.projects[id]; ok {
		now := time.Now()
		project.DeletedAt = &now
	}
	return nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok || appointment.DeletedAt != nil {
		return nil, nil
	}
	return appointment, nil
}

func (f *fakeAppointmentRepo) FindAll(_ context.Context, filter repository.AppointmentFilter, limit, offset int) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, appointment := range f.appointments {
		if appointment.DeletedAt != nil {
			continue
		}
		if filter.CustomerID != nil && appointment.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && appointment.Status != *filter.Status {
			continue
		}
		if filter.Upcoming && appointment.ScheduledAt.Before(time.Now()) {
			continue
		}
		out = append(out, appointment)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountAll(ctx context.Context, filter repository.AppointmentFilter) (int64, error) {
	appointments, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(appointments)), nil
}

func (f *fakeAppointmentRepo) FindToday(_ context.Context) ([]*entity.Appointment, error) {
	now := time.Now()
	var out []*entity.Appointment
	for _, appointment := range f.appointments {
		if appointment.DeletedAt != nil {
			continue
		}
		y1, m1, d1 := appointment.ScheduledAt.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindUpcoming(_ context.Context, days, limit int) ([]*entity.Appointment, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)
	var out []*entity.Appointment
	for _, appointment := range f.appointments {
		if appointment.DeletedAt != nil {
			continue
		}
		if appointment.ScheduledAt.After(now) && appointment.ScheduledAt.Before(cutoff) {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appointment *entity.Appointment) error {
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) Stats(_ context.Context) (*repository.AppointmentStats, error) {
	stats := &repository.AppointmentStats{}
	for _, appointment := range f.appointments {
		if appointment.DeletedAt != nil {
			continue
		}
		stats.Total++
		if appointment.Status == entity.AppointmentStatusStorniert {
			stats.Cancelled++
		}
	}
	return stats, nil
}

type fakeContactRequestRepo struct {
	requests     map[uuid.UUID]*entity.ContactRequest
	notes        []*entity.RequestNote
	appointments *fakeAppointmentRepo

	// createErrs is popped per Create call to simulate transient failures.
	createErrs []error
}

func newFakeContactRequestRepo(appointments *fakeAppointmentRepo) *fakeContactRequestRepo {
	return &fakeContactRequestRepo{
		requests:     make(map[uuid.UUID]*entity.ContactRequest),
		appointments: appointments,
	}
}

func (f *fakeContactRequestRepo) Create(_ context.Context, request *entity.ContactRequest) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	for _, existing := range f.requests {
		if existing.RequestNumber == request.RequestNumber {
			return repository.ErrDuplicateRequestNumber
		}
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeContactRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ContactRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.DeletedAt != nil {
		return nil, nil
	}
	return request, nil
}

func (f *fakeContactRequestRepo) FindAll(_ context.Context, filter repository.RequestFilter, limit, offset int) ([]*entity.ContactRequest, error) {
	var out []*entity.ContactRequest
	for _, request := range f.requests {
		if request.DeletedAt != nil {
			continue
		}
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && request.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil && (request.AssignedTo == nil || *request.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.Unassigned && request.AssignedTo != nil {
			continue
		}
		out = append(out, request)
	}
	return out, nil
}

func (f *fakeContactRequestRepo) CountAll(ctx context.Context, filter repository.RequestFilter) (int64, error) {
	requests, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(requests)), nil
}

func (f *fakeContactRequestRepo) Update(_ context.Context, request *entity.ContactRequest) error {
	f.requests[request.ID] = request
	return nil
}

func (f *fakeContactRequestRepo) Stats(_ context.Context) (*repository.RequestStats, error) {
	stats := &repository.RequestStats{}
	for _, request := range f.requests {
		if request.DeletedAt != nil {
			continue
		}
		stats.Total++
		switch request.Status {
		case entity.RequestStatusNeu:
			stats.Neu++
		case entity.RequestStatusInBearbeitung:
			stats.InBearbeitung++
		case entity.RequestStatusAbgeschlossen:
			stats.Completed++
		}
	}
	return stats, nil
}

func (f *fakeContactRequestRepo) AddNote(_ context.Context, note *entity.RequestNote) error {
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeContactRequestRepo) FindNotes(_ context.Context, requestID uuid.UUID) ([]*entity.RequestNote, error) {
	var out []*entity.RequestNote
	for _, note := range f.notes {
		if note.RequestID == requestID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *fakeContactRequestRepo) ConvertToAppointment(ctx context.Context, request *entity.ContactRequest, appointment *entity.Appointment) error {
	if err := f.appointments.Create(ctx, appointment); err != nil {
		return err
	}
	request.AppointmentID = &appointment.ID
	f.requests[request.ID] = request
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (f *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	service, ok := f.services[id]
	if !ok || service.DeletedAt != nil {
		return nil, nil
	}
	return service, nil
}

func (f *fakeServiceRepo) FindAll(_ context.Context, activeOnly bool, limit, offset int) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, service := range f.services {
		if service.DeletedAt != nil || (activeOnly && !service.IsActive) {
			continue
		}
		out = append(out, service)
	}
	return out, nil
}

func (f *fakeServiceRepo) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	services, _ := f.FindAll(ctx, activeOnly, 0, 0)
	return int64(len(services)), nil
}

func (f *fakeServiceRepo) Update(_ context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if service, ok := f.services[id]; ok {
		now := time.Now()
		service.DeletedAt = &now
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	for _, notification := range f.notifications {
		if notification.ID == id {
			return notification, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) FindByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, notification := range f.notifications {
		if notification.UserID != userID || (unreadOnly && notification.IsRead) {
			continue
		}
		out = append(out, notification)
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int64, error) {
	notifications, _ := f.FindByUser(ctx, userID, unreadOnly, 0, 0)
	return int64(len(notifications)), nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.CountByUser(ctx, userID, true)
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, notification := range f.notifications {
		if notification.ID == id && notification.UserID == userID {
			now := time.Now()
			notification.IsRead = true
			notification.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	now := time.Now()
	for _, notification := range f.notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			notification.ReadAt = &now
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	for i, notification := range f.notifications {
		if notification.ID == id && notification.UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeWebhookRepo struct {
	webhooks   map[uuid.UUID]*entity.Webhook
	executions []*entity.WebhookExecution
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{webhooks: make(map[uuid.UUID]*entity.Webhook)}
}

func (f *fakeWebhookRepo) Create(_ context.Context, webhook *entity.Webhook) error {
	f.webhooks[webhook.ID] = webhook
	return nil
}

func (f *fakeWebhookRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Webhook, error) {
	webhook, ok := f.webhooks[id]
	if !ok || webhook.DeletedAt != nil {
		return nil, nil
	}
	return webhook, nil
}

func (f *fakeWebhookRepo) FindAll(_ context.Context) ([]*entity.Webhook, error) {
	var out []*entity.Webhook
	for _, webhook := range f.webhooks {
		if webhook.DeletedAt == nil {
			out = append(out, webhook)
		}
	}
	return out, nil
}

func (f *fakeWebhookRepo) FindActiveByEvent(_ context.Context, event string) ([]*entity.Webhook, error) {
	var out []*entity.Webhook
	for _, webhook := range f.webhooks {
		if webhook.DeletedAt == nil && webhook.IsActive && webhook.Event == event {
			out = append(out, webhook)
		}
	}
	return out, nil
}

func (f *fakeWebhookRepo) Update(_ context.Context, webhook *entity.Webhook) error {
	f.webhooks[webhook.ID] = webhook
	return nil
}

func (f *fakeWebhookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if webhook, ok := f.webhooks[id]; ok {
		now := time.Now()
		webhook.DeletedAt = &now
	}
	return nil
}

func (f *fakeWebhookRepo) RecordExecution(_ context.Context, execution *entity.WebhookExecution) error {
	f.executions = append(f.executions, execution)
	return nil
}

func (f *fakeWebhookRepo) FindExecutions(_ context.Context, webhookID uuid.UUID, limit int) ([]*entity.WebhookExecution, error) {
	var out []*entity.WebhookExecution
	for _, execution := range f.executions {
		if execution.WebhookID == webhookID {
			out = append(out, execution)
		}
	}
	return out, nil
}

type fakeScheduledTaskRepo struct {
	tasks map[uuid.UUID]*entity.ScheduledTask
}

func newFakeScheduledTaskRepo() *fakeScheduledTaskRepo {
	return &fakeScheduledTaskRepo{tasks: make(map[uuid.UUID]*entity.ScheduledTask)}
}

func (f *fakeScheduledTaskRepo) Create(_ context.Context, task *entity.ScheduledTask) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeScheduledTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ScheduledTask, error) {
	task, ok := f.tasks[id]
	if !ok || task.DeletedAt != nil {
		return nil, nil
	}
	return task, nil
}

func (f *fakeScheduledTaskRepo) FindAll(_ context.Context) ([]*entity.ScheduledTask, error) {
	var out []*entity.ScheduledTask
	for _, task := range f.tasks {
		if task.DeletedAt == nil {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeScheduledTaskRepo) FindActive(_ context.Context) ([]*entity.ScheduledTask, error) {
	var out []*entity.ScheduledTask
	for _, task := range f.tasks {
		if task.DeletedAt == nil && task.IsActive {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeScheduledTaskRepo) Update(_ context.Context, task *entity.ScheduledTask) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeScheduledTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	if task, ok := f.tasks[id]; ok {
		now := time.Now()
		task.DeletedAt = &now
	}
	return nil
}

func (f *fakeScheduledTaskRepo) TouchLastRun(_ context.Context, id uuid.UUID, at time.Time) error {
	if task, ok := f.tasks[id]; ok {
		task.LastRunAt = &at
	}
	return nil
}

// fakeRepos bundles the fakes so tests can reach into them directly.
type fakeRepos struct {
	user           *fakeUserRepo
	session        *fakeSessionRepo
	refreshToken   *fakeRefreshTokenRepo
	userSettings   *fakeUserSettingsRepo
	customer       *fakeCustomerRepo
	project        *fakeProjectRepo
	appointment    *fakeAppointmentRepo
	service        *fakeServiceRepo
	contactRequest *fakeContactRequestRepo
	notification   *fakeNotificationRepo
	webhook        *fakeWebhookRepo
	scheduledTask  *fakeScheduledTaskRepo

	repo *repository.Repository
}

func newFakeRepos() *fakeRepos {
	f := &fakeRepos{
		user:          newFakeUserRepo(),
		session:       newFakeSessionRepo(),
		refreshToken:  newFakeRefreshTokenRepo(),
		userSettings:  newFakeUserSettingsRepo(),
		customer:      newFakeCustomerRepo(),
		project:       newFakeProjectRepo(),
		appointment:   newFakeAppointmentRepo(),
		service:       newFakeServiceRepo(),
		notification:  newFakeNotificationRepo(),
		webhook:       newFakeWebhookRepo(),
		scheduledTask: newFakeScheduledTaskRepo(),
	}
	f.contactRequest = newFakeContactRequestRepo(f.appointment)

	f.repo = &repository.Repository{
		User:           f.user,
		Session:        f.session,
		RefreshToken:   f.refreshToken,
		UserSettings:   f.userSettings,
		Customer:       f.customer,
		Project:        f.project,
		Appointment:    f.appointment,
		Service:        f.service,
		ContactRequest: f.contactRequest,
		Notification:   f.notification,
		Webhook:        f.webhook,
		ScheduledTask:  f.scheduledTask,
	}
	return f
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:             "test-secret",
			AccessExpiryMin:    30,
			RefreshExpiryHours: 168,
		},
		Session: utils.SessionConfig{
			ExpiryHours: 24,
			CookieName:  "bms_session",
		},
		Locale: utils.LocaleConfig{
			DefaultLanguage: "de",
		},
		Webhook: utils.WebhookConfig{
			TimeoutSeconds: 2,
		},
	}
}

func seedUser(f *fakeRepos, username, email, password string, role entity.UserRole) *entity.User {
	hash, _ := utils.HashPassword(password)
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	f.user.users[user.ID] = user
	return user
}
