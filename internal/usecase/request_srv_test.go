package usecase

import (
	"context"
	"testing"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRequestService(f *fakeRepos) RequestService {
	notification := NewNotificationService(f.repo, zap.NewNop())
	return NewRequestService(f.repo, notification, newAutomationService(f), zap.NewNop())
}

func seedCustomer(f *fakeRepos, name, email string) *entity.Customer {
	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   name,
		Email:  email,
		Status: entity.CustomerStatusAktiv,
	}
	f.customer.customers[customer.ID] = customer
	return customer
}

func TestRequestService_Create(t *testing.T) {
	f := newFakeRepos()
	admin := seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	svc := newRequestService(f)

	resp, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "neu", resp.Status)
	assert.Equal(t, "Neu", resp.StatusLabel)
	assert.Equal(t, "normal", resp.Priority)
	assert.NotEmpty(t, resp.RequestNumber)

	// Every active admin gets notified
	count, err := f.notification.CountUnread(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRequestService_Create_LinksExistingCustomer(t *testing.T) {
	f := newFakeRepos()
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := newRequestService(f)

	resp, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, customer.ID.String(), *resp.CustomerID)
}

func TestRequestService_Assign(t *testing.T) {
	f := newFakeRepos()
	admin := seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	employee := seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	svc := newRequestService(f)

	created, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)

	resp, err := svc.Assign(context.Background(), created.ID, admin.ID, &request.ContactRequestAssign{
		AssigneeID: employee.ID.String(),
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "zugewiesen", resp.Status)
	require.NotNil(t, resp.AssignedTo)
	assert.Equal(t, employee.ID.String(), *resp.AssignedTo)

	// A system note records the assignment
	notes, err := svc.ListNotes(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "assignment", notes[0].NoteType)
	assert.Contains(t, notes[0].Content, "mschmidt")

	// The assignee is notified
	count, err := f.notification.CountUnread(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRequestService_Assign_UnknownAssignee(t *testing.T) {
	f := newFakeRepos()
	admin := seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	svc := newRequestService(f)

	created, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), created.ID, admin.ID, &request.ContactRequestAssign{
		AssigneeID: utils.GenerateUUID().String(),
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignee not found")
}

func TestRequestService_ChangeStatus(t *testing.T) {
	f := newFakeRepos()
	admin := seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	svc := newRequestService(f)

	created, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)

	resp, err := svc.ChangeStatus(context.Background(), created.ID, admin.ID, &request.ContactRequestStatusChange{
		Status: "in_bearbeitung",
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "in_bearbeitung", resp.Status)
	assert.Equal(t, "In Bearbeitung", resp.StatusLabel)

	notes, err := svc.ListNotes(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "status_change", notes[0].NoteType)
	assert.Contains(t, notes[0].Content, "neu -> in_bearbeitung")
}

func TestRequestService_Convert(t *testing.T) {
	f := newFakeRepos()
	admin := seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := newRequestService(f)

	created, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)

	scheduledAt := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	appointment, err := svc.Convert(context.Background(), created.ID, admin.ID, &request.ContactRequestConvert{
		CustomerID:      customer.ID.String(),
		Title:           "Erstberatung",
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "geplant", appointment.Status)
	assert.Equal(t, customer.ID.String(), appointment.CustomerID)

	// The request is closed and linked to the appointment
	converted, err := svc.GetByID(context.Background(), created.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "abgeschlossen", converted.Status)
	require.NotNil(t, converted.AppointmentID)
	assert.Equal(t, appointment.ID, *converted.AppointmentID)

	// Converting twice must fail
	_, err = svc.Convert(context.Background(), created.ID, admin.ID, &request.ContactRequestConvert{
		CustomerID:      customer.ID.String(),
		Title:           "Erstberatung",
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already converted")
}

func TestRequestService_Convert_PastTime(t *testing.T) {
	f := newFakeRepos()
	admin := seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := newRequestService(f)

	created, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)

	_, err = svc.Convert(context.Background(), created.ID, admin.ID, &request.ContactRequestConvert{
		CustomerID:      customer.ID.String(),
		Title:           "Erstberatung",
		ScheduledAt:     time.Now().Add(-time.Hour).Format(time.RFC3339),
		DurationMinutes: 60,
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is in the past")
}

func TestRequestService_GetByID_NotFound(t *testing.T) {
	f := newFakeRepos()
	svc := newRequestService(f)

	_, err := svc.GetByID(context.Background(), utils.GenerateUUID().String(), "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRequestService_Create_RetriesDuplicateNumber(t *testing.T) {
	f := newFakeRepos()
	svc := newRequestService(f)

	f.contactRequest.createErrs = []error{repository.ErrDuplicateRequestNumber}

	resp, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RequestNumber)
	assert.Len(t, f.contactRequest.requests, 1)
}

func TestRequestService_Create_DuplicateNumberExhausted(t *testing.T) {
	f := newFakeRepos()
	svc := newRequestService(f)

	f.contactRequest.createErrs = []error{
		repository.ErrDuplicateRequestNumber,
		repository.ErrDuplicateRequestNumber,
		repository.ErrDuplicateRequestNumber,
	}

	_, err := svc.Create(context.Background(), &request.ContactRequestCreate{
		Name:    "Erika Mustermann",
		Email:   "erika@example.de",
		Subject: "Beratungstermin",
		Message: "Ich habe Interesse an einer Beratung.",
	}, "de")
	require.Error(t, err)
	assert.Empty(t, f.contactRequest.requests)
}
