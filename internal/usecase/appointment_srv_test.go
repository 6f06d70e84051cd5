package usecase

import (
	"context"
	"testing"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/dto/request"
	"rising-bms/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAppointmentService(f *fakeRepos) AppointmentService {
	notifications := NewNotificationService(f.repo, zap.NewNop())
	return NewAppointmentService(f.repo, notifications, newAutomationService(f), zap.NewNop())
}

func futureTime(hours int) string {
	return time.Now().Add(time.Duration(hours) * time.Hour).Format(time.RFC3339)
}

func TestAppointmentService_Create(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")

	resp, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Erstgespräch",
		ScheduledAt:     futureTime(48),
		DurationMinutes: 60,
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "geplant", resp.Status)
	assert.Equal(t, "Geplant", resp.StatusLabel)
	assert.Equal(t, customer.ID.String(), resp.CustomerID)
}

func TestAppointmentService_Create_PastTime(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")

	_, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Erstgespräch",
		ScheduledAt:     time.Now().Add(-time.Hour).Format(time.RFC3339),
		DurationMinutes: 60,
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is in the past")
}

func TestAppointmentService_Create_ForeignProject(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	other := seedCustomer(f, "Max Beispiel", "max@example.de")

	now := time.Now()
	project := &entity.Project{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: other.ID,
		Name:       "Website Relaunch",
		Status:     entity.ProjectStatusAktiv,
	}
	require.NoError(t, f.project.Create(context.Background(), project))

	projectID := project.ID.String()
	_, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		ProjectID:       &projectID,
		Title:           "Projektbesprechung",
		ScheduledAt:     futureTime(24),
		DurationMinutes: 30,
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to another customer")
}

func TestAppointmentService_Cancel(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	seedUser(f, "admin", "admin@example.de", "geheim123", entity.RoleAdmin)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")

	created, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Erstgespräch",
		ScheduledAt:     futureTime(24),
		DurationMinutes: 60,
	}, "de")
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), created.ID, &request.AppointmentCancelRequest{
		Reason: "Kunde verhindert",
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "storniert", cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "Kunde verhindert", *cancelled.CancelReason)

	// Admins are notified about the cancellation
	var notified []*entity.Notification
	for _, n := range f.notification.notifications {
		if n.Type == entity.NotificationAppointment {
			notified = append(notified, n)
		}
	}
	require.Len(t, notified, 1)
	assert.Contains(t, notified[0].Message, "Kunde verhindert")

	// A cancelled appointment cannot be cancelled again
	_, err = svc.Cancel(context.Background(), created.ID, &request.AppointmentCancelRequest{
		Reason: "Nochmal",
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already cancelled")
}

func TestAppointmentService_Complete(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")

	created, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Abnahme",
		ScheduledAt:     futureTime(24),
		DurationMinutes: 45,
	}, "en")
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), created.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, "abgeschlossen", completed.Status)
	assert.Equal(t, "Completed", completed.StatusLabel)
}

func TestAppointmentService_Upcoming_ClampsWindow(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")

	_, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Beratung",
		ScheduledAt:     futureTime(3 * 24),
		DurationMinutes: 60,
	}, "de")
	require.NoError(t, err)

	// Out-of-range window falls back to the 7 day default
	upcoming, err := svc.Upcoming(context.Background(), 500, "de")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestAppointmentService_ExportXLSX(t *testing.T) {
	f := newFakeRepos()
	svc := newAppointmentService(f)
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")

	_, err := svc.Create(context.Background(), &request.AppointmentRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Beratung",
		ScheduledAt:     futureTime(24),
		DurationMinutes: 60,
	}, "de")
	require.NoError(t, err)

	data, err := svc.ExportXLSX(context.Background(), &request.AppointmentListRequest{}, "de")
	require.NoError(t, err)
	// XLSX files are zip archives
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte("PK"), data[:2])
}
