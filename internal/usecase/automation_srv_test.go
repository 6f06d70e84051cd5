package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAutomationService(f *fakeRepos) AutomationService {
	return NewAutomationService(f.repo, testConfig(), zap.NewNop())
}

func TestAutomationService_TriggerWebhook(t *testing.T) {
	var gotBody []byte
	var gotSignature string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Signature-256")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newFakeRepos()
	svc := newAutomationService(f)

	secret := "webhook-geheimnis"
	webhook, err := svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:   "CRM Sync",
		URL:    server.URL,
		Event:  "customer.created",
		Secret: &secret,
	})
	require.NoError(t, err)
	assert.True(t, webhook.HasSecret)

	execution, err := svc.TriggerWebhook(context.Background(), webhook.ID, &request.WebhookTriggerRequest{
		Payload: json.RawMessage(`{"test":true}`),
	})
	require.NoError(t, err)
	assert.True(t, execution.Success)
	require.NotNil(t, execution.StatusCode)
	assert.Equal(t, http.StatusOK, *execution.StatusCode)

	assert.JSONEq(t, `{"test":true}`, string(gotBody))

	// Signature must match HMAC-SHA256 over the raw body
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	assert.Equal(t, "sha256="+hex.EncodeToString(mac.Sum(nil)), gotSignature)
}

func TestAutomationService_TriggerWebhook_RecordsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newFakeRepos()
	svc := newAutomationService(f)

	webhook, err := svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:  "Broken",
		URL:   server.URL,
		Event: "customer.created",
	})
	require.NoError(t, err)

	execution, err := svc.TriggerWebhook(context.Background(), webhook.ID, &request.WebhookTriggerRequest{})
	require.NoError(t, err)
	assert.False(t, execution.Success)
	require.NotNil(t, execution.Error)
	assert.Contains(t, *execution.Error, "502")

	executions, err := svc.ListExecutions(context.Background(), webhook.ID, 10)
	require.NoError(t, err)
	assert.Len(t, executions, 1)
}

func TestAutomationService_FireEvent(t *testing.T) {
	var calls int
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newFakeRepos()
	svc := newAutomationService(f)

	_, err := svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:  "CRM Sync",
		URL:   server.URL,
		Event: "customer.created",
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:     "Disabled",
		URL:      server.URL,
		Event:    "customer.created",
		IsActive: &inactive,
	})
	require.NoError(t, err)

	svc.FireEvent(context.Background(), "customer.created", map[string]string{"name": "Erika"})

	// Only the active webhook is delivered to
	assert.Equal(t, 1, calls)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &envelope))
	assert.Equal(t, "customer.created", envelope["event"])

	// No webhook for this event: nothing happens
	svc.FireEvent(context.Background(), "customer.deleted", nil)
	assert.Equal(t, 1, calls)
}

func TestAutomationService_CreateTask_InvalidCron(t *testing.T) {
	f := newFakeRepos()
	svc := newAutomationService(f)

	webhook, err := svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:  "CRM Sync",
		URL:   "https://example.com/hook",
		Event: "customer.created",
	})
	require.NoError(t, err)

	_, err = svc.CreateTask(context.Background(), &request.ScheduledTaskRequest{
		Name:      "Nightly sync",
		CronExpr:  "not a cron",
		WebhookID: webhook.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron expression")

	created, err := svc.CreateTask(context.Background(), &request.ScheduledTaskRequest{
		Name:      "Nightly sync",
		CronExpr:  "0 3 * * *",
		WebhookID: webhook.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "0 3 * * *", created.CronExpr)
	assert.True(t, created.IsActive)
}

func TestAutomationService_RunTask(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newFakeRepos()
	svc := newAutomationService(f)

	webhook, err := svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:  "CRM Sync",
		URL:   server.URL,
		Event: "customer.created",
	})
	require.NoError(t, err)

	created, err := svc.CreateTask(context.Background(), &request.ScheduledTaskRequest{
		Name:      "Nightly sync",
		CronExpr:  "0 3 * * *",
		WebhookID: webhook.ID,
		Payload:   json.RawMessage(`{"source":"cron"}`),
	})
	require.NoError(t, err)
	assert.Nil(t, created.LastRunAt)

	tasks, err := f.scheduledTask.FindActive(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	svc.RunTask(context.Background(), tasks[0])
	assert.Equal(t, 1, calls)

	// Last run timestamp is recorded
	task, err := f.scheduledTask.FindByID(context.Background(), tasks[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, task.LastRunAt)
}

type fakeTaskScheduler struct {
	scheduled   []*entity.ScheduledTask
	unscheduled []uuid.UUID
}

func (f *fakeTaskScheduler) ScheduleTask(task *entity.ScheduledTask) error {
	f.scheduled = append(f.scheduled, task)
	return nil
}

func (f *fakeTaskScheduler) UnscheduleTask(id uuid.UUID) {
	f.unscheduled = append(f.unscheduled, id)
}

func TestAutomationService_TaskLifecycle_NotifiesScheduler(t *testing.T) {
	f := newFakeRepos()
	svc := newAutomationService(f)
	sched := &fakeTaskScheduler{}
	svc.BindScheduler(sched)

	webhook, err := svc.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:  "CRM Sync",
		URL:   "https://example.com/hook",
		Event: "customer.created",
	})
	require.NoError(t, err)

	created, err := svc.CreateTask(context.Background(), &request.ScheduledTaskRequest{
		Name:      "Nightly sync",
		CronExpr:  "0 3 * * *",
		WebhookID: webhook.ID,
	})
	require.NoError(t, err)
	require.Len(t, sched.scheduled, 1)
	assert.Equal(t, created.ID, sched.scheduled[0].ID.String())

	// Deactivating removes the cron entry
	inactive := false
	_, err = svc.UpdateTask(context.Background(), created.ID, &request.ScheduledTaskUpdateRequest{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.Len(t, sched.unscheduled, 1)
	assert.Equal(t, created.ID, sched.unscheduled[0].String())

	// Reactivating with a new expression reregisters it
	active := true
	expr := "0 4 * * *"
	_, err = svc.UpdateTask(context.Background(), created.ID, &request.ScheduledTaskUpdateRequest{
		CronExpr: &expr,
		IsActive: &active,
	})
	require.NoError(t, err)
	require.Len(t, sched.scheduled, 2)
	assert.Equal(t, "0 4 * * *", sched.scheduled[1].CronExpr)

	require.NoError(t, svc.DeleteTask(context.Background(), created.ID))
	assert.Len(t, sched.unscheduled, 2)
}
