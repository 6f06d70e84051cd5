package usecase

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/metrics"
	"rising-bms/pkg/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AutomationService manages outgoing webhooks and the cron-driven
// scheduled tasks that fire them.
type AutomationService interface {
	CreateWebhook(ctx context.Context, req *request.WebhookRequest) (*response.WebhookResponse, error)
	GetWebhook(ctx context.Context, id string) (*response.WebhookResponse, error)
	ListWebhooks(ctx context.Context) ([]response.WebhookResponse, error)
	UpdateWebhook(ctx context.Context, id string, req *request.WebhookUpdateRequest) (*response.WebhookResponse, error)
	DeleteWebhook(ctx context.Context, id string) error
	TriggerWebhook(ctx context.Context, id string, req *request.WebhookTriggerRequest) (*response.WebhookExecutionResponse, error)
	ListExecutions(ctx context.Context, webhookID string, limit int) ([]response.WebhookExecutionResponse, error)

	CreateTask(ctx context.Context, req *request.ScheduledTaskRequest) (*response.ScheduledTaskResponse, error)
	ListTasks(ctx context.Context) ([]response.ScheduledTaskResponse, error)
	UpdateTask(ctx context.Context, id string, req *request.ScheduledTaskUpdateRequest) (*response.ScheduledTaskResponse, error)
	DeleteTask(ctx context.Context, id string) error

	// FireEvent delivers a payload to every active webhook registered
	// for the event.
	FireEvent(ctx context.Context, event string, payload any)
	// RunTask fires the webhook behind a scheduled task. Called by the
	// cron scheduler.
	RunTask(ctx context.Context, task *entity.ScheduledTask)

	// BindScheduler attaches the cron scheduler so task create, update
	// and delete take effect without a restart.
	BindScheduler(sched TaskScheduler)
}

// TaskScheduler is the cron loop the automation service notifies when
// scheduled tasks change.
type TaskScheduler interface {
	ScheduleTask(task *entity.ScheduledTask) error
	UnscheduleTask(id uuid.UUID)
}

type automationService struct {
	repo      *repository.Repository
	config    *utils.Config
	client    *http.Client
	scheduler TaskScheduler
	log       *zap.Logger
}

func NewAutomationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AutomationService {
	return &automationService{
		repo:   repo,
		config: config,
		client: &http.Client{
			Timeout: time.Duration(config.Webhook.TimeoutSeconds) * time.Second,
		},
		log: log,
	}
}

func (s *automationService) BindScheduler(sched TaskScheduler) {
	s.scheduler = sched
}

func (s *automationService) CreateWebhook(ctx context.Context, req *request.WebhookRequest) (*response.WebhookResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	webhook := &entity.Webhook{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		URL:      req.URL,
		Event:    req.Event,
		Secret:   req.Secret,
		IsActive: true,
	}
	if req.IsActive != nil {
		webhook.IsActive = *req.IsActive
	}

	if err := s.repo.Webhook.Create(ctx, webhook); err != nil {
		s.log.Error("Failed to create webhook", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create webhook")
	}

	s.log.Info("Webhook created",
		zap.String("webhook_id", webhook.ID.String()),
		zap.String("event", webhook.Event))

	resp := response.WebhookToResponse(webhook)
	return &resp, nil
}

func (s *automationService) GetWebhook(ctx context.Context, id string) (*response.WebhookResponse, error) {
	webhook, err := s.findWebhook(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.WebhookToResponse(webhook)
	return &resp, nil
}

func (s *automationService) ListWebhooks(ctx context.Context) ([]response.WebhookResponse, error) {
	webhooks, err := s.repo.Webhook.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list webhooks", zap.Error(err))
		return nil, fmt.Errorf("failed to load webhooks")
	}

	return response.WebhooksToResponse(webhooks), nil
}

func (s *automationService) UpdateWebhook(ctx context.Context, id string, req *request.WebhookUpdateRequest) (*response.WebhookResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	webhook, err := s.findWebhook(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		webhook.Name = *req.Name
	}
	if req.URL != nil {
		webhook.URL = *req.URL
	}
	if req.Event != nil {
		webhook.Event = *req.Event
	}
	if req.Secret != nil {
		webhook.Secret = req.Secret
	}
	if req.IsActive != nil {
		webhook.IsActive = *req.IsActive
	}
	webhook.UpdatedAt = time.Now()

	if err := s.repo.Webhook.Update(ctx, webhook); err != nil {
		s.log.Error("Failed to update webhook", zap.Error(err), zap.String("webhook_id", id))
		return nil, fmt.Errorf("failed to update webhook")
	}

	resp := response.WebhookToResponse(webhook)
	return &resp, nil
}

func (s *automationService) DeleteWebhook(ctx context.Context, id string) error {
	webhook, err := s.findWebhook(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Webhook.Delete(ctx, webhook.ID); err != nil {
		s.log.Error("Failed to delete webhook", zap.Error(err), zap.String("webhook_id", id))
		return fmt.Errorf("failed to delete webhook")
	}

	s.log.Info("Webhook deleted", zap.String("webhook_id", id))
	return nil
}

func (s *automationService) TriggerWebhook(ctx context.Context, id string, req *request.WebhookTriggerRequest) (*response.WebhookExecutionResponse, error) {
	webhook, err := s.findWebhook(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := []byte(`{}`)
	if len(req.Payload) > 0 {
		payload = req.Payload
	}

	execution := s.deliver(ctx, webhook, entity.TriggerManual, payload)

	resp := response.ExecutionToResponse(execution)
	return &resp, nil
}

func (s *automationService) ListExecutions(ctx context.Context, webhookID string, limit int) ([]response.WebhookExecutionResponse, error) {
	webhook, err := s.findWebhook(ctx, webhookID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}

	executions, err := s.repo.Webhook.FindExecutions(ctx, webhook.ID, limit)
	if err != nil {
		s.log.Error("Failed to list executions", zap.Error(err), zap.String("webhook_id", webhookID))
		return nil, fmt.Errorf("failed to load executions")
	}

	return response.ExecutionsToResponse(executions), nil
}

func (s *automationService) CreateTask(ctx context.Context, req *request.ScheduledTaskRequest) (*response.ScheduledTaskResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if _, err := cron.ParseStandard(req.CronExpr); err != nil {
		return nil, fmt.Errorf("invalid cron expression")
	}

	webhookID, err := utils.ParseUUID(req.WebhookID)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook ID")
	}
	webhook, err := s.repo.Webhook.FindByID(ctx, webhookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load webhook")
	}
	if webhook == nil {
		return nil, fmt.Errorf("webhook not found")
	}

	now := time.Now()
	task := &entity.ScheduledTask{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		CronExpr:  req.CronExpr,
		WebhookID: webhookID,
		Payload:   []byte(req.Payload),
		IsActive:  true,
	}
	if req.IsActive != nil {
		task.IsActive = *req.IsActive
	}

	if err := s.repo.ScheduledTask.Create(ctx, task); err != nil {
		s.log.Error("Failed to create scheduled task", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create task")
	}

	s.log.Info("Scheduled task created",
		zap.String("task_id", task.ID.String()),
		zap.String("cron", task.CronExpr))

	if s.scheduler != nil && task.IsActive {
		if err := s.scheduler.ScheduleTask(task); err != nil {
			s.log.Error("Failed to register task with scheduler",
				zap.Error(err), zap.String("task_id", task.ID.String()))
		}
	}

	resp := response.ScheduledTaskToResponse(task)
	return &resp, nil
}

func (s *automationService) ListTasks(ctx context.Context) ([]response.ScheduledTaskResponse, error) {
	tasks, err := s.repo.ScheduledTask.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list scheduled tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to load tasks")
	}

	return response.ScheduledTasksToResponse(tasks), nil
}

func (s *automationService) UpdateTask(ctx context.Context, id string, req *request.ScheduledTaskUpdateRequest) (*response.ScheduledTaskResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	taskID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID")
	}

	task, err := s.repo.ScheduledTask.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task")
	}
	if task == nil {
		return nil, fmt.Errorf("task not found")
	}

	if req.CronExpr != nil {
		if _, err := cron.ParseStandard(*req.CronExpr); err != nil {
			return nil, fmt.Errorf("invalid cron expression")
		}
		task.CronExpr = *req.CronExpr
	}
	if req.Name != nil {
		task.Name = *req.Name
	}
	if len(req.Payload) > 0 {
		task.Payload = []byte(req.Payload)
	}
	if req.IsActive != nil {
		task.IsActive = *req.IsActive
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.ScheduledTask.Update(ctx, task); err != nil {
		s.log.Error("Failed to update scheduled task", zap.Error(err), zap.String("task_id", id))
		return nil, fmt.Errorf("failed to update task")
	}

	if s.scheduler != nil {
		if task.IsActive {
			if err := s.scheduler.ScheduleTask(task); err != nil {
				s.log.Error("Failed to reregister task with scheduler",
					zap.Error(err), zap.String("task_id", id))
			}
		} else {
			s.scheduler.UnscheduleTask(task.ID)
		}
	}

	resp := response.ScheduledTaskToResponse(task)
	return &resp, nil
}

func (s *automationService) DeleteTask(ctx context.Context, id string) error {
	taskID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid task ID")
	}

	task, err := s.repo.ScheduledTask.FindByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task")
	}
	if task == nil {
		return fmt.Errorf("task not found")
	}

	if err := s.repo.ScheduledTask.Delete(ctx, taskID); err != nil {
		s.log.Error("Failed to delete scheduled task", zap.Error(err), zap.String("task_id", id))
		return fmt.Errorf("failed to delete task")
	}

	if s.scheduler != nil {
		s.scheduler.UnscheduleTask(taskID)
	}

	return nil
}

func (s *automationService) FireEvent(ctx context.Context, event string, payload any) {
	webhooks, err := s.repo.Webhook.FindActiveByEvent(ctx, event)
	if err != nil {
		s.log.Warn("Failed to load webhooks for event", zap.Error(err), zap.String("event", event))
		return
	}
	if len(webhooks) == 0 {
		return
	}

	body, err := json.Marshal(map[string]any{
		"event":     event,
		"timestamp": time.Now().Format(time.RFC3339),
		"data":      payload,
	})
	if err != nil {
		s.log.Warn("Failed to encode webhook payload", zap.Error(err), zap.String("event", event))
		return
	}

	for _, webhook := range webhooks {
		s.deliver(ctx, webhook, entity.TriggerEvent, body)
	}
}

func (s *automationService) RunTask(ctx context.Context, task *entity.ScheduledTask) {
	webhook, err := s.repo.Webhook.FindByID(ctx, task.WebhookID)
	if err != nil || webhook == nil {
		s.log.Warn("Scheduled task points to missing webhook",
			zap.String("task_id", task.ID.String()),
			zap.String("webhook_id", task.WebhookID.String()),
		)
		return
	}
	if !webhook.IsActive {
		return
	}

	payload := task.Payload
	if len(payload) == 0 {
		payload = []byte(`{}`)
	}

	s.deliver(ctx, webhook, entity.TriggerSchedule, payload)

	if err := s.repo.ScheduledTask.TouchLastRun(ctx, task.ID, time.Now()); err != nil {
		s.log.Warn("Failed to record task run", zap.Error(err), zap.String("task_id", task.ID.String()))
	}
}

// deliver posts the payload and records the execution outcome. Delivery
// failures are recorded, never propagated.
func (s *automationService) deliver(ctx context.Context, webhook *entity.Webhook, trigger entity.WebhookTrigger, payload []byte) *entity.WebhookExecution {
	execution := &entity.WebhookExecution{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		WebhookID: webhook.ID,
		Trigger:   trigger,
	}

	start := time.Now()
	statusCode, err := s.post(ctx, webhook, payload)
	execution.DurationMS = time.Since(start).Milliseconds()

	if statusCode > 0 {
		execution.StatusCode = &statusCode
	}
	if err != nil {
		msg := err.Error()
		execution.Error = &msg
		s.log.Warn("Webhook delivery failed",
			zap.Error(err),
			zap.String("webhook_id", webhook.ID.String()),
			zap.String("url", webhook.URL),
		)
	} else if statusCode >= 200 && statusCode < 300 {
		execution.Success = true
	} else {
		msg := fmt.Sprintf("unexpected status %d", statusCode)
		execution.Error = &msg
	}

	metrics.ObserveWebhookExecution(execution.Success)

	if err := s.repo.Webhook.RecordExecution(ctx, execution); err != nil {
		s.log.Warn("Failed to record webhook execution", zap.Error(err))
	}

	return execution
}

func (s *automationService) post(ctx context.Context, webhook *entity.Webhook, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if webhook.Secret != nil && *webhook.Secret != "" {
		mac := hmac.New(sha256.New, []byte(*webhook.Secret))
		mac.Write(payload)
		req.Header.Set("X-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

func (s *automationService) findWebhook(ctx context.Context, id string) (*entity.Webhook, error) {
	webhookID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook ID")
	}

	webhook, err := s.repo.Webhook.FindByID(ctx, webhookID)
	if err != nil {
		s.log.Error("Failed to find webhook", zap.Error(err), zap.String("webhook_id", id))
		return nil, fmt.Errorf("failed to load webhook")
	}
	if webhook == nil {
		return nil, fmt.Errorf("webhook not found")
	}

	return webhook, nil
}
