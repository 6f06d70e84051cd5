package response

import (
	"encoding/json"
	"time"

	"rising-bms/internal/data/entity"
)

type WebhookResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Event     string    `json:"event"`
	HasSecret bool      `json:"has_secret"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type WebhookExecutionResponse struct {
	ID         string    `json:"id"`
	Trigger    string    `json:"trigger"`
	StatusCode *int      `json:"status_code,omitempty"`
	Success    bool      `json:"success"`
	Error      *string   `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type ScheduledTaskResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CronExpr  string          `json:"cron_expr"`
	WebhookID string          `json:"webhook_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	IsActive  bool            `json:"is_active"`
	LastRunAt *time.Time      `json:"last_run_at,omitempty"`
}

// Helper converters
func WebhookToResponse(webhook *entity.Webhook) WebhookResponse {
	return WebhookResponse{
		ID:        webhook.ID.String(),
		Name:      webhook.Name,
		URL:       webhook.URL,
		Event:     webhook.Event,
		HasSecret: webhook.Secret != nil,
		IsActive:  webhook.IsActive,
		CreatedAt: webhook.CreatedAt,
	}
}

func WebhooksToResponse(webhooks []*entity.Webhook) []WebhookResponse {
	responses := make([]WebhookResponse, 0, len(webhooks))
	for _, webhook := range webhooks {
		responses = append(responses, WebhookToResponse(webhook))
	}
	return responses
}

func ExecutionToResponse(execution *entity.WebhookExecution) WebhookExecutionResponse {
	return WebhookExecutionResponse{
		ID:         execution.ID.String(),
		Trigger:    string(execution.Trigger),
		StatusCode: execution.StatusCode,
		Success:    execution.Success,
		Error:      execution.Error,
		DurationMS: execution.DurationMS,
		CreatedAt:  execution.CreatedAt,
	}
}

func ExecutionsToResponse(executions []*entity.WebhookExecution) []WebhookExecutionResponse {
	responses := make([]WebhookExecutionResponse, 0, len(executions))
	for _, execution := range executions {
		responses = append(responses, ExecutionToResponse(execution))
	}
	return responses
}

func ScheduledTaskToResponse(task *entity.ScheduledTask) ScheduledTaskResponse {
	return ScheduledTaskResponse{
		ID:        task.ID.String(),
		Name:      task.Name,
		CronExpr:  task.CronExpr,
		WebhookID: task.WebhookID.String(),
		Payload:   json.RawMessage(task.Payload),
		IsActive:  task.IsActive,
		LastRunAt: task.LastRunAt,
	}
}

func ScheduledTasksToResponse(tasks []*entity.ScheduledTask) []ScheduledTaskResponse {
	responses := make([]ScheduledTaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, ScheduledTaskToResponse(task))
	}
	return responses
}
