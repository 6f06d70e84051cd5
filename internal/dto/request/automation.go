package request

import "encoding/json"

type WebhookRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	URL      string  `json:"url" validate:"required,url"`
	Event    string  `json:"event" validate:"required,min=2,max=100"`
	Secret   *string `json:"secret,omitempty" validate:"omitempty,min=8,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type WebhookUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	URL      *string `json:"url,omitempty" validate:"omitempty,url"`
	Event    *string `json:"event,omitempty" validate:"omitempty,min=2,max=100"`
	Secret   *string `json:"secret,omitempty" validate:"omitempty,min=8,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type WebhookTriggerRequest struct {
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ScheduledTaskRequest struct {
	Name      string          `json:"name" validate:"required,min=2,max=200"`
	CronExpr  string          `json:"cron_expr" validate:"required,min=9,max=100"`
	WebhookID string          `json:"webhook_id" validate:"required,uuid4"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	IsActive  *bool           `json:"is_active,omitempty"`
}

type ScheduledTaskUpdateRequest struct {
	Name     *string         `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	CronExpr *string         `json:"cron_expr,omitempty" validate:"omitempty,min=9,max=100"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	IsActive *bool           `json:"is_active,omitempty"`
}
