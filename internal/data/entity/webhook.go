package entity

import (
	"time"

	"github.com/google/uuid"
)

type Webhook struct {
	Base
	Name     string  `db:"name"`
	URL      string  `db:"url"`
	Event    string  `db:"event"`
	Secret   *string `db:"secret"`
	IsActive bool    `db:"is_active"`
}

type WebhookTrigger string

const (
	TriggerEvent    WebhookTrigger = "event"
	TriggerManual   WebhookTrigger = "manual"
	TriggerSchedule WebhookTrigger = "schedule"
)

type WebhookExecution struct {
	BaseSimple
	WebhookID  uuid.UUID      `db:"webhook_id"`
	Trigger    WebhookTrigger `db:"trigger"`
	StatusCode *int           `db:"status_code"`
	Success    bool           `db:"success"`
	Error      *string        `db:"error"`
	DurationMS int64          `db:"duration_ms"`
}

type ScheduledTask struct {
	Base
	Name      string     `db:"name"`
	CronExpr  string     `db:"cron_expr"`
	WebhookID uuid.UUID  `db:"webhook_id"`
	Payload   []byte     `db:"payload"` // raw JSON sent to the webhook
	IsActive  bool       `db:"is_active"`
	LastRunAt *time.Time `db:"last_run_at"`
}
