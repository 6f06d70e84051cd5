package response

import (
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/locale"
)

type NotificationResponse struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	ReferenceType *string    `json:"reference_type,omitempty"`
	ReferenceID   *string    `json:"reference_id,omitempty"`
	IsRead        bool       `json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     string     `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// Helper converters
func NotificationToResponse(notification *entity.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:            notification.ID.String(),
		Type:          string(notification.Type),
		Title:         notification.Title,
		Message:       notification.Message,
		ReferenceType: notification.ReferenceType,
		IsRead:        notification.IsRead,
		ReadAt:        notification.ReadAt,
		CreatedAt:     locale.FormatDateTime(notification.CreatedAt),
	}

	if notification.ReferenceID != nil {
		referenceID := notification.ReferenceID.String()
		resp.ReferenceID = &referenceID
	}

	return resp
}

func NotificationsToResponse(notifications []*entity.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NotificationToResponse(notification))
	}
	return responses
}
