package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification references its interview by id. The message embeds the
// interview title for display only and is never parsed.
type Notification struct {
	NotificationID uuid.UUID          `json:"notification_id" db:"notification_id"`
	UserID         uuid.UUID          `json:"user_id" db:"user_id"`
	InterviewID    uuid.UUID          `json:"interview_id" db:"interview_id"`
	Message        string             `json:"message" db:"message"`
	Status         NotificationStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
}
