package models

import "time"

// Notification types. Warnings and errors stay on screen until dismissed;
// success and info messages auto-close.
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

const PriorityHigh = "high"

// Notification is an ephemeral user-visible message. Notifications live
// in memory only and are destroyed on dismissal or timer expiry.
type Notification struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	Title               string    `json:"title"`
	Message             string    `json:"message"`
	CreatedAt           time.Time `json:"created_at"`
	AutoClose           bool      `json:"auto_close"`
	Duration            int       `json:"duration_ms"` // 0 = manual dismiss only
	Priority            string    `json:"priority,omitempty"`
	IsLimitNotification bool      `json:"is_limit_notification"`
}

// NotifyOptions overrides the per-type defaults when publishing.
// Nil pointer fields fall back to DefaultAutoClose/DefaultDuration.
type NotifyOptions struct {
	AutoClose           *bool
	Duration            *int
	Priority            string
	IsLimitNotification bool
}

// DefaultDuration returns the auto-close delay in milliseconds for a
// notification type. Zero means the notification never auto-closes.
func DefaultDuration(notificationType string) int {
	switch notificationType {
	case NotificationSuccess:
		return 3000
	case NotificationWarning, NotificationError:
		return 0
	default:
		return 5000
	}
}

// DefaultAutoClose reports whether a notification type closes on its own.
func DefaultAutoClose(notificationType string) bool {
	return DefaultDuration(notificationType) > 0
}
