package notification

import (
	"context"
)

// Notifier is the sink business services report events to.
type Notifier interface {
	Notify(ctx context.Context, req CreateNotificationRequest) error
}

// Service defines the notification service interface
type Service interface {
	Notifier

	GetNotifications(ctx context.Context, companyID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, companyID string) (int, error)
	MarkAsRead(ctx context.Context, companyID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, companyID string) error
	Delete(ctx context.Context, companyID string, notificationID string) error

	// SSE subscription
	Subscribe(ctx context.Context, companyID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
