package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	GetByCompanyID(ctx context.Context, companyID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, companyID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, companyID string) error
	MarkAllAsRead(ctx context.Context, companyID string) error
	Delete(ctx context.Context, id string, companyID string) error
}
