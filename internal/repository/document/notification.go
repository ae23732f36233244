package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type notificationRepository struct {
	store docstore.Store
	docs  collection[notification.Notification]
}

func NewNotificationRepository(store docstore.Store) notification.Repository {
	return &notificationRepository{
		store: store,
		docs: newCollection[notification.Notification](store, Notifications, notification.ErrNotificationNotFound,
			"read_at"),
	}
}

func notificationData(n *notification.Notification) (map[string]any, error) {
	data, err := docstore.Encode(n)
	if err != nil {
		return nil, err
	}
	data["created_at"] = docstore.ServerTimestamp
	return data, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	data, err := notificationData(n)
	if err != nil {
		return err
	}
	id, err := r.store.Add(ctx, Notifications, data)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// CreateBatch writes every notification in one batch and fills their ids.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	batch := docstore.NewBatch(r.store)
	ids := make([]string, len(notifications))
	for i, n := range notifications {
		data, err := notificationData(n)
		if err != nil {
			return err
		}
		ids[i] = batch.Add(Notifications, data)
	}
	if err := batch.Commit(ctx); err != nil {
		return err
	}
	for i, n := range notifications {
		n.ID = ids[i]
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	n, err := r.docs.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) GetByCompanyID(ctx context.Context, companyID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, companyID).
		OrderBy("created_at", docstore.Desc)
	if unreadOnly {
		q = q.Where("is_read", docstore.OpEqual, false)
	}

	all, err := r.docs.query(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	total := len(all)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]*notification.Notification, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, &all[i])
	}
	return out, total, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, companyID string) (int, error) {
	return r.docs.count(ctx, docstore.NewQuery().
		Where("company_id", docstore.OpEqual, companyID).
		Where("is_read", docstore.OpEqual, false))
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, companyID string) error {
	return r.store.RunTransaction(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			n, err := r.docs.get(ctx, id)
			if err != nil {
				return err
			}
			if n.CompanyID != companyID {
				return notification.ErrUnauthorized
			}
			if n.IsRead {
				continue
			}
			if err := r.docs.update(ctx, id, readPatch()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, companyID string) error {
	unread, err := r.store.Query(ctx, Notifications, docstore.NewQuery().
		Where("company_id", docstore.OpEqual, companyID).
		Where("is_read", docstore.OpEqual, false))
	if err != nil {
		return err
	}
	batch := docstore.NewBatch(r.store)
	for _, doc := range unread {
		batch.Update(Notifications, doc.ID, readPatch())
	}
	return batch.Commit(ctx)
}

func (r *notificationRepository) Delete(ctx context.Context, id string, companyID string) error {
	n, err := r.docs.get(ctx, id)
	if err != nil {
		return err
	}
	if n.CompanyID != companyID {
		return notification.ErrUnauthorized
	}
	return r.docs.delete(ctx, id)
}

func readPatch() map[string]any {
	return map[string]any{
		"is_read": true,
		"read_at": docstore.ServerTimestamp,
	}
}
