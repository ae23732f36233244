package leave

import "context"

type LeaveRepository interface {
	GetByID(ctx context.Context, id string) (Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, error)
	Create(ctx context.Context, l Leave) (Leave, error)
	Update(ctx context.Context, l Leave) error
	AttachCertificate(ctx context.Context, id, certificateID string) error
	DetachCertificate(ctx context.Context, id, certificateID string) error
}
