package certificate

import "context"

type CertificateRepository interface {
	GetByID(ctx context.Context, id string) (Certificate, error)
	List(ctx context.Context, filter CertificateFilter) ([]Certificate, error)
	Create(ctx context.Context, c Certificate) (Certificate, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	AppendFollowUp(ctx context.Context, id string, f FollowUp) error
	SetScan(ctx context.Context, id, key string) error
	Delete(ctx context.Context, id string) error
}
