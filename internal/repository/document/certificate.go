package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type certificateRepository struct {
	docs collection[certificate.Certificate]
}

func NewCertificateRepository(store docstore.Store) certificate.CertificateRepository {
	return &certificateRepository{
		docs: newCollection[certificate.Certificate](store, Certificates, certificate.ErrCertificateNotFound, "date"),
	}
}

func (r *certificateRepository) GetByID(ctx context.Context, id string) (certificate.Certificate, error) {
	return r.docs.get(ctx, id)
}

func (r *certificateRepository) List(ctx context.Context, filter certificate.CertificateFilter) ([]certificate.Certificate, error) {
	q := docstore.NewQuery().OrderBy("date", docstore.Desc)
	if filter.CompanyID != "" {
		q = q.Where("company_id", docstore.OpEqual, filter.CompanyID)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	if filter.Status != nil {
		q = q.Where("status", docstore.OpEqual, string(*filter.Status))
	}
	if filter.Psychosocial != nil {
		q = q.Where("psychosocial", docstore.OpEqual, *filter.Psychosocial)
	}
	q = dateRange(q, "date", filter.From, filter.To)
	return r.docs.query(ctx, q)
}

func (r *certificateRepository) Create(ctx context.Context, c certificate.Certificate) (certificate.Certificate, error) {
	return r.docs.create(ctx, c)
}

func (r *certificateRepository) UpdateStatus(ctx context.Context, id string, status certificate.Status) error {
	return r.docs.update(ctx, id, map[string]any{"status": string(status)})
}

// AppendFollowUp adds f to the history and moves the current stage.
func (r *certificateRepository) AppendFollowUp(ctx context.Context, id string, f certificate.FollowUp) error {
	return r.docs.update(ctx, id, map[string]any{
		"follow_ups": docstore.ArrayAppend(f),
		"stage":      string(f.Stage),
	})
}

func (r *certificateRepository) SetScan(ctx context.Context, id, key string) error {
	return r.docs.update(ctx, id, map[string]any{"scan_key": key})
}

func (r *certificateRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
