package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type leaveRepository struct {
	docs collection[leave.Leave]
}

func NewLeaveRepository(store docstore.Store) leave.LeaveRepository {
	return &leaveRepository{
		docs: newCollection[leave.Leave](store, Leaves, leave.ErrLeaveNotFound,
			"start_date", "expected_end_date", "end_date", "referral_date", "exam_date"),
	}
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	return r.docs.get(ctx, id)
}

func (r *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	q := docstore.NewQuery().OrderBy("start_date", docstore.Desc)
	if filter.CompanyID != "" {
		q = q.Where("company_id", docstore.OpEqual, filter.CompanyID)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	if filter.Status != nil {
		q = q.Where("status", docstore.OpEqual, string(*filter.Status))
	}
	if filter.ReferralStatus != nil {
		q = q.Where("referral_status", docstore.OpEqual, string(*filter.ReferralStatus))
	}
	if filter.HasExam {
		q = q.Where("exam_date", docstore.OpNotEqual, nil)
	}
	return r.docs.query(ctx, q)
}

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	return r.docs.create(ctx, l)
}

func (r *leaveRepository) Update(ctx context.Context, l leave.Leave) error {
	return r.docs.replace(ctx, l.ID, l)
}

func (r *leaveRepository) AttachCertificate(ctx context.Context, id, certificateID string) error {
	return r.docs.update(ctx, id, map[string]any{
		"certificate_ids": docstore.ArrayUnion(certificateID),
	})
}

func (r *leaveRepository) DetachCertificate(ctx context.Context, id, certificateID string) error {
	return r.docs.update(ctx, id, map[string]any{
		"certificate_ids": docstore.ArrayRemove(certificateID),
	})
}
