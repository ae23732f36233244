package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type overtimeRepository struct {
	docs collection[overtime.Entry]
}

func NewOvertimeRepository(store docstore.Store) overtime.EntryRepository {
	return &overtimeRepository{
		docs: newCollection[overtime.Entry](store, OvertimeEntries, overtime.ErrEntryNotFound,
			"date", "signed_at"),
	}
}

func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Entry, error) {
	return r.docs.get(ctx, id)
}

func (r *overtimeRepository) List(ctx context.Context, filter overtime.EntryFilter) ([]overtime.Entry, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, filter.CompanyID).
		OrderBy("date", docstore.Desc)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	if filter.Sector != nil {
		q = q.Where("sector", docstore.OpEqual, *filter.Sector)
	}
	if filter.Signed != nil {
		q = q.Where("signed", docstore.OpEqual, *filter.Signed)
	}
	q = dateRange(q, "date", filter.From, filter.To)
	return r.docs.query(ctx, q)
}

func (r *overtimeRepository) Create(ctx context.Context, e overtime.Entry) (overtime.Entry, error) {
	return r.docs.create(ctx, e)
}

func (r *overtimeRepository) Update(ctx context.Context, e overtime.Entry) error {
	return r.docs.replace(ctx, e.ID, e)
}

func (r *overtimeRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
