package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type entryRepository struct {
	docs collection[finance.Entry]
}

func NewEntryRepository(store docstore.Store) finance.EntryRepository {
	return &entryRepository{
		docs: newCollection[finance.Entry](store, FinancialEntries, finance.ErrEntryNotFound,
			"due_date", "paid_at"),
	}
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (finance.Entry, error) {
	return r.docs.get(ctx, id)
}

func (r *entryRepository) List(ctx context.Context, filter finance.EntryFilter) ([]finance.Entry, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, filter.CompanyID).
		OrderBy("due_date", docstore.Asc)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	if filter.Status != nil {
		q = q.Where("status", docstore.OpEqual, string(*filter.Status))
	}
	if filter.Origin != nil {
		q = q.Where("origin", docstore.OpEqual, string(*filter.Origin))
	}
	q = dateRange(q, "due_date", filter.DueFrom, filter.DueTo)
	return r.docs.query(ctx, q)
}

func (r *entryRepository) ListBySettlement(ctx context.Context, settlementID string) ([]finance.Entry, error) {
	return r.docs.query(ctx, docstore.NewQuery().Where("settlement_id", docstore.OpEqual, settlementID))
}

func (r *entryRepository) Create(ctx context.Context, e finance.Entry) (finance.Entry, error) {
	return r.docs.create(ctx, e)
}

func (r *entryRepository) Update(ctx context.Context, e finance.Entry) error {
	return r.docs.replace(ctx, e.ID, e)
}

func (r *entryRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
