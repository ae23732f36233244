package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type settlementRepository struct {
	docs collection[settlement.Settlement]
}

func NewSettlementRepository(store docstore.Store) settlement.SettlementRepository {
	return &settlementRepository{
		docs: newCollection[settlement.Settlement](store, Settlements, settlement.ErrSettlementNotFound,
			"admission_date", "termination_date"),
	}
}

func (r *settlementRepository) GetByID(ctx context.Context, id string) (settlement.Settlement, error) {
	return r.docs.get(ctx, id)
}

func (r *settlementRepository) List(ctx context.Context, filter settlement.SettlementFilter) ([]settlement.Settlement, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, filter.CompanyID).
		OrderBy("termination_date", docstore.Desc)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	return r.docs.query(ctx, q)
}

func (r *settlementRepository) Create(ctx context.Context, s settlement.Settlement) (settlement.Settlement, error) {
	return r.docs.create(ctx, s)
}

func (r *settlementRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
