package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/movement"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type movementRepository struct {
	docs collection[movement.Movement]
}

func NewMovementRepository(store docstore.Store) movement.MovementRepository {
	return &movementRepository{
		docs: newCollection[movement.Movement](store, Movements, movement.ErrMovementNotFound,
			"date", "before.termination_date"),
	}
}

func (r *movementRepository) GetByID(ctx context.Context, id string) (movement.Movement, error) {
	return r.docs.get(ctx, id)
}

func (r *movementRepository) List(ctx context.Context, filter movement.MovementFilter) ([]movement.Movement, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, filter.CompanyID).
		OrderBy("date", docstore.Desc).
		OrderBy("created_at", docstore.Desc)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	if filter.Type != nil {
		q = q.Where("type", docstore.OpEqual, string(*filter.Type))
	}
	q = dateRange(q, "date", filter.From, filter.To)
	return r.docs.query(ctx, q)
}

// LatestForEmployee returns the most recently recorded movement across
// companies. Ids are time ordered and break created_at ties.
func (r *movementRepository) LatestForEmployee(ctx context.Context, employeeID string) (movement.Movement, error) {
	found, err := r.docs.query(ctx, docstore.NewQuery().Where("employee_id", docstore.OpEqual, employeeID))
	if err != nil {
		return movement.Movement{}, err
	}
	if len(found) == 0 {
		return movement.Movement{}, movement.ErrMovementNotFound
	}

	latest := found[0]
	for _, m := range found[1:] {
		if m.CreatedAt.After(latest.CreatedAt) || (m.CreatedAt.Equal(latest.CreatedAt) && m.ID > latest.ID) {
			latest = m
		}
	}
	return latest, nil
}

func (r *movementRepository) Create(ctx context.Context, m movement.Movement) (movement.Movement, error) {
	return r.docs.create(ctx, m)
}

func (r *movementRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
