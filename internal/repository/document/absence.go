package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type absenceRepository struct {
	docs collection[absence.Absence]
}

func NewAbsenceRepository(store docstore.Store) absence.AbsenceRepository {
	return &absenceRepository{
		docs: newCollection[absence.Absence](store, Absences, absence.ErrAbsenceNotFound, "date"),
	}
}

func (r *absenceRepository) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	return r.docs.get(ctx, id)
}

func (r *absenceRepository) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.Absence, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, filter.CompanyID).
		OrderBy("date", docstore.Desc)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id", docstore.OpEqual, *filter.EmployeeID)
	}
	if filter.Sector != nil {
		q = q.Where("sector", docstore.OpEqual, *filter.Sector)
	}
	q = dateRange(q, "date", filter.From, filter.To)
	return r.docs.query(ctx, q)
}

func (r *absenceRepository) Create(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	return r.docs.create(ctx, a)
}

func (r *absenceRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
