package document

import (
	"context"
	"strings"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type employeeRepository struct {
	docs collection[employee.Employee]
}

func NewEmployeeRepository(store docstore.Store) employee.EmployeeRepository {
	return &employeeRepository{
		docs: newCollection[employee.Employee](store, Employees, employee.ErrEmployeeNotFound,
			"admission_date", "termination_date"),
	}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.docs.get(ctx, id)
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := docstore.NewQuery().
		Where("company_id", docstore.OpEqual, filter.CompanyID).
		OrderBy("name", docstore.Asc)
	if filter.Status != nil {
		q = q.Where("status", docstore.OpEqual, string(*filter.Status))
	}
	if filter.Sector != nil {
		q = q.Where("sector", docstore.OpEqual, *filter.Sector)
	}

	employees, err := r.docs.query(ctx, q)
	if err != nil {
		return nil, err
	}
	if filter.Search == nil || strings.TrimSpace(*filter.Search) == "" {
		return employees, nil
	}

	// name/cpf search has no index; filter in process
	term := strings.ToLower(strings.TrimSpace(*filter.Search))
	matched := employees[:0]
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), term) || strings.Contains(e.CPF, term) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (r *employeeRepository) ExistsByCPF(ctx context.Context, companyID, cpf, excludeID string) (bool, error) {
	found, err := r.docs.query(ctx, docstore.NewQuery().
		Where("company_id", docstore.OpEqual, companyID).
		Where("cpf", docstore.OpEqual, cpf))
	if err != nil {
		return false, err
	}
	for _, e := range found {
		if e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *employeeRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	return r.docs.count(ctx, docstore.NewQuery().Where("company_id", docstore.OpEqual, companyID))
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	return r.docs.create(ctx, newEmployee)
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	return r.docs.replace(ctx, e.ID, e)
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
