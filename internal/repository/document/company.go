package document

import (
	"context"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
)

type companyRepository struct {
	docs collection[company.Company]
}

func NewCompanyRepository(store docstore.Store) company.CompanyRepository {
	return &companyRepository{docs: newCollection[company.Company](store, Companies, company.ErrCompanyNotFound)}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	return r.docs.get(ctx, id)
}

func (r *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	return r.docs.query(ctx, docstore.NewQuery().OrderBy("name", docstore.Asc))
}

func (r *companyRepository) ExistsByCNPJ(ctx context.Context, cnpj string, excludeID string) (bool, error) {
	found, err := r.docs.query(ctx, docstore.NewQuery().Where("cnpj", docstore.OpEqual, cnpj))
	if err != nil {
		return false, err
	}
	for _, c := range found {
		if c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *companyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	return r.docs.create(ctx, newCompany)
}

func (r *companyRepository) Update(ctx context.Context, c company.Company) error {
	return r.docs.replace(ctx, c.ID, c)
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}
