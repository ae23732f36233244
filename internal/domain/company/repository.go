package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	ExistsByCNPJ(ctx context.Context, cnpj string, excludeID string) (bool, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, c Company) error
	Delete(ctx context.Context, id string) error
}
