package company

import (
	"context"
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/fixtures"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cache"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCNPJ = "11222333000181"

type recomputeSpy struct {
	calls []string
}

func (r *recomputeSpy) RecomputeCosts(ctx context.Context, companyID string) (int, error) {
	r.calls = append(r.calls, companyID)
	return 0, nil
}

type fixture struct {
	svc          company.CompanyService
	employeeRepo employee.EmployeeRepository
	costs        *recomputeSpy
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	employeeRepo := document.NewEmployeeRepository(store)
	costs := &recomputeSpy{}
	svc := NewCompanyService(
		store,
		document.NewCompanyRepository(store),
		employeeRepo,
		cache.NewReadThrough[company.Company](cache.NewMemoryCache(), "company", time.Minute),
		costs,
	)
	return fixture{svc: svc, employeeRepo: employeeRepo, costs: costs}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, company.CreateCompanyRequest{Name: " Acme Ltda ", CNPJ: "11.222.333/0001-81"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme Ltda", created.Name)
	assert.Equal(t, testCNPJ, created.CNPJ)
	assert.Equal(t, fixtures.GetDefaultSectors(), created.Sectors)
	assert.Equal(t, fixtures.GetDefaultJobTitles(), created.JobTitles)
	assert.True(t, created.Tax.EmployerContributionEnabled)
	assert.True(t, created.Tax.RATRate.Equal(decimal.NewFromInt(2)))
}

func TestCreate_KeepsProvidedLists(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, company.CreateCompanyRequest{
		Name:      "Acme",
		CNPJ:      testCNPJ,
		Sectors:   []string{"Loja"},
		JobTitles: []string{"Vendedor"},
		Tax:       company.TaxConfigRequest{UnionDuesEnabled: true, RATRate: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Loja"}, created.Sectors)
	assert.Equal(t, []string{"Vendedor"}, created.JobTitles)
	assert.True(t, created.Tax.UnionDuesEnabled)
	assert.False(t, created.Tax.EmployerContributionEnabled)
}

func TestCreate_Rejects(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme", CNPJ: testCNPJ})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, company.CreateCompanyRequest{Name: "Other", CNPJ: testCNPJ})
	assert.ErrorIs(t, err, company.ErrCNPJExists)

	_, err = f.svc.Create(ctx, company.CreateCompanyRequest{Name: "", CNPJ: "123"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "name")
	assert.Contains(t, verrs.ToMap(), "cnpj")
}

func TestUpdate_TaxChangeRecomputesCosts(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme", CNPJ: testCNPJ})
	require.NoError(t, err)

	// warm the cache
	_, err = f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	name := "Acme Indústria"
	_, err = f.svc.Update(ctx, created.ID, company.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, f.costs.calls)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)

	_, err = f.svc.Update(ctx, created.ID, company.UpdateCompanyRequest{
		Tax: &company.TaxConfigRequest{UnionDuesEnabled: true, RATRate: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, f.costs.calls)

	got, err = f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Tax.UnionDuesEnabled)
}

func TestDelete_BlockedByEmployees(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme", CNPJ: testCNPJ})
	require.NoError(t, err)

	e, err := f.employeeRepo.Create(ctx, employee.Employee{Name: "Ana", CompanyID: created.ID, Status: employee.StatusActive})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID), company.ErrCompanyHasEmployees)

	require.NoError(t, f.employeeRepo.Delete(ctx, e.ID))
	require.NoError(t, f.svc.Delete(ctx, created.ID))

	_, err = f.svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID), company.ErrCompanyNotFound)
}
