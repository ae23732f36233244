package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/fixtures"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cache"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

// CostRecomputer refreshes the derived employee costs of a company.
type CostRecomputer interface {
	RecomputeCosts(ctx context.Context, companyID string) (int, error)
}

type CompanyServiceImpl struct {
	store        docstore.Transactor
	companyRepo  company.CompanyRepository
	employeeRepo employee.EmployeeRepository
	companies    *cache.ReadThrough[company.Company]
	costs        CostRecomputer
}

func NewCompanyService(
	store docstore.Transactor,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	companies *cache.ReadThrough[company.Company],
	costs CostRecomputer,
) company.CompanyService {
	return &CompanyServiceImpl{
		store:        store,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		companies:    companies,
		costs:        costs,
	}
}

// List implements company.CompanyService.
func (c *CompanyServiceImpl) List(ctx context.Context) ([]company.Company, error) {
	companies, err := c.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Create implements company.CompanyService.
func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}

	newCompany := company.Company{
		Name:      strings.TrimSpace(req.Name),
		CNPJ:      validator.OnlyDigits(req.CNPJ),
		Sectors:   trimNames(req.Sectors),
		JobTitles: trimNames(req.JobTitles),
		Tax:       req.Tax.ToConfig(),
	}
	if req.Tax == (company.TaxConfigRequest{}) {
		newCompany.Tax = fixtures.GetDefaultTaxConfig()
	}
	fixtures.ApplyCompanyDefaults(&newCompany)

	var created company.Company
	err := c.store.RunTransaction(ctx, func(ctx context.Context) error {
		exists, err := c.companyRepo.ExistsByCNPJ(ctx, newCompany.CNPJ, "")
		if err != nil {
			return fmt.Errorf("failed to check cnpj: %w", err)
		}
		if exists {
			return company.ErrCNPJExists
		}

		created, err = c.companyRepo.Create(ctx, newCompany)
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		return nil
	})
	if err != nil {
		return company.Company{}, err
	}

	slog.Info("Company created", "company_id", created.ID, "sectors", len(created.Sectors), "job_titles", len(created.JobTitles))
	return created, nil
}

// GetByID implements company.CompanyService.
func (c *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	return c.companies.Get(ctx, id, func(ctx context.Context) (company.Company, error) {
		return c.companyRepo.GetByID(ctx, id)
	})
}

// Update implements company.CompanyService. A tax change recomputes the cost
// of every employee of the company.
func (c *CompanyServiceImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}

	var (
		updated    company.Company
		taxChanged bool
	)
	err := c.store.RunTransaction(ctx, func(ctx context.Context) error {
		current, err := c.companyRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			current.Name = strings.TrimSpace(*req.Name)
		}
		if req.CNPJ != nil {
			cnpj := validator.OnlyDigits(*req.CNPJ)
			exists, err := c.companyRepo.ExistsByCNPJ(ctx, cnpj, id)
			if err != nil {
				return fmt.Errorf("failed to check cnpj: %w", err)
			}
			if exists {
				return company.ErrCNPJExists
			}
			current.CNPJ = cnpj
		}
		if req.Sectors != nil {
			current.Sectors = trimNames(req.Sectors)
		}
		if req.JobTitles != nil {
			current.JobTitles = trimNames(req.JobTitles)
		}
		if req.Tax != nil {
			current.Tax = req.Tax.ToConfig()
			taxChanged = true
		}

		if err := c.companyRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update company: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return company.Company{}, err
	}

	if err := c.companies.Invalidate(ctx, id); err != nil {
		slog.Warn("Failed to invalidate company cache", "company_id", id, "error", err)
	}

	if taxChanged && c.costs != nil {
		n, err := c.costs.RecomputeCosts(ctx, id)
		if err != nil {
			return updated, fmt.Errorf("company updated, but failed to recompute employee costs: %w", err)
		}
		slog.Info("Recomputed employee costs", "company_id", id, "employees", n)
	}

	return updated, nil
}

// Delete implements company.CompanyService.
func (c *CompanyServiceImpl) Delete(ctx context.Context, id string) error {
	err := c.store.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := c.companyRepo.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := c.employeeRepo.CountByCompany(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		if n > 0 {
			return company.ErrCompanyHasEmployees
		}
		return c.companyRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) || errors.Is(err, company.ErrCompanyHasEmployees) {
			return err
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	if err := c.companies.Invalidate(ctx, id); err != nil {
		slog.Warn("Failed to invalidate company cache", "company_id", id, "error", err)
	}
	return nil
}

func trimNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSpace(n))
	}
	return out
}
