package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/movement"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/payroll"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cache"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	store          docstore.Transactor
	employeeRepo   employee.EmployeeRepository
	companyRepo    company.CompanyRepository
	movementRepo   movement.MovementRepository
	settlementRepo settlement.SettlementRepository
	companies      *cache.ReadThrough[company.Company]
}

func NewEmployeeService(
	store docstore.Transactor,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	movementRepo movement.MovementRepository,
	settlementRepo settlement.SettlementRepository,
	companies *cache.ReadThrough[company.Company],
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		store:          store,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		movementRepo:   movementRepo,
		settlementRepo: settlementRepo,
		companies:      companies,
	}
}

func (s *EmployeeServiceImpl) company(ctx context.Context, companyID string) (company.Company, error) {
	return s.companies.Get(ctx, companyID, func(ctx context.Context) (company.Company, error) {
		return s.companyRepo.GetByID(ctx, companyID)
	})
}

// employeeOf loads id and hides employees of other companies.
func (s *EmployeeServiceImpl) employeeOf(ctx context.Context, companyID, id string) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func withCost(e *employee.Employee, c company.Company) {
	e.CostTotal = payroll.EmployerCost(*e, c).Total
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	c, err := s.company(ctx, companyID)
	if err != nil {
		return employee.Employee{}, err
	}
	sector := strings.TrimSpace(req.Sector)
	jobTitle := strings.TrimSpace(req.JobTitle)
	if !c.HasSector(sector) {
		return employee.Employee{}, company.ErrUnknownSector
	}
	if !c.HasJobTitle(jobTitle) {
		return employee.Employee{}, company.ErrUnknownJobTitle
	}

	newEmployee := employee.Employee{
		Name:           strings.TrimSpace(req.Name),
		CPF:            validator.OnlyDigits(req.CPF),
		CompanyID:      companyID,
		Sector:         sector,
		JobTitle:       jobTitle,
		AdmissionDate:  req.Admission(),
		Salary:         req.Salary,
		OffBooksSalary: req.OffBooksSalary,
		Status:         employee.StatusActive,
		Benefits:       req.Benefits,
	}
	withCost(&newEmployee, c)

	var created employee.Employee
	err = s.store.RunTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.employeeRepo.ExistsByCPF(ctx, companyID, newEmployee.CPF, "")
		if err != nil {
			return fmt.Errorf("failed to check cpf: %w", err)
		}
		if exists {
			return employee.ErrCPFExists
		}
		created, err = s.employeeRepo.Create(ctx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "company_id", companyID, "cost_total", created.CostTotal.StringFixed(2))
	return created, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, companyID, id string) (employee.Employee, error) {
	return s.employeeOf(ctx, companyID, id)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// UpdateEmployee implements employee.EmployeeService. Salary, sector and job
// title have dedicated operations that keep their history.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	c, err := s.company(ctx, companyID)
	if err != nil {
		return employee.Employee{}, err
	}

	var updated employee.Employee
	err = s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeOf(ctx, companyID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			e.Name = strings.TrimSpace(*req.Name)
		}
		if req.CPF != nil {
			cpf := validator.OnlyDigits(*req.CPF)
			exists, err := s.employeeRepo.ExistsByCPF(ctx, companyID, cpf, id)
			if err != nil {
				return fmt.Errorf("failed to check cpf: %w", err)
			}
			if exists {
				return employee.ErrCPFExists
			}
			e.CPF = cpf
		}
		if admission := req.Admission(); admission != nil {
			if !admissionPrecedesHistory(e, *admission) {
				return employee.ErrEventBeforeAdmission
			}
			e.AdmissionDate = *admission
		}
		if req.OffBooksSalary != nil {
			e.OffBooksSalary = *req.OffBooksSalary
		}
		if req.Benefits != nil {
			e.Benefits = *req.Benefits
		}

		withCost(&e, c)
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return updated, nil
}

// admissionPrecedesHistory reports whether admission is on or before every
// recorded salary and role event.
func admissionPrecedesHistory(e employee.Employee, admission time.Time) bool {
	for _, inc := range e.SalaryHistory {
		if inc.Date.Before(admission) {
			return false
		}
	}
	for _, rc := range e.MovementHistory {
		if rc.Date.Before(admission) {
			return false
		}
	}
	return true
}

// DeleteEmployee implements employee.EmployeeService. Employees with
// movements or settlements are kept for the audit trail.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, companyID, id string) error {
	return s.store.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.employeeOf(ctx, companyID, id); err != nil {
			return err
		}

		movements, err := s.movementRepo.List(ctx, movement.MovementFilter{CompanyID: companyID, EmployeeID: &id})
		if err != nil {
			return fmt.Errorf("failed to check movements: %w", err)
		}
		settlements, err := s.settlementRepo.List(ctx, settlement.SettlementFilter{CompanyID: companyID, EmployeeID: &id})
		if err != nil {
			return fmt.Errorf("failed to check settlements: %w", err)
		}
		if len(movements) > 0 || len(settlements) > 0 {
			return employee.ErrEmployeeHasRecords
		}

		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return nil
	})
}

// AddSalaryIncrease implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddSalaryIncrease(ctx context.Context, companyID, id string, req employee.SalaryIncreaseRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	c, err := s.company(ctx, companyID)
	if err != nil {
		return employee.Employee{}, err
	}
	signer := jwt.OperatorFromContext(ctx).Signer()

	var updated employee.Employee
	err = s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if err := e.ValidateEventDate(req.EffectiveDate()); err != nil {
			return err
		}

		increase := employee.SalaryIncrease{
			Date:   req.EffectiveDate(),
			Amount: req.Amount,
			Type:   req.Type,
			Reason: strings.TrimSpace(req.Reason),
			Signer: signer,
		}
		switch req.Type {
		case employee.SalaryTypeOffBooks:
			increase.PreviousAmount = e.OffBooksSalary
			e.OffBooksSalary = req.Amount
		default:
			increase.PreviousAmount = e.Salary
			e.Salary = req.Amount
		}
		e.SalaryHistory = append(e.SalaryHistory, increase)

		withCost(&e, c)
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to record salary increase: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Salary increase recorded", "employee_id", id, "type", req.Type, "amount", req.Amount.StringFixed(2))
	return updated, nil
}

// ChangeRole implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ChangeRole(ctx context.Context, companyID, id string, req employee.RoleChangeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	c, err := s.company(ctx, companyID)
	if err != nil {
		return employee.Employee{}, err
	}
	sector := strings.TrimSpace(req.Sector)
	jobTitle := strings.TrimSpace(req.JobTitle)
	if sector != "" && !c.HasSector(sector) {
		return employee.Employee{}, company.ErrUnknownSector
	}
	if jobTitle != "" && !c.HasJobTitle(jobTitle) {
		return employee.Employee{}, company.ErrUnknownJobTitle
	}
	signer := jwt.OperatorFromContext(ctx).Signer()

	var updated employee.Employee
	err = s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if err := e.ValidateEventDate(req.EffectiveDate()); err != nil {
			return err
		}

		change := employee.RoleChange{
			Date:         req.EffectiveDate(),
			FromSector:   e.Sector,
			ToSector:     e.Sector,
			FromJobTitle: e.JobTitle,
			ToJobTitle:   e.JobTitle,
			Reason:       strings.TrimSpace(req.Reason),
			Signer:       signer,
		}
		if sector != "" {
			change.ToSector = sector
			e.Sector = sector
		}
		if jobTitle != "" {
			change.ToJobTitle = jobTitle
			e.JobTitle = jobTitle
		}
		e.MovementHistory = append(e.MovementHistory, change)

		withCost(&e, c)
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to change role: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return updated, nil
}

// RecomputeCosts implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RecomputeCosts(ctx context.Context, companyID string) (int, error) {
	// read the company uncached; callers run this right after a tax change
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return 0, err
	}

	updated := 0
	err = s.store.RunTransaction(ctx, func(ctx context.Context) error {
		employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{CompanyID: companyID})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		for _, e := range employees {
			previous := e.CostTotal
			withCost(&e, c)
			if previous.Equal(e.CostTotal) {
				continue
			}
			if err := s.employeeRepo.Update(ctx, e); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					continue
				}
				return fmt.Errorf("failed to update cost of %s: %w", e.ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
