package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	CreateEmployee(ctx context.Context, companyID string, req CreateEmployeeRequest) (Employee, error)
	GetEmployee(ctx context.Context, companyID, id string) (Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	UpdateEmployee(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (Employee, error)
	DeleteEmployee(ctx context.Context, companyID, id string) error

	// AddSalaryIncrease appends to the salary history and sets the new value
	AddSalaryIncrease(ctx context.Context, companyID, id string, req SalaryIncreaseRequest) (Employee, error)

	// ChangeRole moves the employee to another sector and/or job title
	ChangeRole(ctx context.Context, companyID, id string, req RoleChangeRequest) (Employee, error)

	// RecomputeCosts refreshes cost_total for every employee of a company
	RecomputeCosts(ctx context.Context, companyID string) (int, error)
}
