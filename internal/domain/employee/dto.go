package employee

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name           string          `json:"name"`
	CPF            string          `json:"cpf"`
	Sector         string          `json:"sector"`
	JobTitle       string          `json:"job_title"`
	AdmissionDate  string          `json:"admission_date"`
	Salary         decimal.Decimal `json:"salary"`
	OffBooksSalary decimal.Decimal `json:"off_books_salary"`
	Benefits       Benefits        `json:"benefits"`

	admission time.Time
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if !validator.IsValidCPF(r.CPF) {
		errs.Add("cpf", "cpf is invalid")
	}
	if validator.IsEmpty(r.Sector) {
		errs.Add("sector", "sector is required")
	}
	if validator.IsEmpty(r.JobTitle) {
		errs.Add("job_title", "job_title is required")
	}
	if d, ok := validator.IsValidDate(r.AdmissionDate); ok {
		r.admission = d
	} else {
		errs.Add("admission_date", "admission_date must be YYYY-MM-DD")
	}
	if r.Salary.IsNegative() {
		errs.Add("salary", "salary must not be negative")
	}
	if r.OffBooksSalary.IsNegative() {
		errs.Add("off_books_salary", "off_books_salary must not be negative")
	}

	return errs.Err()
}

// Admission is the parsed admission date; valid after Validate.
func (r *CreateEmployeeRequest) Admission() time.Time {
	return r.admission
}

type UpdateEmployeeRequest struct {
	Name           *string          `json:"name,omitempty"`
	CPF            *string          `json:"cpf,omitempty"`
	AdmissionDate  *string          `json:"admission_date,omitempty"`
	OffBooksSalary *decimal.Decimal `json:"off_books_salary,omitempty"`
	Benefits       *Benefits        `json:"benefits,omitempty"`

	admission *time.Time
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.CPF != nil && !validator.IsValidCPF(*r.CPF) {
		errs.Add("cpf", "cpf is invalid")
	}
	if r.AdmissionDate != nil {
		if d, ok := validator.IsValidDate(*r.AdmissionDate); ok {
			r.admission = &d
		} else {
			errs.Add("admission_date", "admission_date must be YYYY-MM-DD")
		}
	}
	if r.OffBooksSalary != nil && r.OffBooksSalary.IsNegative() {
		errs.Add("off_books_salary", "off_books_salary must not be negative")
	}

	return errs.Err()
}

func (r *UpdateEmployeeRequest) Admission() *time.Time {
	return r.admission
}

type SalaryIncreaseRequest struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Type   SalaryType      `json:"type"`
	Reason string          `json:"reason"`

	date time.Time
}

func (r *SalaryIncreaseRequest) Validate() error {
	var errs validator.ValidationErrors

	if d, ok := validator.IsValidDate(r.Date); ok {
		r.date = d
	} else {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if !r.Amount.IsPositive() {
		errs.Add("amount", "amount must be positive")
	}
	if r.Type != SalaryTypePayroll && r.Type != SalaryTypeOffBooks {
		errs.Add("type", "type must be payroll or off_books")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

func (r *SalaryIncreaseRequest) EffectiveDate() time.Time {
	return r.date
}

type RoleChangeRequest struct {
	Date     string `json:"date"`
	Sector   string `json:"sector"`
	JobTitle string `json:"job_title"`
	Reason   string `json:"reason"`

	date time.Time
}

func (r *RoleChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if d, ok := validator.IsValidDate(r.Date); ok {
		r.date = d
	} else {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if validator.IsEmpty(r.Sector) && validator.IsEmpty(r.JobTitle) {
		errs.Add("sector", "sector or job_title is required")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

func (r *RoleChangeRequest) EffectiveDate() time.Time {
	return r.date
}

type EmployeeFilter struct {
	CompanyID string
	Status    *Status
	Sector    *string
	Search    *string
}
