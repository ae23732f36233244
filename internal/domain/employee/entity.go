package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	CPF              string           `json:"cpf"`
	CompanyID        string           `json:"company_id"`
	Sector           string           `json:"sector"`
	JobTitle         string           `json:"job_title"`
	AdmissionDate    time.Time        `json:"admission_date"`
	Salary           decimal.Decimal  `json:"salary"`
	OffBooksSalary   decimal.Decimal  `json:"off_books_salary"`
	Status           Status           `json:"status"`
	Benefits         Benefits         `json:"benefits"`
	SalaryHistory    []SalaryIncrease `json:"salary_history"`
	MovementHistory  []RoleChange     `json:"movement_history"`
	CostTotal        decimal.Decimal  `json:"cost_total"`
	TerminationDate  *time.Time       `json:"termination_date"`
	LastSettlementID string           `json:"last_settlement_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Benefits struct {
	HealthPlan       bool `json:"health_plan"`
	MealVoucher      bool `json:"meal_voucher"`
	TransportVoucher bool `json:"transport_voucher"`
	LifeInsurance    bool `json:"life_insurance"`
}

type SalaryType string

const (
	SalaryTypePayroll  SalaryType = "payroll"
	SalaryTypeOffBooks SalaryType = "off_books"
)

// SalaryIncrease records a raise; Amount is the new value of the salary
// component named by Type.
type SalaryIncrease struct {
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	PreviousAmount decimal.Decimal `json:"previous_amount"`
	Type           SalaryType      `json:"type"`
	Reason         string          `json:"reason"`
	Signer         string          `json:"signer"`
}

type RoleChange struct {
	Date         time.Time `json:"date"`
	FromSector   string    `json:"from_sector"`
	ToSector     string    `json:"to_sector"`
	FromJobTitle string    `json:"from_job_title"`
	ToJobTitle   string    `json:"to_job_title"`
	Reason       string    `json:"reason"`
	Signer       string    `json:"signer"`
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// ValidateEventDate enforces that no recorded event predates admission.
func (e Employee) ValidateEventDate(date time.Time) error {
	if date.Before(e.AdmissionDate) {
		return ErrEventBeforeAdmission
	}
	return nil
}
