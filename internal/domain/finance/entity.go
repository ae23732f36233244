package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

type Origin string

const (
	OriginPayroll  Origin = "payroll"
	OriginBenefits Origin = "benefits"
	OriginTaxes    Origin = "taxes"
	OriginManual   Origin = "manual"
)

func (o Origin) Valid() bool {
	switch o {
	case OriginPayroll, OriginBenefits, OriginTaxes, OriginManual:
		return true
	}
	return false
}

// Sub-categories used by settlement-generated entries.
const (
	SubCategorySettlements = "Rescisões"
	SubCategoryCharges     = "Encargos"
)

type Entry struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	EmployeeID   string          `json:"employee_id,omitempty"`
	Origin       Origin          `json:"origin"`
	SubCategory  string          `json:"sub_category"`
	DueDate      time.Time       `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	Status       Status          `json:"status"`
	Reason       string          `json:"reason"`
	SettlementID string          `json:"settlement_id,omitempty"`
	PaidAt       *time.Time      `json:"paid_at"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
