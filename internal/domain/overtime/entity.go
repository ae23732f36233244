package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the surcharge percentage applied over the hourly rate.
type Tier int

const (
	Tier50  Tier = 50
	Tier100 Tier = 100
)

func (t Tier) Valid() bool {
	return t == Tier50 || t == Tier100
}

type Entry struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Sector       string          `json:"sector"`
	Date         time.Time       `json:"date"`
	ClockIn      string          `json:"clock_in"`
	ClockOut     string          `json:"clock_out"`
	Hours        decimal.Decimal `json:"hours"`
	Tier         Tier            `json:"tier"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Pay          decimal.Decimal `json:"pay"`
	DSR          decimal.Decimal `json:"dsr"`
	Signed       bool            `json:"signed"`
	SignedAt     *time.Time      `json:"signed_at"`
	SignedBy     string          `json:"signed_by,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Total is the pay plus its weekly rest reflex.
func (e Entry) Total() decimal.Decimal {
	return e.Pay.Add(e.DSR)
}
