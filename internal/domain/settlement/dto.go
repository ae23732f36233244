package settlement

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SettlementRequest struct {
	EmployeeID      string                     `json:"employee_id"`
	TerminationDate string                     `json:"termination_date"`
	Overrides       map[string]decimal.Decimal `json:"overrides,omitempty"`

	termination time.Time
}

func (r *SettlementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.TerminationDate) {
		errs.Add("termination_date", "termination_date is required")
	} else if d, ok := validator.IsValidDate(r.TerminationDate); ok {
		r.termination = d
	} else {
		errs.Add("termination_date", "termination_date must be YYYY-MM-DD")
	}

	return errs.Err()
}

func (r *SettlementRequest) Termination() time.Time {
	return r.termination
}

type SettlementFilter struct {
	CompanyID  string
	EmployeeID *string
}

// ConfirmResponse is returned when a settlement is persisted.
type ConfirmResponse struct {
	Settlement Settlement `json:"settlement"`
	EntryIDs   []string   `json:"financial_entry_ids"`
}
