package overtime

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type LaunchRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	ClockIn    string `json:"clock_in"`
	ClockOut   string `json:"clock_out"`
	Tier       Tier   `json:"tier"`
	Notes      string `json:"notes,omitempty"`

	date time.Time
}

func (r *LaunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if d, ok := validator.IsValidDate(r.Date); ok {
		r.date = d
	} else {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if !validator.IsValidClock(r.ClockIn) {
		errs.Add("clock_in", "clock_in must be HH:MM")
	}
	if !validator.IsValidClock(r.ClockOut) {
		errs.Add("clock_out", "clock_out must be HH:MM")
	} else if r.ClockOut == r.ClockIn {
		errs.Add("clock_out", "clock_out must differ from clock_in")
	}
	if !r.Tier.Valid() {
		errs.Add("tier", "tier must be 50 or 100")
	}

	return errs.Err()
}

func (r *LaunchRequest) EntryDate() time.Time {
	return r.date
}

type EntryFilter struct {
	CompanyID  string
	EmployeeID *string
	Sector     *string
	Signed     *bool
	From       *time.Time
	To         *time.Time
}

type EntryListResponse struct {
	Entries    []Entry         `json:"entries"`
	TotalHours decimal.Decimal `json:"total_hours"`
	TotalPay   decimal.Decimal `json:"total_pay"`
	TotalDSR   decimal.Decimal `json:"total_dsr"`
}
