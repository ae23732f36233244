package movement

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

type TerminationRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`

	date time.Time
}

func (r *TerminationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if d, ok := validator.IsValidDate(r.Date); ok {
		r.date = d
	} else {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

func (r *TerminationRequest) EffectiveDate() time.Time {
	return r.date
}

type HireRequest struct {
	EmployeeID      string `json:"employee_id"`
	Date            string `json:"date"`
	Reason          string `json:"reason"`
	Details         string `json:"details,omitempty"`
	TargetCompanyID string `json:"target_company_id,omitempty"`
	Sector          string `json:"sector,omitempty"`
	JobTitle        string `json:"job_title,omitempty"`

	date time.Time
}

func (r *HireRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if d, ok := validator.IsValidDate(r.Date); ok {
		r.date = d
	} else {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

func (r *HireRequest) EffectiveDate() time.Time {
	return r.date
}

type MovementFilter struct {
	CompanyID  string
	EmployeeID *string
	Type       *Type
	From       *time.Time
	To         *time.Time
}
