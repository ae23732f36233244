package absence

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	EmployeeID    string        `json:"employee_id"`
	Date          string        `json:"date"`
	Period        Period        `json:"period"`
	Justification Justification `json:"justification"`
	Notes         string        `json:"notes,omitempty"`

	date time.Time
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if d, ok := validator.IsValidDate(r.Date); ok {
		r.date = d
	} else {
		errs.Add("date", "date is required (YYYY-MM-DD)")
	}
	if !r.Period.Valid() {
		errs.Add("period", "period must be morning, afternoon or night")
	}
	if r.Justification == "" {
		r.Justification = JustificationNone
	} else if !r.Justification.Valid() {
		errs.Add("justification", "unknown justification")
	}

	return errs.Err()
}

func (r *RegisterRequest) AbsenceDate() time.Time {
	return r.date
}

type AbsenceFilter struct {
	CompanyID  string
	EmployeeID *string
	Sector     *string
	From       *time.Time
	To         *time.Time
}
