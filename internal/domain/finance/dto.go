package finance

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEntryRequest struct {
	EmployeeID  string          `json:"employee_id,omitempty"`
	Origin      Origin          `json:"origin"`
	SubCategory string          `json:"sub_category"`
	DueDate     string          `json:"due_date"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`

	dueDate time.Time
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Origin.Valid() {
		errs.Add("origin", "origin must be payroll, benefits, taxes or manual")
	}
	if validator.IsEmpty(r.SubCategory) {
		errs.Add("sub_category", "sub_category is required")
	}
	if d, ok := validator.IsValidDate(r.DueDate); ok {
		r.dueDate = d
	} else {
		errs.Add("due_date", "due_date must be YYYY-MM-DD")
	}
	if !r.Amount.IsPositive() {
		errs.Add("amount", "amount must be positive")
	}

	return errs.Err()
}

func (r *CreateEntryRequest) Due() time.Time {
	return r.dueDate
}

type MarkPaidRequest struct {
	PaidAt string `json:"paid_at,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.PaidAt != "" {
		if _, ok := validator.IsValidDate(r.PaidAt); !ok {
			errs.Add("paid_at", "paid_at must be YYYY-MM-DD")
		}
	}
	return errs.Err()
}

type EntryFilter struct {
	CompanyID  string
	EmployeeID *string
	Status     *Status
	Origin     *Origin
	DueFrom    *time.Time
	DueTo      *time.Time
}

type EntryListResponse struct {
	Entries      []Entry         `json:"entries"`
	TotalPending decimal.Decimal `json:"total_pending"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
}
