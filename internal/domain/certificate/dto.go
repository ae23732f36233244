package certificate

import (
	"io"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	Duration   Duration `json:"duration"`
	CID        string   `json:"cid"`
	Physician  string   `json:"physician"`

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
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if r.Duration.Unit == "" {
		r.Duration.Unit = UnitDays
	}
	if r.Duration.Unit != UnitDays && r.Duration.Unit != UnitHours {
		errs.Add("duration.unit", "unit must be days or hours")
	}
	if !r.Duration.Value.IsPositive() {
		errs.Add("duration.value", "duration must be positive")
	}
	if !validator.IsValidCID(r.CID) {
		errs.Add("cid", "cid is invalid")
	}
	if validator.IsEmpty(r.Physician) {
		errs.Add("physician", "physician is required")
	}

	return errs.Err()
}

func (r *RegisterRequest) CertificateDate() time.Time {
	return r.date
}

type RegisterResponse struct {
	Certificate Certificate `json:"certificate"`
	Evaluation  Evaluation  `json:"evaluation"`
	LeaveID     string      `json:"leave_id,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Status.Valid() {
		errs.Add("status", "status must be valid, expired or under_review")
	}
	return errs.Err()
}

type FollowUpRequest struct {
	Stage Stage  `json:"stage"`
	Notes string `json:"notes,omitempty"`
}

func (r *FollowUpRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Stage.Valid() {
		errs.Add("stage", "unknown follow-up stage")
	}
	return errs.Err()
}

// AttachScanRequest carries the uploaded scan; it is read from a multipart
// form, not JSON.
type AttachScanRequest struct {
	File     io.Reader
	Filename string
	Size     int64
}

// MaxScanSize bounds an uploaded scan before compression.
const MaxScanSize = 10 << 20

func (r *AttachScanRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.File == nil {
		errs.Add("scan", "scan file is required")
	}
	if validator.IsEmpty(r.Filename) {
		errs.Add("scan", "scan filename is required")
	}
	if r.Size > MaxScanSize {
		errs.Add("scan", "scan must not exceed 10MB")
	}
	return errs.Err()
}

type CertificateFilter struct {
	CompanyID    string
	EmployeeID   *string
	Status       *Status
	Psychosocial *bool
	From         *time.Time
	To           *time.Time
}

// DaysOf is a convenience for totals in reports.
func DaysOf(certs []Certificate) decimal.Decimal {
	total := decimal.Zero
	for _, c := range certs {
		total = total.Add(c.Days)
	}
	return total
}
