package leave

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID      string `json:"employee_id"`
	Type            Type   `json:"type"`
	StartDate       string `json:"start_date"`
	ExpectedEndDate string `json:"expected_end_date,omitempty"`
	CID             string `json:"cid,omitempty"`
	INSSReferral    bool   `json:"inss_referral"`
	Notes           string `json:"notes,omitempty"`

	start time.Time
	end   *time.Time
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if !r.Type.Valid() {
		errs.Add("type", "type must be sickness, work_accident, maternity or other")
	}
	if d, ok := validator.IsValidDate(r.StartDate); ok {
		r.start = d
	} else {
		errs.Add("start_date", "start_date must be YYYY-MM-DD")
	}
	if r.ExpectedEndDate != "" {
		if d, ok := validator.IsValidDate(r.ExpectedEndDate); !ok {
			errs.Add("expected_end_date", "expected_end_date must be YYYY-MM-DD")
		} else if d.Before(r.start) {
			errs.Add("expected_end_date", "expected_end_date must not be before start_date")
		} else {
			r.end = &d
		}
	}
	if r.CID != "" && !validator.IsValidCID(r.CID) {
		errs.Add("cid", "cid is invalid")
	}

	return errs.Err()
}

func (r *CreateLeaveRequest) Start() time.Time {
	return r.start
}

func (r *CreateLeaveRequest) ExpectedEnd() *time.Time {
	return r.end
}

type ReferRequest struct {
	ReferralDate   string `json:"referral_date"`
	ProtocolNumber string `json:"protocol_number"`

	date time.Time
}

func (r *ReferRequest) Validate() error {
	var errs validator.ValidationErrors

	if d, ok := validator.IsValidDate(r.ReferralDate); ok {
		r.date = d
	} else {
		errs.Add("referral_date", "referral_date must be YYYY-MM-DD")
	}
	if validator.IsEmpty(r.ProtocolNumber) {
		errs.Add("protocol_number", "protocol_number is required")
	}

	return errs.Err()
}

func (r *ReferRequest) Date() time.Time {
	return r.date
}

type ScheduleExamRequest struct {
	ExamDate string `json:"exam_date"`

	date time.Time
}

func (r *ScheduleExamRequest) Validate() error {
	var errs validator.ValidationErrors
	if d, ok := validator.IsValidDate(r.ExamDate); ok {
		r.date = d
	} else {
		errs.Add("exam_date", "exam_date must be YYYY-MM-DD")
	}
	return errs.Err()
}

func (r *ScheduleExamRequest) Date() time.Time {
	return r.date
}

type CloseLeaveRequest struct {
	EndDate string `json:"end_date"`

	date time.Time
}

func (r *CloseLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if d, ok := validator.IsValidDate(r.EndDate); ok {
		r.date = d
	} else {
		errs.Add("end_date", "end_date must be YYYY-MM-DD")
	}
	return errs.Err()
}

func (r *CloseLeaveRequest) Date() time.Time {
	return r.date
}

type LeaveFilter struct {
	CompanyID      string
	EmployeeID     *string
	Status         *Status
	ReferralStatus *ReferralStatus
	HasExam        bool
}
