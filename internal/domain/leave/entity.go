package leave

import "time"

type Type string

const (
	TypeSickness  Type = "sickness"
	TypeAccident  Type = "work_accident"
	TypeMaternity Type = "maternity"
	TypeOther     Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSickness, TypeAccident, TypeMaternity, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// ReferralStatus tracks the INSS (social security) referral of a leave.
type ReferralStatus string

const (
	ReferralPending  ReferralStatus = "pending"
	ReferralReferred ReferralStatus = "referred"
)

// Leave is an afastamento: a period away from work, possibly referred to the
// INSS when sick days pile up.
type Leave struct {
	ID              string         `json:"id"`
	CompanyID       string         `json:"company_id"`
	EmployeeID      string         `json:"employee_id"`
	EmployeeName    string         `json:"employee_name"`
	Type            Type           `json:"type"`
	Status          Status         `json:"status"`
	StartDate       time.Time      `json:"start_date"`
	ExpectedEndDate *time.Time     `json:"expected_end_date"`
	EndDate         *time.Time     `json:"end_date"`
	CID             string         `json:"cid,omitempty"`
	INSSReferral    bool           `json:"inss_referral"`
	ReferralStatus  ReferralStatus `json:"referral_status,omitempty"`
	ReferralDate    *time.Time     `json:"referral_date"`
	ProtocolNumber  string         `json:"protocol_number,omitempty"`
	ExamDate        *time.Time     `json:"exam_date"`
	CertificateIDs  []string       `json:"certificate_ids"`
	AccumulatedDays int            `json:"accumulated_days"`
	Notes           string         `json:"notes,omitempty"`
	CreatedBy       string         `json:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (l Leave) IsActive() bool {
	return l.Status == StatusActive
}
