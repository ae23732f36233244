package absence

import "time"

type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodNight:
		return true
	}
	return false
}

type Justification string

const (
	JustificationNone        Justification = "unjustified"
	JustificationMedical     Justification = "medical"
	JustificationPersonal    Justification = "personal"
	JustificationLegal       Justification = "legal"
	JustificationCompensated Justification = "compensated"
)

func (j Justification) Valid() bool {
	switch j {
	case JustificationNone, JustificationMedical, JustificationPersonal, JustificationLegal, JustificationCompensated:
		return true
	}
	return false
}

type Absence struct {
	ID            string        `json:"id"`
	CompanyID     string        `json:"company_id"`
	EmployeeID    string        `json:"employee_id"`
	EmployeeName  string        `json:"employee_name"`
	Sector        string        `json:"sector"`
	Date          time.Time     `json:"date"`
	Period        Period        `json:"period"`
	Justification Justification `json:"justification"`
	Notes         string        `json:"notes,omitempty"`
	CreatedBy     string        `json:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
