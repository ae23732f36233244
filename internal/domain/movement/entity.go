package movement

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
)

type Type string

const (
	TypeHire        Type = "hire"
	TypeTermination Type = "termination"
)

// Snapshot is the employee state captured before a movement is applied.
// Reverting a movement writes it back.
type Snapshot struct {
	CompanyID       string          `json:"company_id"`
	Sector          string          `json:"sector"`
	JobTitle        string          `json:"job_title"`
	Status          employee.Status `json:"status"`
	TerminationDate *time.Time      `json:"termination_date"`
}

func SnapshotOf(e employee.Employee) Snapshot {
	return Snapshot{
		CompanyID:       e.CompanyID,
		Sector:          e.Sector,
		JobTitle:        e.JobTitle,
		Status:          e.Status,
		TerminationDate: e.TerminationDate,
	}
}

// Restore applies the snapshot to e.
func (s Snapshot) Restore(e *employee.Employee) {
	e.CompanyID = s.CompanyID
	e.Sector = s.Sector
	e.JobTitle = s.JobTitle
	e.Status = s.Status
	e.TerminationDate = s.TerminationDate
}

type Movement struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	CompanyID       string          `json:"company_id"`
	Type            Type            `json:"type"`
	Date            time.Time       `json:"date"`
	Reason          string          `json:"reason"`
	Details         string          `json:"details"`
	Before          Snapshot        `json:"before"`
	ResultingStatus employee.Status `json:"resulting_status"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
