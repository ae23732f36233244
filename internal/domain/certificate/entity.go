package certificate

import (
	"time"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
)

type Status string

const (
	StatusValid       Status = "valid"
	StatusExpired     Status = "expired"
	StatusUnderReview Status = "under_review"
)

func (s Status) Valid() bool {
	switch s {
	case StatusValid, StatusExpired, StatusUnderReview:
		return true
	}
	return false
}

// Stage is a step of the psychosocial follow-up workflow.
type Stage string

const (
	StageInitialAnalysis  Stage = "initial_analysis"
	StageMeetingScheduled Stage = "meeting_scheduled"
	StageDiscussed        Stage = "discussed_with_employee"
	StageActionPlan       Stage = "action_plan_defined"
	StageCaseClosed       Stage = "case_closed"
)

var Stages = []Stage{
	StageInitialAnalysis,
	StageMeetingScheduled,
	StageDiscussed,
	StageActionPlan,
	StageCaseClosed,
}

func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

func (s Stage) index() int {
	for i, st := range Stages {
		if s == st {
			return i
		}
	}
	return -1
}

type Duration struct {
	Value decimal.Decimal `json:"value"`
	Unit  Unit            `json:"unit"`
}

type FollowUp struct {
	Stage  Stage     `json:"stage"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes,omitempty"`
	Author string    `json:"author"`
}

// Certificate is a medical certificate (atestado).
type Certificate struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Sector       string          `json:"sector"`
	Date         time.Time       `json:"date"`
	Duration     Duration        `json:"duration"`
	Days         decimal.Decimal `json:"days"`
	CID          string          `json:"cid"`
	Physician    string          `json:"physician"`
	Status       Status          `json:"status"`
	INSSReferral bool            `json:"inss_referral"`
	LeaveID      string          `json:"leave_id,omitempty"`
	Psychosocial bool            `json:"psychosocial"`
	Stage        Stage           `json:"stage,omitempty"`
	FollowUps    []FollowUp      `json:"follow_ups"`
	ScanKey      string          `json:"scan_key,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Closed reports whether the follow-up case reached its last stage.
func (c Certificate) Closed() bool {
	for _, f := range c.FollowUps {
		if f.Stage == StageCaseClosed {
			return true
		}
	}
	return false
}

// CurrentStage is the stage of the latest follow-up, or the stage the case
// was opened at.
func (c Certificate) CurrentStage() Stage {
	if n := len(c.FollowUps); n > 0 {
		return c.FollowUps[n-1].Stage
	}
	return c.Stage
}

// EndDate is the last day covered by the certificate.
func (c Certificate) EndDate() time.Time {
	days := c.Days.Ceil().IntPart()
	if days < 1 {
		return c.Date
	}
	return c.Date.AddDate(0, 0, int(days)-1)
}
