package certificate

import (
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

const (
	// ReferralWindowDays is the trailing window of certificates summed
	// against the INSS threshold.
	ReferralWindowDays = 60

	// HoursPerDay converts hour-based certificates to days.
	HoursPerDay = 8
)

// ReferralThreshold is the number of sick days the employer pays; anything
// above it goes to the INSS.
var ReferralThreshold = decimal.NewFromInt(15)

// ToDays converts a certificate duration to days.
func ToDays(d Duration) decimal.Decimal {
	if d.Unit == UnitHours {
		return d.Value.Div(decimal.NewFromInt(HoursPerDay))
	}
	return d.Value
}

// NormalizeCID uppercases a diagnosis code and drops the dot and spaces so
// "f32.1" and "F321" compare equal.
func NormalizeCID(cid string) string {
	cid = strings.ToUpper(strings.TrimSpace(cid))
	return strings.ReplaceAll(cid, ".", "")
}

// IsPsychosocial classifies mental and behavioural codes (chapter F) and
// occupational psychosocial risk factors (Z65).
func IsPsychosocial(cid string) bool {
	code := strings.ToUpper(strings.TrimSpace(cid))
	return strings.HasPrefix(code, "F") || strings.HasPrefix(code, "Z65")
}

type Evaluation struct {
	Days               decimal.Decimal `json:"days"`
	TotalAccumulated   decimal.Decimal `json:"total_accumulated"`
	SameCIDAccumulated decimal.Decimal `json:"same_cid_accumulated"`
	Triggered          bool            `json:"triggered"`
	Reason             string          `json:"reason,omitempty"`
}

// EvaluateReferral sums the new certificate with the employee's certificates
// dated within the trailing 60 days and reports whether any of the single,
// total or same-CID sums exceeds 15 days.
func EvaluateReferral(c Certificate, history []Certificate) Evaluation {
	date := calendar.Day(c.Date)
	from := date.AddDate(0, 0, -ReferralWindowDays)
	cid := NormalizeCID(c.CID)

	ev := Evaluation{Days: c.Days, TotalAccumulated: c.Days, SameCIDAccumulated: c.Days}
	for _, h := range history {
		if h.ID != "" && h.ID == c.ID {
			continue
		}
		if h.EmployeeID != c.EmployeeID {
			continue
		}
		if !inWindow(calendar.Day(h.Date), from, date) {
			continue
		}
		ev.TotalAccumulated = ev.TotalAccumulated.Add(h.Days)
		if cid != "" && NormalizeCID(h.CID) == cid {
			ev.SameCIDAccumulated = ev.SameCIDAccumulated.Add(h.Days)
		}
	}

	switch {
	case ev.Days.GreaterThan(ReferralThreshold):
		ev.Triggered, ev.Reason = true, "certificate exceeds 15 days"
	case ev.SameCIDAccumulated.GreaterThan(ReferralThreshold):
		ev.Triggered, ev.Reason = true, "same CID exceeds 15 days within 60 days"
	case ev.TotalAccumulated.GreaterThan(ReferralThreshold):
		ev.Triggered, ev.Reason = true, "certificates exceed 15 days within 60 days"
	}
	return ev
}

func inWindow(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

// CanFollowUp checks that a stage may be appended to c's history.
func CanFollowUp(c Certificate, stage Stage) error {
	if !c.Psychosocial {
		return ErrNotPsychosocial
	}
	if c.Closed() {
		return ErrCaseClosed
	}
	if !stage.Valid() {
		return ErrInvalidStage
	}
	if stage.index() < c.CurrentStage().index() {
		return ErrStageBackwards
	}
	return nil
}
