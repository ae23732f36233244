package report

import (
	"sort"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

const (
	RecurringWindowDays   = 30
	RecurringMinAbsences  = 3
	ExamAlertBusinessDays = 5
	RankingSize           = 10
)

var (
	halfDay      = decimal.RequireFromString("0.5")
	halfDayHours = decimal.NewFromInt(4)
)

// Record is the common shape of every time-stamped entry that can be summed.
type Record struct {
	EmployeeID   string
	EmployeeName string
	Sector       string
	Date         time.Time
	Hours        decimal.Decimal
	Days         decimal.Decimal
	Amount       decimal.Decimal
}

func FromOvertime(entries []overtime.Entry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			Sector:       e.Sector,
			Date:         e.Date,
			Hours:        e.Hours,
			Amount:       e.Total(),
		})
	}
	return records
}

// FromAbsences counts each absence as one half-day period.
func FromAbsences(absences []absence.Absence) []Record {
	records := make([]Record, 0, len(absences))
	for _, a := range absences {
		records = append(records, Record{
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			Sector:       a.Sector,
			Date:         a.Date,
			Hours:        halfDayHours,
			Days:         halfDay,
		})
	}
	return records
}

func FromCertificates(certs []certificate.Certificate) []Record {
	records := make([]Record, 0, len(certs))
	for _, c := range certs {
		records = append(records, Record{
			EmployeeID:   c.EmployeeID,
			EmployeeName: c.EmployeeName,
			Sector:       c.Sector,
			Date:         c.Date,
			Hours:        c.Days.Mul(decimal.NewFromInt(certificate.HoursPerDay)),
			Days:         c.Days,
		})
	}
	return records
}

type Group struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Hours  decimal.Decimal `json:"hours"`
	Days   decimal.Decimal `json:"days"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// Value returns the group total for metric.
func (g Group) Value(metric Metric) decimal.Decimal {
	switch metric {
	case MetricHours:
		return g.Hours
	case MetricDays:
		return g.Days
	case MetricAmount:
		return g.Amount
	default:
		return decimal.NewFromInt(int64(g.Count))
	}
}

func groupKey(r Record, by GroupBy) (string, string) {
	switch by {
	case GroupBySector:
		return r.Sector, r.Sector
	case GroupByMonth:
		key := calendar.MonthKey(r.Date)
		return key, key
	default:
		return r.EmployeeID, r.EmployeeName
	}
}

// GroupAndSum partitions records and sums them per group, largest metric
// first. Ties keep key order.
func GroupAndSum(records []Record, by GroupBy, metric Metric) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range records {
		key, label := groupKey(r, by)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:    key,
				Label:  label,
				Hours:  decimal.Zero,
				Days:   decimal.Zero,
				Amount: decimal.Zero,
			})
		}
		g := &groups[i]
		g.Hours = g.Hours.Add(r.Hours)
		g.Days = g.Days.Add(r.Days)
		g.Amount = g.Amount.Add(r.Amount)
		g.Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		vi, vj := groups[i].Value(metric), groups[j].Value(metric)
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

type Medal string

const (
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

type RankingRow struct {
	Position int             `json:"position"`
	Medal    Medal           `json:"medal,omitempty"`
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Value    decimal.Decimal `json:"value"`
}

// Rank keeps the first n groups, which must already be sorted, and marks the
// podium.
func Rank(groups []Group, metric Metric, n int) []RankingRow {
	if n <= 0 || n > len(groups) {
		n = len(groups)
	}
	medals := []Medal{MedalGold, MedalSilver, MedalBronze}

	rows := make([]RankingRow, 0, n)
	for i, g := range groups[:n] {
		row := RankingRow{
			Position: i + 1,
			Key:      g.Key,
			Label:    g.Label,
			Value:    g.Value(metric),
		}
		if i < len(medals) {
			row.Medal = medals[i]
		}
		rows = append(rows, row)
	}
	return rows
}

type RecurringAbsence struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Sector       string    `json:"sector"`
	Count        int       `json:"count"`
	LastAbsence  time.Time `json:"last_absence"`
}

// RecurringAbsences flags employees with more than two absences dated from
// today minus 30 days up to today, most absences first.
func RecurringAbsences(absences []absence.Absence, today time.Time) []RecurringAbsence {
	to := calendar.Day(today)
	from := to.AddDate(0, 0, -RecurringWindowDays)

	index := make(map[string]int)
	var rows []RecurringAbsence
	for _, a := range absences {
		d := calendar.Day(a.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		i, ok := index[a.EmployeeID]
		if !ok {
			i = len(rows)
			index[a.EmployeeID] = i
			rows = append(rows, RecurringAbsence{
				EmployeeID:   a.EmployeeID,
				EmployeeName: a.EmployeeName,
				Sector:       a.Sector,
			})
		}
		rows[i].Count++
		if d.After(rows[i].LastAbsence) {
			rows[i].LastAbsence = d
		}
	}

	flagged := rows[:0]
	for _, r := range rows {
		if r.Count >= RecurringMinAbsences {
			flagged = append(flagged, r)
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].Count != flagged[j].Count {
			return flagged[i].Count > flagged[j].Count
		}
		return flagged[i].EmployeeName < flagged[j].EmployeeName
	})
	return flagged
}

type ExamAlert struct {
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	ExamDate     time.Time `json:"exam_date"`
	BusinessDays int       `json:"business_days"`
}

// ExamAlerts lists active leaves whose INSS examination is at most five
// business days away, counting today and the exam day.
func ExamAlerts(leaves []leave.Leave, today time.Time) []ExamAlert {
	day := calendar.Day(today)

	var alerts []ExamAlert
	for _, l := range leaves {
		if l.ExamDate == nil || !l.IsActive() {
			continue
		}
		exam := calendar.Day(*l.ExamDate)
		if exam.Before(day) {
			continue
		}
		n := calendar.BusinessDaysInclusive(day, exam)
		if n > ExamAlertBusinessDays {
			continue
		}
		alerts = append(alerts, ExamAlert{
			LeaveID:      l.ID,
			EmployeeID:   l.EmployeeID,
			EmployeeName: l.EmployeeName,
			ExamDate:     exam,
			BusinessDays: n,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].ExamDate.Before(alerts[j].ExamDate)
	})
	return alerts
}
