package report

import (
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func absencesFor(id, name string, dates ...time.Time) []absence.Absence {
	var out []absence.Absence
	for _, d := range dates {
		out = append(out, absence.Absence{EmployeeID: id, EmployeeName: name, Sector: "Produção", Date: d})
	}
	return out
}

func TestGroupAndSum(t *testing.T) {
	entries := []overtime.Entry{
		{EmployeeID: "e1", EmployeeName: "Ana", Sector: "Produção", Date: day(2026, 3, 2), Hours: dec("2"), Pay: dec("30"), DSR: dec("5")},
		{EmployeeID: "e2", EmployeeName: "Bia", Sector: "Logística", Date: day(2026, 3, 3), Hours: dec("5"), Pay: dec("60"), DSR: dec("10")},
		{EmployeeID: "e1", EmployeeName: "Ana", Sector: "Produção", Date: day(2026, 4, 1), Hours: dec("4"), Pay: dec("40"), DSR: dec("6")},
	}
	records := FromOvertime(entries)

	bySector := GroupAndSum(records, GroupBySector, MetricHours)
	require.Len(t, bySector, 2)
	assert.Equal(t, "Produção", bySector[0].Key)
	assert.Equal(t, "6", bySector[0].Hours.String())
	assert.Equal(t, "81", bySector[0].Amount.String())
	assert.Equal(t, 2, bySector[0].Count)

	byMonth := GroupAndSum(records, GroupByMonth, MetricAmount)
	require.Len(t, byMonth, 2)
	assert.Equal(t, "2026-03", byMonth[0].Key)
	assert.Equal(t, "105", byMonth[0].Amount.String())

	byEmployee := GroupAndSum(records, GroupByEmployee, MetricCount)
	assert.Equal(t, "Ana", byEmployee[0].Label)
}

func TestGroupAndSum_TiesByKey(t *testing.T) {
	records := []Record{
		{EmployeeID: "b", EmployeeName: "B"},
		{EmployeeID: "a", EmployeeName: "A"},
	}
	groups := GroupAndSum(records, GroupByEmployee, MetricCount)
	assert.Equal(t, "a", groups[0].Key)
	assert.Equal(t, "b", groups[1].Key)
}

func TestRank(t *testing.T) {
	var records []Record
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			records = append(records, Record{EmployeeID: string(rune('a' + i)), Hours: dec("1")})
		}
	}
	groups := GroupAndSum(records, GroupByEmployee, MetricHours)
	rows := Rank(groups, MetricHours, RankingSize)

	require.Len(t, rows, 10)
	assert.Equal(t, MedalGold, rows[0].Medal)
	assert.Equal(t, "l", rows[0].Key)
	assert.Equal(t, "12", rows[0].Value.String())
	assert.Equal(t, MedalSilver, rows[1].Medal)
	assert.Equal(t, MedalBronze, rows[2].Medal)
	assert.Empty(t, rows[3].Medal)
	assert.Equal(t, 10, rows[9].Position)

	assert.Len(t, Rank(groups[:2], MetricHours, RankingSize), 2)
}

func TestRecurringAbsences(t *testing.T) {
	today := day(2026, 3, 31)
	var absences []absence.Absence
	absences = append(absences, absencesFor("e1", "Ana", day(2026, 3, 2), day(2026, 3, 10), day(2026, 3, 30))...)
	absences = append(absences, absencesFor("e2", "Bia", day(2026, 3, 5), day(2026, 3, 6))...)
	absences = append(absences, absencesFor("e3", "Caio", day(2026, 3, 1), day(2026, 3, 2), day(2026, 3, 3), day(2026, 3, 4))...)
	// outside the window
	absences = append(absences, absencesFor("e2", "Bia", day(2026, 2, 10))...)

	flagged := RecurringAbsences(absences, today)
	require.Len(t, flagged, 2)
	assert.Equal(t, "e3", flagged[0].EmployeeID)
	assert.Equal(t, 4, flagged[0].Count)
	assert.Equal(t, "e1", flagged[1].EmployeeID)
	assert.Equal(t, 3, flagged[1].Count)
	assert.Equal(t, day(2026, 3, 30), flagged[1].LastAbsence)
}

func TestExamAlerts(t *testing.T) {
	friday := day(2026, 3, 6)
	monday := day(2026, 3, 9)
	far := day(2026, 3, 20)
	past := day(2026, 3, 2)

	leaves := []leave.Leave{
		{ID: "l1", Status: leave.StatusActive, ExamDate: &monday},
		{ID: "l2", Status: leave.StatusActive, ExamDate: &far},
		{ID: "l3", Status: leave.StatusActive, ExamDate: &past},
		{ID: "l4", Status: leave.StatusClosed, ExamDate: &monday},
		{ID: "l5", Status: leave.StatusActive},
		{ID: "l6", Status: leave.StatusActive, ExamDate: &friday},
	}

	alerts := ExamAlerts(leaves, friday)
	require.Len(t, alerts, 2)
	assert.Equal(t, "l6", alerts[0].LeaveID)
	assert.Equal(t, 1, alerts[0].BusinessDays)
	assert.Equal(t, "l1", alerts[1].LeaveID)
	assert.Equal(t, 2, alerts[1].BusinessDays)
}

func TestAggregateRequestValidate(t *testing.T) {
	req := AggregateRequest{Kind: KindCertificates, From: "2026-01-01", To: "2026-03-31"}
	require.NoError(t, req.Validate())
	assert.Equal(t, GroupByEmployee, req.GroupBy)
	assert.Equal(t, MetricDays, req.Metric)

	bad := AggregateRequest{Kind: "payroll", From: "2026-03-31", To: "2026-01-01", GroupBy: "team"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
	assert.Contains(t, err.Error(), "group_by")
	assert.Contains(t, err.Error(), "to")
}
