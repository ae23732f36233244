package report

import (
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindOvertime     Kind = "overtime"
	KindAbsences     Kind = "absences"
	KindCertificates Kind = "certificates"
)

type GroupBy string

const (
	GroupBySector   GroupBy = "sector"
	GroupByEmployee GroupBy = "employee"
	GroupByMonth    GroupBy = "month"
)

type Metric string

const (
	MetricHours  Metric = "hours"
	MetricDays   Metric = "days"
	MetricAmount Metric = "amount"
	MetricCount  Metric = "count"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// defaultMetric is the figure each report ranks by when none is asked for.
var defaultMetric = map[Kind]Metric{
	KindOvertime:     MetricHours,
	KindAbsences:     MetricCount,
	KindCertificates: MetricDays,
}

// ========================================
// GROUPED REPORT
// ========================================

type AggregateRequest struct {
	Kind    Kind    `json:"kind"`
	GroupBy GroupBy `json:"group_by"`
	Metric  Metric  `json:"metric"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Sector  string  `json:"sector,omitempty"`

	from time.Time
	to   time.Time
}

func (r *AggregateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := defaultMetric[r.Kind]; !ok {
		errs.Add("kind", "kind must be overtime, absences or certificates")
	}
	switch r.GroupBy {
	case "":
		r.GroupBy = GroupByEmployee
	case GroupBySector, GroupByEmployee, GroupByMonth:
	default:
		errs.Add("group_by", "group_by must be sector, employee or month")
	}
	switch r.Metric {
	case "":
		r.Metric = defaultMetric[r.Kind]
	case MetricHours, MetricDays, MetricAmount, MetricCount:
	default:
		errs.Add("metric", "metric must be hours, days, amount or count")
	}

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs.Add("from", "from must be YYYY-MM-DD")
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs.Add("to", "to must be YYYY-MM-DD")
	}
	if okFrom && okTo {
		if to.Before(from) {
			errs.Add("to", ErrInvalidDateRange.Error())
		}
		r.from, r.to = from, to
	}

	return errs.Err()
}

func (r *AggregateRequest) Period() (time.Time, time.Time) {
	return r.from, r.to
}

type AggregateReport struct {
	Kind        Kind            `json:"kind"`
	GroupBy     GroupBy         `json:"group_by"`
	Metric      Metric          `json:"metric"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	GeneratedAt string          `json:"generated_at"`
	Groups      []Group         `json:"groups"`
	Ranking     []RankingRow    `json:"ranking"`
	Total       decimal.Decimal `json:"total"`
}

// ========================================
// DASHBOARD
// ========================================

type Dashboard struct {
	CompanyID         string             `json:"company_id"`
	Month             string             `json:"month"`
	ActiveEmployees   int                `json:"active_employees"`
	MonthlyCost       decimal.Decimal    `json:"monthly_cost"`
	OvertimeHours     decimal.Decimal    `json:"overtime_hours"`
	OvertimeAmount    decimal.Decimal    `json:"overtime_amount"`
	Absences          int                `json:"absences"`
	CertificateDays   decimal.Decimal    `json:"certificate_days"`
	ActiveLeaves      int                `json:"active_leaves"`
	PendingReferrals  int                `json:"pending_referrals"`
	PendingFinance    decimal.Decimal    `json:"pending_finance"`
	RecurringAbsences []RecurringAbsence `json:"recurring_absences"`
	ExamAlerts        []ExamAlert        `json:"exam_alerts"`
}

// ========================================
// EXPORT
// ========================================

type ExportFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
	Data        []byte `json:"-"`
}
