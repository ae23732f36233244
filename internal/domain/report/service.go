package report

import (
	"context"
	"time"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// Aggregate groups overtime, absences or certificates and ranks the groups
	Aggregate(ctx context.Context, companyID string, req AggregateRequest) (AggregateReport, error)

	// RecurringAbsences flags employees absent more than twice in 30 days
	RecurringAbsences(ctx context.Context, companyID string, today time.Time) ([]RecurringAbsence, error)

	// ExamAlerts lists INSS examinations within five business days
	ExamAlerts(ctx context.Context, companyID string, today time.Time) ([]ExamAlert, error)

	Dashboard(ctx context.Context, companyID string, month time.Time) (Dashboard, error)

	// Export renders an aggregate report as PDF or XLSX and stores it
	Export(ctx context.Context, companyID string, req AggregateRequest, format Format) (ExportFile, error)
}
