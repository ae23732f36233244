package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/report"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	overtimeRepo overtime.EntryRepository
	absenceRepo  absence.AbsenceRepository
	certRepo     certificate.CertificateRepository
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	entryRepo    finance.EntryRepository
	files        storage.FileStorage
	now          func() time.Time
}

// NewReportService builds the report service. files may be nil, in which
// case exports are only returned to the caller.
func NewReportService(
	overtimeRepo overtime.EntryRepository,
	absenceRepo absence.AbsenceRepository,
	certRepo certificate.CertificateRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	entryRepo finance.EntryRepository,
	files storage.FileStorage,
) report.ReportService {
	return &ReportServiceImpl{
		overtimeRepo: overtimeRepo,
		absenceRepo:  absenceRepo,
		certRepo:     certRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		entryRepo:    entryRepo,
		files:        files,
		now:          time.Now,
	}
}

// records loads the entries of one report kind for the period.
func (s *ReportServiceImpl) records(ctx context.Context, companyID string, kind report.Kind, from, to time.Time, sector string) ([]report.Record, error) {
	var sectorFilter *string
	if sector != "" {
		sectorFilter = &sector
	}

	switch kind {
	case report.KindOvertime:
		entries, err := s.overtimeRepo.List(ctx, overtime.EntryFilter{CompanyID: companyID, Sector: sectorFilter, From: &from, To: &to})
		if err != nil {
			return nil, fmt.Errorf("failed to list overtime: %w", err)
		}
		return report.FromOvertime(entries), nil

	case report.KindAbsences:
		absences, err := s.absenceRepo.List(ctx, absence.AbsenceFilter{CompanyID: companyID, Sector: sectorFilter, From: &from, To: &to})
		if err != nil {
			return nil, fmt.Errorf("failed to list absences: %w", err)
		}
		return report.FromAbsences(absences), nil

	default:
		certs, err := s.certRepo.List(ctx, certificate.CertificateFilter{CompanyID: companyID, From: &from, To: &to})
		if err != nil {
			return nil, fmt.Errorf("failed to list certificates: %w", err)
		}
		if sector != "" {
			filtered := certs[:0]
			for _, c := range certs {
				if c.Sector == sector {
					filtered = append(filtered, c)
				}
			}
			certs = filtered
		}
		return report.FromCertificates(certs), nil
	}
}

// Aggregate implements report.ReportService.
func (s *ReportServiceImpl) Aggregate(ctx context.Context, companyID string, req report.AggregateRequest) (report.AggregateReport, error) {
	if err := req.Validate(); err != nil {
		return report.AggregateReport{}, err
	}
	from, to := req.Period()

	records, err := s.records(ctx, companyID, req.Kind, from, to, req.Sector)
	if err != nil {
		return report.AggregateReport{}, err
	}

	groups := report.GroupAndSum(records, req.GroupBy, req.Metric)
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Value(req.Metric))
	}
	if groups == nil {
		groups = []report.Group{}
	}

	return report.AggregateReport{
		Kind:        req.Kind,
		GroupBy:     req.GroupBy,
		Metric:      req.Metric,
		From:        from.Format(calendar.DateLayout),
		To:          to.Format(calendar.DateLayout),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Groups:      groups,
		Ranking:     report.Rank(groups, req.Metric, report.RankingSize),
		Total:       total,
	}, nil
}

// RecurringAbsences implements report.ReportService.
func (s *ReportServiceImpl) RecurringAbsences(ctx context.Context, companyID string, today time.Time) ([]report.RecurringAbsence, error) {
	to := calendar.Day(today)
	from := to.AddDate(0, 0, -report.RecurringWindowDays)
	absences, err := s.absenceRepo.List(ctx, absence.AbsenceFilter{CompanyID: companyID, From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	return report.RecurringAbsences(absences, to), nil
}

// ExamAlerts implements report.ReportService.
func (s *ReportServiceImpl) ExamAlerts(ctx context.Context, companyID string, today time.Time) ([]report.ExamAlert, error) {
	active := leave.StatusActive
	leaves, err := s.leaveRepo.List(ctx, leave.LeaveFilter{CompanyID: companyID, Status: &active, HasExam: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return report.ExamAlerts(leaves, today), nil
}

// Dashboard implements report.ReportService. Every panel is loaded in
// parallel and any failure fails the whole dashboard.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, companyID string, month time.Time) (report.Dashboard, error) {
	first, last := calendar.MonthBounds(month)
	today := s.now()

	var (
		activeEmployees   int
		monthlyCost       decimal.Decimal
		overtimeHours     decimal.Decimal
		overtimeAmount    decimal.Decimal
		absences          int
		certificateDays   decimal.Decimal
		activeLeaves      int
		pendingReferrals  int
		pendingFinance    decimal.Decimal
		recurringAbsences []report.RecurringAbsence
		examAlerts        []report.ExamAlert
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Headcount and monthly cost
	g.Go(func() error {
		status := employee.StatusActive
		employees, err := s.employeeRepo.List(gCtx, employee.EmployeeFilter{CompanyID: companyID, Status: &status})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		activeEmployees = len(employees)
		for _, e := range employees {
			monthlyCost = monthlyCost.Add(e.CostTotal)
		}
		return nil
	})

	// 2. Overtime of the month
	g.Go(func() error {
		entries, err := s.overtimeRepo.List(gCtx, overtime.EntryFilter{CompanyID: companyID, From: &first, To: &last})
		if err != nil {
			return fmt.Errorf("failed to list overtime: %w", err)
		}
		for _, e := range entries {
			overtimeHours = overtimeHours.Add(e.Hours)
			overtimeAmount = overtimeAmount.Add(e.Total())
		}
		return nil
	})

	// 3. Absences of the month
	g.Go(func() error {
		list, err := s.absenceRepo.List(gCtx, absence.AbsenceFilter{CompanyID: companyID, From: &first, To: &last})
		if err != nil {
			return fmt.Errorf("failed to list absences: %w", err)
		}
		absences = len(list)
		return nil
	})

	// 4. Certificate days of the month
	g.Go(func() error {
		certs, err := s.certRepo.List(gCtx, certificate.CertificateFilter{CompanyID: companyID, From: &first, To: &last})
		if err != nil {
			return fmt.Errorf("failed to list certificates: %w", err)
		}
		certificateDays = certificate.DaysOf(certs)
		return nil
	})

	// 5. Open leaves, referrals and upcoming exams
	g.Go(func() error {
		active := leave.StatusActive
		leaves, err := s.leaveRepo.List(gCtx, leave.LeaveFilter{CompanyID: companyID, Status: &active})
		if err != nil {
			return fmt.Errorf("failed to list leaves: %w", err)
		}
		activeLeaves = len(leaves)
		for _, l := range leaves {
			if l.INSSReferral && l.ReferralStatus == leave.ReferralPending {
				pendingReferrals++
			}
		}
		examAlerts = report.ExamAlerts(leaves, today)
		return nil
	})

	// 6. Pending payments
	g.Go(func() error {
		pending := finance.StatusPending
		entries, err := s.entryRepo.List(gCtx, finance.EntryFilter{CompanyID: companyID, Status: &pending})
		if err != nil {
			return fmt.Errorf("failed to list financial entries: %w", err)
		}
		for _, e := range entries {
			pendingFinance = pendingFinance.Add(e.Amount)
		}
		return nil
	})

	// 7. Recurring absences up to today
	g.Go(func() error {
		rows, err := s.RecurringAbsences(gCtx, companyID, today)
		if err != nil {
			return err
		}
		recurringAbsences = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.Dashboard{}, err
	}

	if recurringAbsences == nil {
		recurringAbsences = []report.RecurringAbsence{}
	}
	if examAlerts == nil {
		examAlerts = []report.ExamAlert{}
	}

	return report.Dashboard{
		CompanyID:         companyID,
		Month:             calendar.MonthKey(first),
		ActiveEmployees:   activeEmployees,
		MonthlyCost:       monthlyCost,
		OvertimeHours:     overtimeHours,
		OvertimeAmount:    overtimeAmount,
		Absences:          absences,
		CertificateDays:   certificateDays,
		ActiveLeaves:      activeLeaves,
		PendingReferrals:  pendingReferrals,
		PendingFinance:    pendingFinance,
		RecurringAbsences: recurringAbsences,
		ExamAlerts:        examAlerts,
	}, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, companyID string, req report.AggregateRequest, format report.Format) (report.ExportFile, error) {
	if format != report.FormatPDF && format != report.FormatXLSX {
		return report.ExportFile{}, report.ErrUnsupportedFormat
	}

	rep, err := s.Aggregate(ctx, companyID, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	file := report.ExportFile{
		Name: fmt.Sprintf("%s-%s-%s-%s.%s", rep.Kind, rep.GroupBy, rep.From, rep.To, format),
	}
	switch format {
	case report.FormatPDF:
		file.ContentType = "application/pdf"
		file.Data, err = renderPDF(rep)
	case report.FormatXLSX:
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file.Data, err = renderXLSX(rep)
	}
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to render report: %w", err)
	}

	if s.files == nil {
		return file, nil
	}

	key, err := s.files.Upload(ctx, bytes.NewReader(file.Data), fmt.Sprintf("reports/%s/%s", companyID, file.Name), file.ContentType)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to store report: %w", err)
	}
	file.URL, err = s.files.GetURL(ctx, key)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to resolve report url: %w", err)
	}

	slog.Info("Report exported", "company_id", companyID, "file", key, "size", len(file.Data))
	return file, nil
}
