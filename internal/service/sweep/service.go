// Package sweep holds the background jobs that scan every company for
// upcoming INSS exams, recurring absences and outdated certificates.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/config"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/report"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/cron"
)

type Sweeper struct {
	companyRepo  company.CompanyRepository
	reports      report.ReportService
	certificates certificate.CertificateService
	notifier     notification.Notifier
	now          func() time.Time
}

func NewSweeper(
	companyRepo company.CompanyRepository,
	reports report.ReportService,
	certificates certificate.CertificateService,
	notifier notification.Notifier,
) *Sweeper {
	return &Sweeper{
		companyRepo:  companyRepo,
		reports:      reports,
		certificates: certificates,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Register adds the sweeps to sched with the configured intervals.
func (s *Sweeper) Register(sched *cron.Scheduler, cfg config.JobsConfig) {
	sched.AddJob("exam_alerts", cfg.ExamAlertInterval, s.ExamAlerts)
	sched.AddJob("recurring_absences", cfg.RecurringAbsenceInterval, func(ctx context.Context) error {
		return s.RecurringAbsences(ctx, cfg.RecurringAbsenceInterval)
	})
	sched.AddJob("certificate_expiry", cfg.CertificateExpiryInterval, func(ctx context.Context) error {
		_, err := s.certificates.ExpireOutdated(ctx)
		return err
	})
}

// eachCompany runs fn for every company and joins the failures, so one
// broken company does not hide the others.
func (s *Sweeper) eachCompany(ctx context.Context, fn func(ctx context.Context, c company.Company) error) error {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}
	var errs []error
	for _, c := range companies {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(ctx, c); err != nil {
			errs = append(errs, fmt.Errorf("company %s: %w", c.ID, err))
		}
	}
	return errors.Join(errs...)
}

// ExamAlerts notifies each company of INSS examinations due within five
// business days.
func (s *Sweeper) ExamAlerts(ctx context.Context) error {
	today := calendar.Day(s.now())
	sent := 0
	err := s.eachCompany(ctx, func(ctx context.Context, c company.Company) error {
		alerts, err := s.reports.ExamAlerts(ctx, c.ID, today)
		if err != nil {
			return err
		}
		for _, a := range alerts {
			s.notify(ctx, notification.CreateNotificationRequest{
				CompanyID: c.ID,
				Type:      notification.TypeExamAlert,
				Severity:  notification.SeverityWarning,
				Title:     "Perícia do INSS próxima",
				Message: fmt.Sprintf("Perícia de %s em %s (%d dias úteis)",
					a.EmployeeName, a.ExamDate.Format("02/01/2006"), a.BusinessDays),
				Data: map[string]interface{}{"leave_id": a.LeaveID, "employee_id": a.EmployeeID},
			})
			sent++
		}
		return nil
	})
	slog.Info("Exam alert sweep finished", "alerts", sent)
	return err
}

// RecurringAbsences notifies employees flagged for recurring absences whose
// latest absence falls within the last sweep interval, so a flag is reported
// once per new absence rather than on every run.
func (s *Sweeper) RecurringAbsences(ctx context.Context, interval time.Duration) error {
	today := calendar.Day(s.now())
	since := calendar.Day(s.now().Add(-interval))
	sent := 0
	err := s.eachCompany(ctx, func(ctx context.Context, c company.Company) error {
		rows, err := s.reports.RecurringAbsences(ctx, c.ID, today)
		if err != nil {
			return err
		}
		for _, r := range rows {
			if r.LastAbsence.Before(since) {
				continue
			}
			s.notify(ctx, notification.CreateNotificationRequest{
				CompanyID: c.ID,
				Type:      notification.TypeRecurringAbsence,
				Severity:  notification.SeverityWarning,
				Title:     "Faltas recorrentes",
				Message: fmt.Sprintf("%s tem %d faltas nos últimos %d dias",
					r.EmployeeName, r.Count, report.RecurringWindowDays),
				Data: map[string]interface{}{"employee_id": r.EmployeeID, "count": r.Count},
			})
			sent++
		}
		return nil
	})
	slog.Info("Recurring absence sweep finished", "alerts", sent)
	return err
}

func (s *Sweeper) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, req); err != nil {
		slog.Warn("Failed to send notification", "type", req.Type, "company_id", req.CompanyID, "error", err)
	}
}
