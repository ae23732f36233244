package absence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/report"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

type AbsenceServiceImpl struct {
	absenceRepo  absence.AbsenceRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Notifier
}

func NewAbsenceService(absenceRepo absence.AbsenceRepository, employeeRepo employee.EmployeeRepository, notifier notification.Notifier) absence.AbsenceService {
	return &AbsenceServiceImpl{
		absenceRepo:  absenceRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
	}
}

// Register implements absence.AbsenceService. Reaching the recurring absence
// threshold with this registration notifies the company.
func (s *AbsenceServiceImpl) Register(ctx context.Context, companyID string, req absence.RegisterRequest) (absence.Absence, error) {
	if err := req.Validate(); err != nil {
		return absence.Absence{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return absence.Absence{}, err
	}
	if e.CompanyID != companyID {
		return absence.Absence{}, employee.ErrEmployeeNotFound
	}
	if err := e.ValidateEventDate(req.AbsenceDate()); err != nil {
		return absence.Absence{}, err
	}

	created, err := s.absenceRepo.Create(ctx, absence.Absence{
		CompanyID:     companyID,
		EmployeeID:    e.ID,
		EmployeeName:  e.Name,
		Sector:        e.Sector,
		Date:          req.AbsenceDate(),
		Period:        req.Period,
		Justification: req.Justification,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedBy:     jwt.OperatorFromContext(ctx).Signer(),
	})
	if err != nil {
		return absence.Absence{}, fmt.Errorf("failed to register absence: %w", err)
	}

	s.checkRecurring(ctx, created)
	return created, nil
}

func (s *AbsenceServiceImpl) checkRecurring(ctx context.Context, a absence.Absence) {
	if s.notifier == nil {
		return
	}
	from := a.Date.AddDate(0, 0, -report.RecurringWindowDays)
	recent, err := s.absenceRepo.List(ctx, absence.AbsenceFilter{
		CompanyID:  a.CompanyID,
		EmployeeID: &a.EmployeeID,
		From:       &from,
		To:         &a.Date,
	})
	if err != nil {
		slog.Warn("Failed to check recurring absences", "employee_id", a.EmployeeID, "error", err)
		return
	}
	if len(recent) != report.RecurringMinAbsences {
		return
	}

	err = s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		CompanyID: a.CompanyID,
		Type:      notification.TypeRecurringAbsence,
		Severity:  notification.SeverityWarning,
		Title:     "Faltas recorrentes",
		Message: fmt.Sprintf("%s tem %d faltas nos últimos %d dias",
			a.EmployeeName, len(recent), report.RecurringWindowDays),
		Data: map[string]interface{}{"employee_id": a.EmployeeID, "count": len(recent)},
	})
	if err != nil {
		slog.Warn("Failed to send notification", "employee_id", a.EmployeeID, "error", err)
	}
}

// List implements absence.AbsenceService.
func (s *AbsenceServiceImpl) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.Absence, error) {
	absences, err := s.absenceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	return absences, nil
}

// Delete implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Delete(ctx context.Context, companyID, id string) error {
	a, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.CompanyID != companyID {
		return absence.ErrAbsenceNotFound
	}
	return s.absenceRepo.Delete(ctx, id)
}
