package movement

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/movement"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/payroll"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

type MovementServiceImpl struct {
	store        docstore.Transactor
	movementRepo movement.MovementRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	notifier     notification.Notifier
}

func NewMovementService(
	store docstore.Transactor,
	movementRepo movement.MovementRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	notifier notification.Notifier,
) movement.MovementService {
	return &MovementServiceImpl{
		store:        store,
		movementRepo: movementRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		notifier:     notifier,
	}
}

func (s *MovementServiceImpl) employeeOf(ctx context.Context, companyID, id string) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// RegisterTermination implements movement.MovementService.
func (s *MovementServiceImpl) RegisterTermination(ctx context.Context, companyID string, req movement.TerminationRequest) (movement.Movement, error) {
	if err := req.Validate(); err != nil {
		return movement.Movement{}, err
	}
	date := calendar.Day(req.EffectiveDate())
	author := jwt.OperatorFromContext(ctx).Signer()

	var created movement.Movement
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeOf(ctx, companyID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !e.IsActive() {
			return employee.ErrEmployeeAlreadyInactive
		}
		if err := e.ValidateEventDate(date); err != nil {
			return err
		}

		before := movement.SnapshotOf(e)
		e.Status = employee.StatusInactive
		e.TerminationDate = &date
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		created, err = s.movementRepo.Create(ctx, movement.Movement{
			EmployeeID:      e.ID,
			EmployeeName:    e.Name,
			CompanyID:       companyID,
			Type:            movement.TypeTermination,
			Date:            date,
			Reason:          strings.TrimSpace(req.Reason),
			Details:         strings.TrimSpace(req.Details),
			Before:          before,
			ResultingStatus: e.Status,
			CreatedBy:       author,
		})
		if err != nil {
			return fmt.Errorf("failed to create movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return movement.Movement{}, err
	}

	s.notify(ctx, created, fmt.Sprintf("Desligamento de %s registrado em %s", created.EmployeeName, created.Date.Format("02/01/2006")))
	return created, nil
}

// RegisterHire implements movement.MovementService. The employee may move to
// another company; empty sector or job title keep the current ones, which
// must exist in the target company.
func (s *MovementServiceImpl) RegisterHire(ctx context.Context, companyID string, req movement.HireRequest) (movement.Movement, error) {
	if err := req.Validate(); err != nil {
		return movement.Movement{}, err
	}
	date := calendar.Day(req.EffectiveDate())
	author := jwt.OperatorFromContext(ctx).Signer()

	targetID := companyID
	if req.TargetCompanyID != "" {
		targetID = req.TargetCompanyID
	}
	if targetID != companyID {
		if op := jwt.OperatorFromContext(ctx); op.UserID != "" && !op.CanAccess(targetID) {
			return movement.Movement{}, company.ErrCompanyAccessDenied
		}
	}

	var created movement.Movement
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeOf(ctx, companyID, req.EmployeeID)
		if err != nil {
			return err
		}
		if e.IsActive() {
			return employee.ErrEmployeeAlreadyActive
		}
		if err := e.ValidateEventDate(date); err != nil {
			return err
		}

		target, err := s.companyRepo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		before := movement.SnapshotOf(e)
		if sector := strings.TrimSpace(req.Sector); sector != "" {
			e.Sector = sector
		}
		if jobTitle := strings.TrimSpace(req.JobTitle); jobTitle != "" {
			e.JobTitle = jobTitle
		}
		if !target.HasSector(e.Sector) {
			return company.ErrUnknownSector
		}
		if !target.HasJobTitle(e.JobTitle) {
			return company.ErrUnknownJobTitle
		}

		e.CompanyID = target.ID
		e.Status = employee.StatusActive
		e.TerminationDate = nil
		e.CostTotal = payroll.EmployerCost(e, target).Total
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		created, err = s.movementRepo.Create(ctx, movement.Movement{
			EmployeeID:      e.ID,
			EmployeeName:    e.Name,
			CompanyID:       target.ID,
			Type:            movement.TypeHire,
			Date:            date,
			Reason:          strings.TrimSpace(req.Reason),
			Details:         strings.TrimSpace(req.Details),
			Before:          before,
			ResultingStatus: e.Status,
			CreatedBy:       author,
		})
		if err != nil {
			return fmt.Errorf("failed to create movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return movement.Movement{}, err
	}

	s.notify(ctx, created, fmt.Sprintf("Admissão de %s registrada em %s", created.EmployeeName, created.Date.Format("02/01/2006")))
	return created, nil
}

// List implements movement.MovementService.
func (s *MovementServiceImpl) List(ctx context.Context, filter movement.MovementFilter) ([]movement.Movement, error) {
	movements, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// Revert implements movement.MovementService. Only the latest movement of the
// employee can be reverted, so snapshots are always restored in order.
func (s *MovementServiceImpl) Revert(ctx context.Context, companyID, id string) error {
	var reverted movement.Movement
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		m, err := s.movementRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m.CompanyID != companyID && m.Before.CompanyID != companyID {
			return movement.ErrMovementNotFound
		}

		latest, err := s.movementRepo.LatestForEmployee(ctx, m.EmployeeID)
		if err != nil {
			return err
		}
		if latest.ID != m.ID {
			return movement.ErrMovementNotLatest
		}

		e, err := s.employeeRepo.GetByID(ctx, m.EmployeeID)
		if err != nil {
			return err
		}
		m.Before.Restore(&e)

		restoredCompany, err := s.companyRepo.GetByID(ctx, e.CompanyID)
		if err != nil {
			return err
		}
		e.CostTotal = payroll.EmployerCost(e, restoredCompany).Total

		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to restore employee: %w", err)
		}
		if err := s.movementRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete movement: %w", err)
		}
		reverted = m
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Movement reverted", "movement_id", id, "type", reverted.Type, "employee_id", reverted.EmployeeID)
	return nil
}

func (s *MovementServiceImpl) notify(ctx context.Context, m movement.Movement, message string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		CompanyID: m.CompanyID,
		Type:      notification.TypeMovementRegistered,
		Severity:  notification.SeveritySuccess,
		Title:     "Movimentação registrada",
		Message:   message,
		Data: map[string]interface{}{
			"movement_id": m.ID,
			"employee_id": m.EmployeeID,
			"type":        string(m.Type),
		},
	})
	if err != nil {
		slog.Warn("Failed to send notification", "movement_id", m.ID, "error", err)
	}
}
