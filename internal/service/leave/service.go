package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

type LeaveServiceImpl struct {
	store        docstore.Transactor
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(store docstore.Transactor, leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		store:        store,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *LeaveServiceImpl) leaveOf(ctx context.Context, companyID, id string) (leave.Leave, error) {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.Leave{}, err
	}
	if l.CompanyID != companyID {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

// CreateLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeave(ctx context.Context, companyID string, req leave.CreateLeaveRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.Leave{}, err
	}
	if e.CompanyID != companyID {
		return leave.Leave{}, employee.ErrEmployeeNotFound
	}
	if err := e.ValidateEventDate(req.Start()); err != nil {
		return leave.Leave{}, err
	}

	l := leave.Leave{
		CompanyID:       companyID,
		EmployeeID:      e.ID,
		EmployeeName:    e.Name,
		Type:            req.Type,
		Status:          leave.StatusActive,
		StartDate:       calendar.Day(req.Start()),
		ExpectedEndDate: req.ExpectedEnd(),
		CID:             strings.ToUpper(strings.TrimSpace(req.CID)),
		INSSReferral:    req.INSSReferral,
		CertificateIDs:  []string{},
		Notes:           strings.TrimSpace(req.Notes),
		CreatedBy:       jwt.OperatorFromContext(ctx).Signer(),
	}
	if l.INSSReferral {
		l.ReferralStatus = leave.ReferralPending
	}

	created, err := s.leaveRepo.Create(ctx, l)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	slog.Info("Leave created", "leave_id", created.ID, "employee_id", e.ID, "type", created.Type)
	return created, nil
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, companyID, id string) (leave.Leave, error) {
	return s.leaveOf(ctx, companyID, id)
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leaves, nil
}

// update loads an active leave of the company, applies fn and saves it.
func (s *LeaveServiceImpl) update(ctx context.Context, companyID, id string, fn func(*leave.Leave) error) (leave.Leave, error) {
	var updated leave.Leave
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		l, err := s.leaveOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return leave.ErrLeaveClosed
		}
		if err := fn(&l); err != nil {
			return err
		}
		if err := s.leaveRepo.Update(ctx, l); err != nil {
			return fmt.Errorf("failed to update leave: %w", err)
		}
		updated = l
		return nil
	})
	if err != nil {
		return leave.Leave{}, err
	}
	return updated, nil
}

// MarkReferred implements leave.LeaveService.
func (s *LeaveServiceImpl) MarkReferred(ctx context.Context, companyID, id string, req leave.ReferRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}
	return s.update(ctx, companyID, id, func(l *leave.Leave) error {
		if !l.INSSReferral {
			return leave.ErrLeaveNotReferred
		}
		if l.ReferralStatus == leave.ReferralReferred {
			return leave.ErrAlreadyReferred
		}
		date := calendar.Day(req.Date())
		if date.Before(l.StartDate) {
			return leave.ErrEndBeforeStart
		}
		l.ReferralStatus = leave.ReferralReferred
		l.ReferralDate = &date
		l.ProtocolNumber = strings.TrimSpace(req.ProtocolNumber)
		return nil
	})
}

// ScheduleExam implements leave.LeaveService. Only referred leaves get an
// INSS examination.
func (s *LeaveServiceImpl) ScheduleExam(ctx context.Context, companyID, id string, req leave.ScheduleExamRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}
	return s.update(ctx, companyID, id, func(l *leave.Leave) error {
		if !l.INSSReferral || l.ReferralStatus != leave.ReferralReferred {
			return leave.ErrLeaveNotReferred
		}
		date := calendar.Day(req.Date())
		if date.Before(l.StartDate) {
			return leave.ErrEndBeforeStart
		}
		l.ExamDate = &date
		return nil
	})
}

// CloseLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) CloseLeave(ctx context.Context, companyID, id string, req leave.CloseLeaveRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}
	closed, err := s.update(ctx, companyID, id, func(l *leave.Leave) error {
		date := calendar.Day(req.Date())
		if date.Before(l.StartDate) {
			return leave.ErrEndBeforeStart
		}
		l.Status = leave.StatusClosed
		l.EndDate = &date
		return nil
	})
	if err != nil {
		return leave.Leave{}, err
	}
	slog.Info("Leave closed", "leave_id", closed.ID, "employee_id", closed.EmployeeID)
	return closed, nil
}
