package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type OvertimeServiceImpl struct {
	store        docstore.Transactor
	entryRepo    overtime.EntryRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewOvertimeService(store docstore.Transactor, entryRepo overtime.EntryRepository, employeeRepo employee.EmployeeRepository) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		store:        store,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Launch implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Launch(ctx context.Context, companyID string, req overtime.LaunchRequest) (overtime.Entry, error) {
	if err := req.Validate(); err != nil {
		return overtime.Entry{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return overtime.Entry{}, err
	}
	if e.CompanyID != companyID {
		return overtime.Entry{}, employee.ErrEmployeeNotFound
	}
	if !e.IsActive() {
		return overtime.Entry{}, employee.ErrEmployeeAlreadyInactive
	}
	if err := e.ValidateEventDate(req.EntryDate()); err != nil {
		return overtime.Entry{}, err
	}

	calc, err := overtime.Calculate(e.Salary, req.EntryDate(), req.ClockIn, req.ClockOut, req.Tier)
	if err != nil {
		return overtime.Entry{}, err
	}

	created, err := s.entryRepo.Create(ctx, overtime.Entry{
		CompanyID:    companyID,
		EmployeeID:   e.ID,
		EmployeeName: e.Name,
		Sector:       e.Sector,
		Date:         req.EntryDate(),
		ClockIn:      req.ClockIn,
		ClockOut:     req.ClockOut,
		Hours:        calc.Hours,
		Tier:         req.Tier,
		HourlyRate:   calc.HourlyRate,
		Pay:          calc.Pay,
		DSR:          calc.DSR,
		Notes:        strings.TrimSpace(req.Notes),
		CreatedBy:    jwt.OperatorFromContext(ctx).Signer(),
	})
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to create overtime entry: %w", err)
	}

	slog.Info("Overtime launched", "entry_id", created.ID, "employee_id", e.ID, "hours", created.Hours.String(), "tier", created.Tier)
	return created, nil
}

// List implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) List(ctx context.Context, filter overtime.EntryFilter) (overtime.EntryListResponse, error) {
	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return overtime.EntryListResponse{}, fmt.Errorf("failed to list overtime entries: %w", err)
	}

	resp := overtime.EntryListResponse{
		Entries:    entries,
		TotalHours: decimal.Zero,
		TotalPay:   decimal.Zero,
		TotalDSR:   decimal.Zero,
	}
	for _, e := range entries {
		resp.TotalHours = resp.TotalHours.Add(e.Hours)
		resp.TotalPay = resp.TotalPay.Add(e.Pay)
		resp.TotalDSR = resp.TotalDSR.Add(e.DSR)
	}
	return resp, nil
}

func (s *OvertimeServiceImpl) entryOf(ctx context.Context, companyID, id string) (overtime.Entry, error) {
	e, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.Entry{}, err
	}
	if e.CompanyID != companyID {
		return overtime.Entry{}, overtime.ErrEntryNotFound
	}
	return e, nil
}

// Sign implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Sign(ctx context.Context, companyID, id string) (overtime.Entry, error) {
	signer := jwt.OperatorFromContext(ctx).Signer()
	signedAt := s.now().UTC()

	var signed overtime.Entry
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.entryOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if e.Signed {
			return overtime.ErrEntrySigned
		}
		e.Signed = true
		e.SignedAt = &signedAt
		e.SignedBy = signer
		if err := s.entryRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to sign overtime entry: %w", err)
		}
		signed = e
		return nil
	})
	if err != nil {
		return overtime.Entry{}, err
	}
	return signed, nil
}

// Delete implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Delete(ctx context.Context, companyID, id string) error {
	return s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.entryOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if e.Signed {
			return overtime.ErrEntrySigned
		}
		return s.entryRepo.Delete(ctx, id)
	})
}
