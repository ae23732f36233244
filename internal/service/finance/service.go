package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type FinanceServiceImpl struct {
	store        docstore.Transactor
	entryRepo    finance.EntryRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewFinanceService(store docstore.Transactor, entryRepo finance.EntryRepository, employeeRepo employee.EmployeeRepository) finance.FinanceService {
	return &FinanceServiceImpl{
		store:        store,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *FinanceServiceImpl) entryOf(ctx context.Context, companyID, id string) (finance.Entry, error) {
	e, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return finance.Entry{}, err
	}
	if e.CompanyID != companyID {
		return finance.Entry{}, finance.ErrEntryNotFound
	}
	return e, nil
}

// CreateEntry implements finance.FinanceService.
func (s *FinanceServiceImpl) CreateEntry(ctx context.Context, companyID string, req finance.CreateEntryRequest) (finance.Entry, error) {
	if err := req.Validate(); err != nil {
		return finance.Entry{}, err
	}

	if req.EmployeeID != "" {
		e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return finance.Entry{}, err
		}
		if e.CompanyID != companyID {
			return finance.Entry{}, employee.ErrEmployeeNotFound
		}
	}

	created, err := s.entryRepo.Create(ctx, finance.Entry{
		CompanyID:   companyID,
		EmployeeID:  req.EmployeeID,
		Origin:      req.Origin,
		SubCategory: strings.TrimSpace(req.SubCategory),
		DueDate:     req.Due(),
		Amount:      req.Amount.Round(2),
		Status:      finance.StatusPending,
		Reason:      strings.TrimSpace(req.Reason),
		CreatedBy:   jwt.OperatorFromContext(ctx).Signer(),
	})
	if err != nil {
		return finance.Entry{}, fmt.Errorf("failed to create financial entry: %w", err)
	}
	return created, nil
}

// GetEntry implements finance.FinanceService.
func (s *FinanceServiceImpl) GetEntry(ctx context.Context, companyID, id string) (finance.Entry, error) {
	return s.entryOf(ctx, companyID, id)
}

// ListEntries implements finance.FinanceService.
func (s *FinanceServiceImpl) ListEntries(ctx context.Context, filter finance.EntryFilter) (finance.EntryListResponse, error) {
	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return finance.EntryListResponse{}, fmt.Errorf("failed to list financial entries: %w", err)
	}

	resp := finance.EntryListResponse{
		Entries:      entries,
		TotalPending: decimal.Zero,
		TotalPaid:    decimal.Zero,
	}
	for _, e := range entries {
		switch e.Status {
		case finance.StatusPaid:
			resp.TotalPaid = resp.TotalPaid.Add(e.Amount)
		default:
			resp.TotalPending = resp.TotalPending.Add(e.Amount)
		}
	}
	return resp, nil
}

// MarkPaid implements finance.FinanceService. Payment is the only mutation
// an entry accepts.
func (s *FinanceServiceImpl) MarkPaid(ctx context.Context, companyID, id string, req finance.MarkPaidRequest) (finance.Entry, error) {
	if err := req.Validate(); err != nil {
		return finance.Entry{}, err
	}

	paidAt := s.now().UTC()
	if d, ok := validator.IsValidDate(req.PaidAt); ok {
		paidAt = d
	}

	var updated finance.Entry
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.entryOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if e.Status == finance.StatusPaid {
			return finance.ErrEntryAlreadyPaid
		}
		e.Status = finance.StatusPaid
		e.PaidAt = &paidAt
		if err := s.entryRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to mark entry paid: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return finance.Entry{}, err
	}
	return updated, nil
}

// DeleteEntry implements finance.FinanceService. Settlement entries are
// removed together with their settlement.
func (s *FinanceServiceImpl) DeleteEntry(ctx context.Context, companyID, id string) error {
	return s.store.RunTransaction(ctx, func(ctx context.Context) error {
		e, err := s.entryOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if e.SettlementID != "" {
			return finance.ErrEntryLinkedToSettlement
		}
		if e.Status == finance.StatusPaid {
			return finance.ErrEntryAlreadyPaid
		}
		return s.entryRepo.Delete(ctx, id)
	})
}
