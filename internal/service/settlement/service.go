package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/printer"
)

type SettlementServiceImpl struct {
	store          docstore.Transactor
	settlementRepo settlement.SettlementRepository
	entryRepo      finance.EntryRepository
	employeeRepo   employee.EmployeeRepository
	companyRepo    company.CompanyRepository
	notifier       notification.Notifier
}

func NewSettlementService(
	store docstore.Transactor,
	settlementRepo settlement.SettlementRepository,
	entryRepo finance.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	notifier notification.Notifier,
) settlement.SettlementService {
	return &SettlementServiceImpl{
		store:          store,
		settlementRepo: settlementRepo,
		entryRepo:      entryRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		notifier:       notifier,
	}
}

// compute loads the employee and seeds the settlement, then applies the
// operator overrides.
func (s *SettlementServiceImpl) compute(ctx context.Context, companyID string, req *settlement.SettlementRequest) (settlement.Settlement, error) {
	if err := req.Validate(); err != nil {
		return settlement.Settlement{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return settlement.Settlement{}, err
	}
	if e.CompanyID != companyID {
		return settlement.Settlement{}, employee.ErrEmployeeNotFound
	}

	result, err := settlement.Calculate(e, req.Termination())
	if err != nil {
		return settlement.Settlement{}, err
	}
	if len(req.Overrides) > 0 {
		if err := settlement.ApplyOverrides(&result, req.Overrides); err != nil {
			return settlement.Settlement{}, err
		}
	}
	result.Round()
	return result, nil
}

// Preview implements settlement.SettlementService.
func (s *SettlementServiceImpl) Preview(ctx context.Context, companyID string, req settlement.SettlementRequest) (settlement.Settlement, error) {
	return s.compute(ctx, companyID, &req)
}

// Confirm implements settlement.SettlementService. The settlement, its
// financial entries and the employee link are written in one transaction.
func (s *SettlementServiceImpl) Confirm(ctx context.Context, companyID string, req settlement.SettlementRequest) (settlement.ConfirmResponse, error) {
	author := jwt.OperatorFromContext(ctx).Signer()

	var resp settlement.ConfirmResponse
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		computed, err := s.compute(ctx, companyID, &req)
		if err != nil {
			return err
		}
		computed.CreatedBy = author

		created, err := s.settlementRepo.Create(ctx, computed)
		if err != nil {
			return fmt.Errorf("failed to create settlement: %w", err)
		}

		entryIDs := []string{}
		for _, entry := range settlement.FinancialEntries(created) {
			stored, err := s.entryRepo.Create(ctx, entry)
			if err != nil {
				return fmt.Errorf("failed to create financial entry: %w", err)
			}
			entryIDs = append(entryIDs, stored.ID)
		}

		e, err := s.employeeRepo.GetByID(ctx, created.EmployeeID)
		if err != nil {
			return err
		}
		e.LastSettlementID = created.ID
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to link settlement to employee: %w", err)
		}

		resp = settlement.ConfirmResponse{Settlement: created, EntryIDs: entryIDs}
		return nil
	})
	if err != nil {
		return settlement.ConfirmResponse{}, err
	}

	slog.Info("Settlement confirmed",
		"settlement_id", resp.Settlement.ID,
		"employee_id", resp.Settlement.EmployeeID,
		"net_amount", resp.Settlement.NetAmount.StringFixed(2),
		"entries", len(resp.EntryIDs))

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
			CompanyID: companyID,
			Type:      notification.TypeSettlementConfirmed,
			Severity:  notification.SeveritySuccess,
			Title:     "Rescisão confirmada",
			Message: fmt.Sprintf("Rescisão de %s confirmada: líquido %s",
				resp.Settlement.EmployeeName, printer.Money(resp.Settlement.NetAmount)),
			Data: map[string]interface{}{"settlement_id": resp.Settlement.ID},
		})
		if err != nil {
			slog.Warn("Failed to send notification", "settlement_id", resp.Settlement.ID, "error", err)
		}
	}
	return resp, nil
}

func (s *SettlementServiceImpl) settlementOf(ctx context.Context, companyID, id string) (settlement.Settlement, error) {
	found, err := s.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return settlement.Settlement{}, err
	}
	if found.CompanyID != companyID {
		return settlement.Settlement{}, settlement.ErrSettlementNotFound
	}
	return found, nil
}

// Get implements settlement.SettlementService.
func (s *SettlementServiceImpl) Get(ctx context.Context, companyID, id string) (settlement.Settlement, error) {
	return s.settlementOf(ctx, companyID, id)
}

// List implements settlement.SettlementService.
func (s *SettlementServiceImpl) List(ctx context.Context, filter settlement.SettlementFilter) ([]settlement.Settlement, error) {
	settlements, err := s.settlementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}

// Delete implements settlement.SettlementService. Paid entries block the
// deletion; pending ones go with the settlement.
func (s *SettlementServiceImpl) Delete(ctx context.Context, companyID, id string) error {
	return s.store.RunTransaction(ctx, func(ctx context.Context) error {
		found, err := s.settlementOf(ctx, companyID, id)
		if err != nil {
			return err
		}

		entries, err := s.entryRepo.ListBySettlement(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list settlement entries: %w", err)
		}
		for _, entry := range entries {
			if entry.Status == finance.StatusPaid {
				return settlement.ErrSettlementHasPaidEntries
			}
		}
		for _, entry := range entries {
			if err := s.entryRepo.Delete(ctx, entry.ID); err != nil {
				return fmt.Errorf("failed to delete financial entry: %w", err)
			}
		}

		e, err := s.employeeRepo.GetByID(ctx, found.EmployeeID)
		switch {
		case err == nil && e.LastSettlementID == id:
			e.LastSettlementID = ""
			if err := s.employeeRepo.Update(ctx, e); err != nil {
				return fmt.Errorf("failed to unlink settlement: %w", err)
			}
		case err != nil && !errors.Is(err, employee.ErrEmployeeNotFound):
			return err
		}

		return s.settlementRepo.Delete(ctx, id)
	})
}

// Receipt implements settlement.SettlementService.
func (s *SettlementServiceImpl) Receipt(ctx context.Context, companyID, id string) ([]byte, error) {
	found, err := s.settlementOf(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return renderReceipt(found, c)
}
