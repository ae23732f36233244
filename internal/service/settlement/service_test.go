package settlement

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/fixtures"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc          settlement.SettlementService
	entryRepo    finance.EntryRepository
	employeeRepo employee.EmployeeRepository
	companyID    string
	employeeID   string
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	companyRepo := document.NewCompanyRepository(store)
	employeeRepo := document.NewEmployeeRepository(store)
	entryRepo := document.NewEntryRepository(store)

	c := company.Company{Name: "Acme", CNPJ: "11222333000181", Tax: fixtures.GetDefaultTaxConfig()}
	fixtures.ApplyCompanyDefaults(&c)
	c, err := companyRepo.Create(ctx, c)
	require.NoError(t, err)

	e, err := employeeRepo.Create(ctx, employee.Employee{
		Name:          "Ana Souza",
		CPF:           "52998224725",
		CompanyID:     c.ID,
		Sector:        "Produção",
		JobTitle:      "Operador",
		AdmissionDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Salary:        decimal.NewFromInt(3000),
		Status:        employee.StatusActive,
	})
	require.NoError(t, err)

	svc := NewSettlementService(store, document.NewSettlementRepository(store), entryRepo, employeeRepo, companyRepo, nil)
	return fixture{svc: svc, entryRepo: entryRepo, employeeRepo: employeeRepo, companyID: c.ID, employeeID: e.ID}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPreview_WritesNothing(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	s, err := f.svc.Preview(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2026-06-15",
	})
	require.NoError(t, err)
	assert.True(t, s.NetAmount.Equal(dec("4625")), s.NetAmount.String())

	list, err := f.svc.List(ctx, settlement.SettlementFilter{CompanyID: f.companyID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPreview_RoundsOnlyTotals(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	e, err := f.employeeRepo.GetByID(ctx, f.employeeID)
	require.NoError(t, err)
	e.Salary = dec("1000")
	e.AdmissionDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.employeeRepo.Update(ctx, e))

	s, err := f.svc.Preview(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2026-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "227.78", s.TotalEarnings.StringFixed(2))
	assert.Equal(t, "27.78", s.Earnings[settlement.LineVacationThird].Value.String())
	assert.True(t, s.NetAmount.Equal(s.TotalEarnings.Sub(s.TotalDeductions)))
}

func TestConfirm_WritesSettlementAndEntries(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Confirm(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2026-06-15",
		Overrides:       map[string]decimal.Decimal{settlement.LineFGTSPenalty: dec("96")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Settlement.ID)
	require.Len(t, resp.EntryIDs, 3)

	entries, err := f.entryRepo.ListBySettlement(ctx, resp.Settlement.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	total := decimal.Zero
	for _, e := range entries {
		assert.Equal(t, finance.StatusPending, e.Status)
		assert.Equal(t, f.employeeID, e.EmployeeID)
		total = total.Add(e.Amount)
	}
	assert.True(t, total.Equal(dec("4961")), total.String())

	e, err := f.employeeRepo.GetByID(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Equal(t, resp.Settlement.ID, e.LastSettlementID)

	got, err := f.svc.Get(ctx, f.companyID, resp.Settlement.ID)
	require.NoError(t, err)
	assert.True(t, got.Employer[settlement.LineFGTSPenalty].Overridden)
	assert.True(t, got.NetAmount.Equal(got.TotalEarnings.Sub(got.TotalDeductions)))

	_, err = f.svc.Get(ctx, "other", resp.Settlement.ID)
	assert.ErrorIs(t, err, settlement.ErrSettlementNotFound)
}

func TestConfirm_InvalidWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Confirm(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2025-12-31",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	_, err = f.svc.Confirm(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2026-06-15",
		Overrides:       map[string]decimal.Decimal{"bonus": dec("10")},
	})
	require.ErrorAs(t, err, &verrs)

	entries, err := f.entryRepo.List(ctx, finance.EntryFilter{CompanyID: f.companyID})
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = f.svc.Confirm(ctx, f.companyID, settlement.SettlementRequest{EmployeeID: "missing", TerminationDate: "2026-06-15"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Confirm(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2026-06-15",
	})
	require.NoError(t, err)
	require.Len(t, resp.EntryIDs, 2)

	paid, err := f.entryRepo.GetByID(ctx, resp.EntryIDs[0])
	require.NoError(t, err)
	paid.Status = finance.StatusPaid
	require.NoError(t, f.entryRepo.Update(ctx, paid))

	assert.ErrorIs(t, f.svc.Delete(ctx, f.companyID, resp.Settlement.ID), settlement.ErrSettlementHasPaidEntries)

	paid.Status = finance.StatusPending
	require.NoError(t, f.entryRepo.Update(ctx, paid))
	require.NoError(t, f.svc.Delete(ctx, f.companyID, resp.Settlement.ID))

	entries, err := f.entryRepo.ListBySettlement(ctx, resp.Settlement.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	e, err := f.employeeRepo.GetByID(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Empty(t, e.LastSettlementID)
}

func TestReceipt(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Confirm(ctx, f.companyID, settlement.SettlementRequest{
		EmployeeID:      f.employeeID,
		TerminationDate: "2026-06-15",
	})
	require.NoError(t, err)

	pdf, err := f.svc.Receipt(ctx, f.companyID, resp.Settlement.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}
