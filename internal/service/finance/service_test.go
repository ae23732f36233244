package finance

import (
	"context"
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (finance.FinanceService, finance.EntryRepository, employee.Employee) {
	t.Helper()
	store := docstore.NewMemoryStore()
	employeeRepo := document.NewEmployeeRepository(store)
	entryRepo := document.NewEntryRepository(store)

	e, err := employeeRepo.Create(context.Background(), employee.Employee{Name: "Ana", CompanyID: "c1", Status: employee.StatusActive})
	require.NoError(t, err)

	return NewFinanceService(store, entryRepo, employeeRepo), entryRepo, e
}

func TestEntryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, e := setup(t)

	created, err := svc.CreateEntry(ctx, "c1", finance.CreateEntryRequest{
		EmployeeID:  e.ID,
		Origin:      finance.OriginBenefits,
		SubCategory: "Vale-refeição",
		DueDate:     "2026-04-05",
		Amount:      decimal.RequireFromString("260.004"),
		Reason:      "VR abril",
	})
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPending, created.Status)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("260")))
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), created.DueDate)

	_, err = svc.CreateEntry(ctx, "c1", finance.CreateEntryRequest{
		Origin:      finance.OriginTaxes,
		SubCategory: "DARF",
		DueDate:     "2026-04-20",
		Amount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, "c1", created.ID, finance.MarkPaidRequest{PaidAt: "2026-04-04"})
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC), *paid.PaidAt)

	_, err = svc.MarkPaid(ctx, "c1", created.ID, finance.MarkPaidRequest{})
	assert.ErrorIs(t, err, finance.ErrEntryAlreadyPaid)

	list, err := svc.ListEntries(ctx, finance.EntryFilter{CompanyID: "c1"})
	require.NoError(t, err)
	require.Len(t, list.Entries, 2)
	assert.True(t, list.TotalPaid.Equal(decimal.NewFromInt(260)))
	assert.True(t, list.TotalPending.Equal(decimal.NewFromInt(100)))

	status := finance.StatusPending
	list, err = svc.ListEntries(ctx, finance.EntryFilter{CompanyID: "c1", Status: &status})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)

	assert.ErrorIs(t, svc.DeleteEntry(ctx, "c1", created.ID), finance.ErrEntryAlreadyPaid)
	require.NoError(t, svc.DeleteEntry(ctx, "c1", list.Entries[0].ID))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, "c1", list.Entries[0].ID), finance.ErrEntryNotFound)
}

func TestCreateEntry_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _, e := setup(t)

	_, err := svc.CreateEntry(ctx, "c1", finance.CreateEntryRequest{Origin: "lottery", Amount: decimal.NewFromInt(-1)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "origin")
	assert.Contains(t, verrs.ToMap(), "amount")
	assert.Contains(t, verrs.ToMap(), "due_date")

	_, err = svc.CreateEntry(ctx, "c2", finance.CreateEntryRequest{
		EmployeeID:  e.ID,
		Origin:      finance.OriginManual,
		SubCategory: "Outros",
		DueDate:     "2026-04-05",
		Amount:      decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEntry_SettlementLinked(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup(t)

	linked, err := repo.Create(ctx, finance.Entry{
		CompanyID:    "c1",
		Origin:       finance.OriginPayroll,
		SubCategory:  finance.SubCategorySettlements,
		DueDate:      time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromInt(4625),
		Status:       finance.StatusPending,
		SettlementID: "s1",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEntry(ctx, "c1", linked.ID), finance.ErrEntryLinkedToSettlement)
	_, err = svc.GetEntry(ctx, "c2", linked.ID)
	assert.ErrorIs(t, err, finance.ErrEntryNotFound)
}
