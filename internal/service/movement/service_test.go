package movement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/movement"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/fixtures"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (r *recordingNotifier) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, req)
	return nil
}

type fixture struct {
	svc          movement.MovementService
	employeeRepo employee.EmployeeRepository
	companyA     company.Company
	companyB     company.Company
	employee     employee.Employee
	notifier     *recordingNotifier
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	companyRepo := document.NewCompanyRepository(store)
	employeeRepo := document.NewEmployeeRepository(store)
	notifier := &recordingNotifier{}

	newCompany := func(name, cnpj string) company.Company {
		c := company.Company{Name: name, CNPJ: cnpj, Tax: fixtures.GetDefaultTaxConfig()}
		fixtures.ApplyCompanyDefaults(&c)
		created, err := companyRepo.Create(ctx, c)
		require.NoError(t, err)
		return created
	}
	a := newCompany("Acme", "11222333000181")
	b := newCompany("Beta", "11444777000161")

	e, err := employeeRepo.Create(ctx, employee.Employee{
		Name:          "Ana Souza",
		CPF:           "52998224725",
		CompanyID:     a.ID,
		Sector:        "Produção",
		JobTitle:      "Operador",
		AdmissionDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Salary:        decimal.NewFromInt(3000),
		Status:        employee.StatusActive,
	})
	require.NoError(t, err)

	svc := NewMovementService(store, document.NewMovementRepository(store), employeeRepo, companyRepo, notifier)
	return fixture{svc: svc, employeeRepo: employeeRepo, companyA: a, companyB: b, employee: e, notifier: notifier}
}

func TestTerminationThenRevert_RestoresEmployee(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	m, err := f.svc.RegisterTermination(ctx, f.companyA.ID, movement.TerminationRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-03-15",
		Reason:     "Pedido de demissão",
	})
	require.NoError(t, err)
	assert.Equal(t, movement.TypeTermination, m.Type)
	assert.Equal(t, employee.StatusActive, m.Before.Status)
	assert.Equal(t, employee.StatusInactive, m.ResultingStatus)

	e, err := f.employeeRepo.GetByID(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, e.Status)
	require.NotNil(t, e.TerminationDate)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *e.TerminationDate)

	_, err = f.svc.RegisterTermination(ctx, f.companyA.ID, movement.TerminationRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-03-16",
		Reason:     "again",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)

	require.NoError(t, f.svc.Revert(ctx, f.companyA.ID, m.ID))

	e, err = f.employeeRepo.GetByID(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusActive, e.Status)
	assert.Nil(t, e.TerminationDate)
	assert.Equal(t, f.companyA.ID, e.CompanyID)
	assert.Equal(t, "Produção", e.Sector)
	assert.Equal(t, "Operador", e.JobTitle)

	movements, err := f.svc.List(ctx, movement.MovementFilter{CompanyID: f.companyA.ID})
	require.NoError(t, err)
	assert.Empty(t, movements)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notification.TypeMovementRegistered, f.notifier.sent[0].Type)
}

func TestHireIntoAnotherCompany_ThenRevert(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	term, err := f.svc.RegisterTermination(ctx, f.companyA.ID, movement.TerminationRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-01-31",
		Reason:     "Transferência",
	})
	require.NoError(t, err)

	hire, err := f.svc.RegisterHire(ctx, f.companyA.ID, movement.HireRequest{
		EmployeeID:      f.employee.ID,
		Date:            "2026-02-01",
		Reason:          "Transferência",
		TargetCompanyID: f.companyB.ID,
		Sector:          "Logística",
		JobTitle:        "Motorista",
	})
	require.NoError(t, err)
	assert.Equal(t, f.companyB.ID, hire.CompanyID)
	assert.Equal(t, f.companyA.ID, hire.Before.CompanyID)

	e, err := f.employeeRepo.GetByID(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, f.companyB.ID, e.CompanyID)
	assert.Equal(t, "Logística", e.Sector)
	assert.True(t, e.IsActive())
	assert.True(t, e.CostTotal.IsPositive())

	// the termination is no longer the latest movement
	assert.ErrorIs(t, f.svc.Revert(ctx, f.companyA.ID, term.ID), movement.ErrMovementNotLatest)

	// the origin company can revert the transfer
	require.NoError(t, f.svc.Revert(ctx, f.companyA.ID, hire.ID))
	e, err = f.employeeRepo.GetByID(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, f.companyA.ID, e.CompanyID)
	assert.Equal(t, employee.StatusInactive, e.Status)

	require.NoError(t, f.svc.Revert(ctx, f.companyA.ID, term.ID))
	e, err = f.employeeRepo.GetByID(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.True(t, e.IsActive())
}

func TestRegisterHire_Rejects(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.RegisterHire(ctx, f.companyA.ID, movement.HireRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-02-01",
		Reason:     "Readmissão",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyActive)

	_, err = f.svc.RegisterTermination(ctx, f.companyA.ID, movement.TerminationRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-01-31",
		Reason:     "Fim de contrato",
	})
	require.NoError(t, err)

	_, err = f.svc.RegisterHire(ctx, f.companyA.ID, movement.HireRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-02-01",
		Reason:     "Readmissão",
		Sector:     "Astronomia",
	})
	assert.ErrorIs(t, err, company.ErrUnknownSector)

	// the failed hire wrote nothing
	e, err := f.employeeRepo.GetByID(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, e.Status)
}

func TestRegisterTermination_BeforeAdmission(t *testing.T) {
	f := setup(t)
	_, err := f.svc.RegisterTermination(context.Background(), f.companyA.ID, movement.TerminationRequest{
		EmployeeID: f.employee.ID,
		Date:       "2020-01-01",
		Reason:     "x",
	})
	assert.ErrorIs(t, err, employee.ErrEventBeforeAdmission)
}

func TestRevert_OtherCompany(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	m, err := f.svc.RegisterTermination(ctx, f.companyA.ID, movement.TerminationRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-03-15",
		Reason:     "x",
	})
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.Revert(ctx, f.companyB.ID, m.ID), movement.ErrMovementNotFound)
}
