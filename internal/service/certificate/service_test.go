package certificate

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
	"github.com/nexter-rh/nexter-backend-go/internal/repository/document"
	"github.com/nexter-rh/nexter-backend-go/internal/service/file"
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

func (r *recordingNotifier) types() []notification.NotificationType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.NotificationType
	for _, n := range r.sent {
		out = append(out, n.Type)
	}
	return out
}

type fixture struct {
	svc      *CertificateServiceImpl
	leaves   leave.LeaveRepository
	notifier *recordingNotifier
	storage  storage.FileStorage
	employee employee.Employee
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	employeeRepo := document.NewEmployeeRepository(store)
	leaveRepo := document.NewLeaveRepository(store)
	notifier := &recordingNotifier{}
	local, err := storage.NewLocalStorage(t.TempDir(), "/api/v1/files")
	require.NoError(t, err)
	files := file.NewFileService(local)

	e, err := employeeRepo.Create(context.Background(), employee.Employee{
		Name:          "Bruno Lima",
		CompanyID:     "c1",
		Sector:        "Produção",
		AdmissionDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:        employee.StatusActive,
	})
	require.NoError(t, err)

	svc := NewCertificateService(store, document.NewCertificateRepository(store), leaveRepo, employeeRepo, notifier, files)
	return fixture{svc: svc.(*CertificateServiceImpl), leaves: leaveRepo, notifier: notifier, storage: local, employee: e}
}

func days(n int64) certificate.Duration {
	return certificate.Duration{Value: decimal.NewFromInt(n), Unit: certificate.UnitDays}
}

func TestRegister_SingleLongCertificateOpensReferral(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-04-01",
		Duration:   days(16),
		CID:        "M54.5",
		Physician:  "Dra. Ana",
	})
	require.NoError(t, err)

	assert.True(t, resp.Evaluation.Triggered)
	assert.Equal(t, "certificate exceeds 15 days", resp.Evaluation.Reason)
	require.NotEmpty(t, resp.LeaveID)
	assert.True(t, resp.Certificate.INSSReferral)
	assert.Equal(t, resp.LeaveID, resp.Certificate.LeaveID)
	assert.False(t, resp.Certificate.Psychosocial)

	l, err := f.leaves.GetByID(ctx, resp.LeaveID)
	require.NoError(t, err)
	assert.Equal(t, leave.TypeSickness, l.Type)
	assert.Equal(t, leave.ReferralPending, l.ReferralStatus)
	assert.Equal(t, []string{resp.Certificate.ID}, l.CertificateIDs)
	assert.Equal(t, 16, l.AccumulatedDays)

	assert.Equal(t, []notification.NotificationType{notification.TypeINSSReferral}, f.notifier.types())
}

func TestRegister_AccumulatesWithinWindow(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	register := func(date string, d certificate.Duration, cid string) certificate.RegisterResponse {
		t.Helper()
		resp, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
			EmployeeID: f.employee.ID,
			Date:       date,
			Duration:   d,
			CID:        cid,
			Physician:  "Dr. Paulo",
		})
		require.NoError(t, err)
		return resp
	}

	// outside the 60 day window of the later ones
	first := register("2026-01-05", days(10), "J11")
	assert.False(t, first.Evaluation.Triggered)

	second := register("2026-04-01", days(10), "J11")
	assert.False(t, second.Evaluation.Triggered)
	assert.True(t, second.Evaluation.TotalAccumulated.Equal(decimal.NewFromInt(10)))

	third := register("2026-04-20", days(6), "K29")
	assert.True(t, third.Evaluation.Triggered)
	assert.Equal(t, "certificates exceed 15 days within 60 days", third.Evaluation.Reason)
	assert.True(t, third.Evaluation.SameCIDAccumulated.Equal(decimal.NewFromInt(6)))

	// 16 hours are two days and join the open referral
	fourth := register("2026-04-28", certificate.Duration{Value: decimal.NewFromInt(16), Unit: certificate.UnitHours}, "K29")
	assert.True(t, fourth.Evaluation.Triggered)
	assert.True(t, fourth.Certificate.Days.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, third.LeaveID, fourth.LeaveID)

	l, err := f.leaves.GetByID(ctx, third.LeaveID)
	require.NoError(t, err)
	assert.Equal(t, []string{third.Certificate.ID, fourth.Certificate.ID}, l.CertificateIDs)
	assert.Equal(t, 18, l.AccumulatedDays)

	assert.Equal(t, []notification.NotificationType{notification.TypeINSSReferral}, f.notifier.types(),
		"joining an open referral does not notify again")
}

func TestEvaluate_DoesNotWrite(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	ev, err := f.svc.Evaluate(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-04-01",
		Duration:   days(20),
		CID:        "S52",
		Physician:  "Dr. Paulo",
	})
	require.NoError(t, err)
	assert.True(t, ev.Triggered)

	certs, err := f.svc.List(ctx, certificate.CertificateFilter{CompanyID: "c1"})
	require.NoError(t, err)
	assert.Empty(t, certs)
	leaves, err := f.leaves.List(ctx, leave.LeaveFilter{CompanyID: "c1"})
	require.NoError(t, err)
	assert.Empty(t, leaves)
	assert.Empty(t, f.notifier.types())
}

func TestRegister_Rejects(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Register(ctx, "c2", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2026-04-01", Duration: days(1), CID: "J11", Physician: "X",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2024-12-01", Duration: days(1), CID: "J11", Physician: "X",
	})
	assert.ErrorIs(t, err, employee.ErrEventBeforeAdmission)

	_, err = f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2026-04-01", CID: "J11", Physician: "X",
	})
	assert.Error(t, err, "duration is required")
}

func TestFollowUp(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-04-01",
		Duration:   days(3),
		CID:        "f32.1",
		Physician:  "Dra. Ana",
	})
	require.NoError(t, err)
	c := resp.Certificate
	assert.True(t, c.Psychosocial)
	assert.Equal(t, "F32.1", c.CID)
	assert.Equal(t, certificate.StageInitialAnalysis, c.Stage)
	assert.Equal(t, []notification.NotificationType{notification.TypePsychosocialCase}, f.notifier.types())

	c, err = f.svc.AddFollowUp(ctx, "c1", c.ID, certificate.FollowUpRequest{Stage: certificate.StageMeetingScheduled, Notes: "  quinta 10h "})
	require.NoError(t, err)
	assert.Equal(t, certificate.StageMeetingScheduled, c.Stage)
	require.Len(t, c.FollowUps, 1)
	assert.Equal(t, "quinta 10h", c.FollowUps[0].Notes)

	_, err = f.svc.AddFollowUp(ctx, "c1", c.ID, certificate.FollowUpRequest{Stage: certificate.StageInitialAnalysis})
	assert.ErrorIs(t, err, certificate.ErrStageBackwards)

	c, err = f.svc.AddFollowUp(ctx, "c1", c.ID, certificate.FollowUpRequest{Stage: certificate.StageCaseClosed})
	require.NoError(t, err)
	assert.True(t, c.Closed())

	_, err = f.svc.AddFollowUp(ctx, "c1", c.ID, certificate.FollowUpRequest{Stage: certificate.StageActionPlan})
	assert.ErrorIs(t, err, certificate.ErrCaseClosed)

	_, err = f.svc.AddFollowUp(ctx, "c2", c.ID, certificate.FollowUpRequest{Stage: certificate.StageActionPlan})
	assert.ErrorIs(t, err, certificate.ErrCertificateNotFound)

	plain, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2026-04-10", Duration: days(1), CID: "J11", Physician: "X",
	})
	require.NoError(t, err)
	_, err = f.svc.AddFollowUp(ctx, "c1", plain.Certificate.ID, certificate.FollowUpRequest{Stage: certificate.StageMeetingScheduled})
	assert.ErrorIs(t, err, certificate.ErrNotPsychosocial)
}

func TestExpireOutdated(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	old, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2026-03-02", Duration: days(3), CID: "J11", Physician: "X",
	})
	require.NoError(t, err)
	current, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2026-03-09", Duration: days(5), CID: "J11", Physician: "X",
	})
	require.NoError(t, err)

	n, err := f.svc.ExpireOutdated(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.Get(ctx, "c1", old.Certificate.ID)
	require.NoError(t, err)
	assert.Equal(t, certificate.StatusExpired, got.Status)
	got, err = f.svc.Get(ctx, "c1", current.Certificate.ID)
	require.NoError(t, err)
	assert.Equal(t, certificate.StatusValid, got.Status)
	assert.Contains(t, f.notifier.types(), notification.TypeCertificateExpired)

	n, err = f.svc.ExpireOutdated(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID, Date: "2026-04-01", Duration: days(16), CID: "M54", Physician: "X",
	})
	require.NoError(t, err)

	c, err := f.svc.UpdateStatus(ctx, "c1", resp.Certificate.ID, certificate.UpdateStatusRequest{Status: certificate.StatusUnderReview})
	require.NoError(t, err)
	assert.Equal(t, certificate.StatusUnderReview, c.Status)

	_, err = f.svc.UpdateStatus(ctx, "c1", resp.Certificate.ID, certificate.UpdateStatusRequest{Status: "lost"})
	assert.Error(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, "c2", resp.Certificate.ID), certificate.ErrCertificateNotFound)
	require.NoError(t, f.svc.Delete(ctx, "c1", resp.Certificate.ID))

	l, err := f.leaves.GetByID(ctx, resp.LeaveID)
	require.NoError(t, err)
	assert.Empty(t, l.CertificateIDs)

	_, err = f.svc.Get(ctx, "c1", resp.Certificate.ID)
	assert.ErrorIs(t, err, certificate.ErrCertificateNotFound)
}

func TestAttachScan(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	resp, err := f.svc.Register(ctx, "c1", certificate.RegisterRequest{
		EmployeeID: f.employee.ID,
		Date:       "2026-04-01",
		Duration:   days(2),
		CID:        "J11",
		Physician:  "Dr. Caio",
	})
	require.NoError(t, err)
	id := resp.Certificate.ID

	_, err = f.svc.AttachScan(ctx, "c1", id, certificate.AttachScanRequest{})
	assert.Error(t, err)

	first, err := f.svc.AttachScan(ctx, "c1", id, certificate.AttachScanRequest{
		File: strings.NewReader("%PDF-1.4 first"), Filename: "atestado.pdf", Size: 14,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ScanKey)
	assert.True(t, strings.HasPrefix(first.ScanKey, "certificates/c1/"+id))

	second, err := f.svc.AttachScan(ctx, "c1", id, certificate.AttachScanRequest{
		File: strings.NewReader("%PDF-1.4 second"), Filename: "atestado.pdf", Size: 15,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ScanKey, second.ScanKey)

	exists, err := f.storage.Exists(ctx, first.ScanKey)
	require.NoError(t, err)
	assert.False(t, exists, "replaced scan is removed")

	_, err = f.svc.AttachScan(ctx, "c2", id, certificate.AttachScanRequest{
		File: strings.NewReader("x"), Filename: "a.pdf",
	})
	assert.ErrorIs(t, err, certificate.ErrCertificateNotFound)

	require.NoError(t, f.svc.Delete(ctx, "c1", id))
	exists, err = f.storage.Exists(ctx, second.ScanKey)
	require.NoError(t, err)
	assert.False(t, exists, "scan is removed with the certificate")
}
