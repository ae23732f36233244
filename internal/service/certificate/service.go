package certificate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/calendar"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/docstore"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/service/file"
)

type CertificateServiceImpl struct {
	store        docstore.Transactor
	certRepo     certificate.CertificateRepository
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Notifier
	files        file.FileService
	now          func() time.Time
}

func NewCertificateService(
	store docstore.Transactor,
	certRepo certificate.CertificateRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Notifier,
	files file.FileService,
) certificate.CertificateService {
	return &CertificateServiceImpl{
		store:        store,
		certRepo:     certRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		files:        files,
		now:          time.Now,
	}
}

func (s *CertificateServiceImpl) certificateOf(ctx context.Context, companyID, id string) (certificate.Certificate, error) {
	c, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return certificate.Certificate{}, err
	}
	if c.CompanyID != companyID {
		return certificate.Certificate{}, certificate.ErrCertificateNotFound
	}
	return c, nil
}

// draft validates req and builds the unsaved certificate for it.
func (s *CertificateServiceImpl) draft(ctx context.Context, companyID string, req *certificate.RegisterRequest) (certificate.Certificate, error) {
	if err := req.Validate(); err != nil {
		return certificate.Certificate{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return certificate.Certificate{}, err
	}
	if e.CompanyID != companyID {
		return certificate.Certificate{}, employee.ErrEmployeeNotFound
	}
	date := calendar.Day(req.CertificateDate())
	if err := e.ValidateEventDate(date); err != nil {
		return certificate.Certificate{}, err
	}

	cid := strings.ToUpper(strings.TrimSpace(req.CID))
	c := certificate.Certificate{
		CompanyID:    companyID,
		EmployeeID:   e.ID,
		EmployeeName: e.Name,
		Sector:       e.Sector,
		Date:         date,
		Duration:     req.Duration,
		Days:         certificate.ToDays(req.Duration),
		CID:          cid,
		Physician:    strings.TrimSpace(req.Physician),
		Status:       certificate.StatusValid,
		Psychosocial: certificate.IsPsychosocial(cid),
		FollowUps:    []certificate.FollowUp{},
		CreatedBy:    jwt.OperatorFromContext(ctx).Signer(),
	}
	if c.Psychosocial {
		c.Stage = certificate.StageInitialAnalysis
	}
	return c, nil
}

func (s *CertificateServiceImpl) history(ctx context.Context, c certificate.Certificate) ([]certificate.Certificate, error) {
	from := c.Date.AddDate(0, 0, -certificate.ReferralWindowDays)
	history, err := s.certRepo.List(ctx, certificate.CertificateFilter{
		CompanyID:  c.CompanyID,
		EmployeeID: &c.EmployeeID,
		From:       &from,
		To:         &c.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate history: %w", err)
	}
	return history, nil
}

// Evaluate implements certificate.CertificateService.
func (s *CertificateServiceImpl) Evaluate(ctx context.Context, companyID string, req certificate.RegisterRequest) (certificate.Evaluation, error) {
	c, err := s.draft(ctx, companyID, &req)
	if err != nil {
		return certificate.Evaluation{}, err
	}
	history, err := s.history(ctx, c)
	if err != nil {
		return certificate.Evaluation{}, err
	}
	return certificate.EvaluateReferral(c, history), nil
}

// Register implements certificate.CertificateService. A triggered referral
// attaches the certificate to the employee's open referral leave, or opens a
// new one, in the same transaction as the certificate itself.
func (s *CertificateServiceImpl) Register(ctx context.Context, companyID string, req certificate.RegisterRequest) (certificate.RegisterResponse, error) {
	c, err := s.draft(ctx, companyID, &req)
	if err != nil {
		return certificate.RegisterResponse{}, err
	}

	var (
		resp   certificate.RegisterResponse
		opened bool
	)
	err = s.store.RunTransaction(ctx, func(ctx context.Context) error {
		history, err := s.history(ctx, c)
		if err != nil {
			return err
		}
		ev := certificate.EvaluateReferral(c, history)
		resp.Evaluation = ev

		var l leave.Leave
		if ev.Triggered {
			l, opened, err = s.referralLeave(ctx, c, ev)
			if err != nil {
				return err
			}
			c.INSSReferral = true
			c.LeaveID = l.ID
		}

		created, err := s.certRepo.Create(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to create certificate: %w", err)
		}
		resp.Certificate = created

		if ev.Triggered {
			if err := s.leaveRepo.AttachCertificate(ctx, l.ID, created.ID); err != nil {
				return fmt.Errorf("failed to link certificate to leave: %w", err)
			}
			resp.LeaveID = l.ID
		}
		return nil
	})
	if err != nil {
		return certificate.RegisterResponse{}, err
	}

	slog.Info("Certificate registered",
		"certificate_id", resp.Certificate.ID,
		"employee_id", c.EmployeeID,
		"days", c.Days.String(),
		"referral", resp.Evaluation.Triggered,
	)

	if resp.Evaluation.Triggered && opened {
		s.notify(ctx, notification.CreateNotificationRequest{
			CompanyID: companyID,
			Type:      notification.TypeINSSReferral,
			Severity:  notification.SeverityWarning,
			Title:     "Encaminhamento ao INSS",
			Message:   fmt.Sprintf("%s deve ser encaminhado(a) ao INSS: %s", c.EmployeeName, resp.Evaluation.Reason),
			Data: map[string]interface{}{
				"employee_id": c.EmployeeID,
				"leave_id":    resp.LeaveID,
				"total_days":  resp.Evaluation.TotalAccumulated.String(),
			},
		})
	}
	if c.Psychosocial {
		s.notify(ctx, notification.CreateNotificationRequest{
			CompanyID: companyID,
			Type:      notification.TypePsychosocialCase,
			Severity:  notification.SeverityWarning,
			Title:     "Caso psicossocial",
			Message:   fmt.Sprintf("Atestado com CID %s registrado para %s", c.CID, c.EmployeeName),
			Data:      map[string]interface{}{"employee_id": c.EmployeeID, "certificate_id": resp.Certificate.ID},
		})
	}
	return resp, nil
}

// referralLeave returns the employee's open pending referral, updated with
// the new accumulation, or creates one. The bool reports a new leave.
func (s *CertificateServiceImpl) referralLeave(ctx context.Context, c certificate.Certificate, ev certificate.Evaluation) (leave.Leave, bool, error) {
	active := leave.StatusActive
	pending := leave.ReferralPending
	open, err := s.leaveRepo.List(ctx, leave.LeaveFilter{
		CompanyID:      c.CompanyID,
		EmployeeID:     &c.EmployeeID,
		Status:         &active,
		ReferralStatus: &pending,
	})
	if err != nil {
		return leave.Leave{}, false, fmt.Errorf("failed to list leaves: %w", err)
	}
	days := int(ev.TotalAccumulated.Ceil().IntPart())

	for _, l := range open {
		if !l.INSSReferral {
			continue
		}
		if days > l.AccumulatedDays {
			l.AccumulatedDays = days
		}
		return l, false, nil
	}

	l, err := s.leaveRepo.Create(ctx, leave.Leave{
		CompanyID:       c.CompanyID,
		EmployeeID:      c.EmployeeID,
		EmployeeName:    c.EmployeeName,
		Type:            leave.TypeSickness,
		Status:          leave.StatusActive,
		StartDate:       c.Date,
		CID:             c.CID,
		INSSReferral:    true,
		ReferralStatus:  leave.ReferralPending,
		CertificateIDs:  []string{},
		AccumulatedDays: days,
		Notes:           ev.Reason,
		CreatedBy:       c.CreatedBy,
	})
	if err != nil {
		return leave.Leave{}, false, fmt.Errorf("failed to create referral leave: %w", err)
	}
	return l, true, nil
}

func (s *CertificateServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, req); err != nil {
		slog.Warn("Failed to send notification", "type", req.Type, "error", err)
	}
}

// Get implements certificate.CertificateService.
func (s *CertificateServiceImpl) Get(ctx context.Context, companyID, id string) (certificate.Certificate, error) {
	return s.certificateOf(ctx, companyID, id)
}

// List implements certificate.CertificateService.
func (s *CertificateServiceImpl) List(ctx context.Context, filter certificate.CertificateFilter) ([]certificate.Certificate, error) {
	certs, err := s.certRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certs, nil
}

// UpdateStatus implements certificate.CertificateService.
func (s *CertificateServiceImpl) UpdateStatus(ctx context.Context, companyID, id string, req certificate.UpdateStatusRequest) (certificate.Certificate, error) {
	if err := req.Validate(); err != nil {
		return certificate.Certificate{}, err
	}
	if _, err := s.certificateOf(ctx, companyID, id); err != nil {
		return certificate.Certificate{}, err
	}
	if err := s.certRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return certificate.Certificate{}, fmt.Errorf("failed to update certificate status: %w", err)
	}
	return s.certRepo.GetByID(ctx, id)
}

// AddFollowUp implements certificate.CertificateService.
func (s *CertificateServiceImpl) AddFollowUp(ctx context.Context, companyID, id string, req certificate.FollowUpRequest) (certificate.Certificate, error) {
	if err := req.Validate(); err != nil {
		return certificate.Certificate{}, err
	}

	var updated certificate.Certificate
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		c, err := s.certificateOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		if err := certificate.CanFollowUp(c, req.Stage); err != nil {
			return err
		}
		err = s.certRepo.AppendFollowUp(ctx, id, certificate.FollowUp{
			Stage:  req.Stage,
			Date:   s.now().UTC(),
			Notes:  strings.TrimSpace(req.Notes),
			Author: jwt.OperatorFromContext(ctx).Signer(),
		})
		if err != nil {
			return fmt.Errorf("failed to append follow-up: %w", err)
		}
		updated, err = s.certRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return certificate.Certificate{}, err
	}
	return updated, nil
}

// AttachScan implements certificate.CertificateService.
func (s *CertificateServiceImpl) AttachScan(ctx context.Context, companyID, id string, req certificate.AttachScanRequest) (certificate.Certificate, error) {
	if err := req.Validate(); err != nil {
		return certificate.Certificate{}, err
	}
	if s.files == nil {
		return certificate.Certificate{}, fmt.Errorf("certificate scans are not configured")
	}

	c, err := s.certificateOf(ctx, companyID, id)
	if err != nil {
		return certificate.Certificate{}, err
	}

	key, err := s.files.UploadCertificateScan(ctx, companyID, id, req.File, req.Filename)
	if err != nil {
		return certificate.Certificate{}, err
	}
	if err := s.certRepo.SetScan(ctx, id, key); err != nil {
		s.removeScan(ctx, key)
		return certificate.Certificate{}, fmt.Errorf("failed to attach scan: %w", err)
	}
	if c.ScanKey != "" {
		s.removeScan(ctx, c.ScanKey)
	}

	slog.Info("Certificate scan attached", "company_id", companyID, "certificate_id", id, "key", key)
	return s.certRepo.GetByID(ctx, id)
}

func (s *CertificateServiceImpl) removeScan(ctx context.Context, key string) {
	if s.files == nil || key == "" {
		return
	}
	if err := s.files.DeleteFile(ctx, key); err != nil {
		slog.Warn("Failed to remove certificate scan", "key", key, "error", err)
	}
}

// Delete implements certificate.CertificateService. The certificate is also
// detached from its referral leave.
func (s *CertificateServiceImpl) Delete(ctx context.Context, companyID, id string) error {
	var scanKey string
	err := s.store.RunTransaction(ctx, func(ctx context.Context) error {
		c, err := s.certificateOf(ctx, companyID, id)
		if err != nil {
			return err
		}
		scanKey = c.ScanKey
		if c.LeaveID != "" {
			err := s.leaveRepo.DetachCertificate(ctx, c.LeaveID, id)
			if err != nil && !errors.Is(err, leave.ErrLeaveNotFound) {
				return fmt.Errorf("failed to detach certificate from leave: %w", err)
			}
		}
		return s.certRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.removeScan(ctx, scanKey)
	return nil
}

// ExpireOutdated implements certificate.CertificateService.
func (s *CertificateServiceImpl) ExpireOutdated(ctx context.Context) (int, error) {
	today := calendar.Day(s.now())
	valid := certificate.StatusValid
	certs, err := s.certRepo.List(ctx, certificate.CertificateFilter{Status: &valid, To: &today})
	if err != nil {
		return 0, fmt.Errorf("failed to list certificates: %w", err)
	}

	expired := 0
	for _, c := range certs {
		if !c.EndDate().Before(today) {
			continue
		}
		if err := s.certRepo.UpdateStatus(ctx, c.ID, certificate.StatusExpired); err != nil {
			return expired, fmt.Errorf("failed to expire certificate %s: %w", c.ID, err)
		}
		expired++

		s.notify(ctx, notification.CreateNotificationRequest{
			CompanyID: c.CompanyID,
			Type:      notification.TypeCertificateExpired,
			Severity:  notification.SeverityInfo,
			Title:     "Atestado expirado",
			Message:   fmt.Sprintf("O atestado de %s terminou em %s", c.EmployeeName, c.EndDate().Format("02/01/2006")),
			Data:      map[string]interface{}{"employee_id": c.EmployeeID, "certificate_id": c.ID},
		})
	}

	if expired > 0 {
		slog.Info("Certificates expired", "count", expired)
	}
	return expired, nil
}
