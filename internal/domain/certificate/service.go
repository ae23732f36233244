package certificate

import "context"

type CertificateService interface {
	// Register stores a certificate; when the INSS threshold is crossed a
	// pending-referral leave is created with it
	Register(ctx context.Context, companyID string, req RegisterRequest) (RegisterResponse, error)

	// Evaluate runs the referral rules without writing anything
	Evaluate(ctx context.Context, companyID string, req RegisterRequest) (Evaluation, error)

	Get(ctx context.Context, companyID, id string) (Certificate, error)
	List(ctx context.Context, filter CertificateFilter) ([]Certificate, error)
	UpdateStatus(ctx context.Context, companyID, id string, req UpdateStatusRequest) (Certificate, error)

	// AddFollowUp appends a psychosocial follow-up stage
	AddFollowUp(ctx context.Context, companyID, id string, req FollowUpRequest) (Certificate, error)

	// AttachScan stores the scanned document, replacing a previous one
	AttachScan(ctx context.Context, companyID, id string, req AttachScanRequest) (Certificate, error)

	Delete(ctx context.Context, companyID, id string) error

	// ExpireOutdated marks valid certificates whose period ended as expired
	ExpireOutdated(ctx context.Context) (int, error)
}
