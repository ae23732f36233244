package settlement

import "context"

type SettlementService interface {
	// Preview computes a settlement without writing anything
	Preview(ctx context.Context, companyID string, req SettlementRequest) (Settlement, error)

	// Confirm persists the settlement and its financial entries atomically
	Confirm(ctx context.Context, companyID string, req SettlementRequest) (ConfirmResponse, error)

	Get(ctx context.Context, companyID, id string) (Settlement, error)
	List(ctx context.Context, filter SettlementFilter) ([]Settlement, error)

	// Delete removes the settlement together with its pending entries
	Delete(ctx context.Context, companyID, id string) error

	// Receipt renders the settlement statement as PDF
	Receipt(ctx context.Context, companyID, id string) ([]byte, error)
}
