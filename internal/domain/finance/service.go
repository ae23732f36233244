package finance

import "context"

type FinanceService interface {
	CreateEntry(ctx context.Context, companyID string, req CreateEntryRequest) (Entry, error)
	GetEntry(ctx context.Context, companyID, id string) (Entry, error)
	ListEntries(ctx context.Context, filter EntryFilter) (EntryListResponse, error)
	MarkPaid(ctx context.Context, companyID, id string, req MarkPaidRequest) (Entry, error)
	DeleteEntry(ctx context.Context, companyID, id string) error
}
