package overtime

import "context"

type OvertimeService interface {
	// Launch computes and stores an overtime entry for an active employee
	Launch(ctx context.Context, companyID string, req LaunchRequest) (Entry, error)

	List(ctx context.Context, filter EntryFilter) (EntryListResponse, error)

	// Sign approves the entry; signed entries are immutable
	Sign(ctx context.Context, companyID, id string) (Entry, error)

	// Delete removes an unsigned entry
	Delete(ctx context.Context, companyID, id string) error
}
