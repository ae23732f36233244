package finance

import "context"

type EntryRepository interface {
	GetByID(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)
	ListBySettlement(ctx context.Context, settlementID string) ([]Entry, error)
	Create(ctx context.Context, e Entry) (Entry, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}
