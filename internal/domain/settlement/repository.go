package settlement

import "context"

type SettlementRepository interface {
	GetByID(ctx context.Context, id string) (Settlement, error)
	List(ctx context.Context, filter SettlementFilter) ([]Settlement, error)
	Create(ctx context.Context, s Settlement) (Settlement, error)
	Delete(ctx context.Context, id string) error
}
