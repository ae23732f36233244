package movement

import "context"

type MovementRepository interface {
	GetByID(ctx context.Context, id string) (Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]Movement, error)
	LatestForEmployee(ctx context.Context, employeeID string) (Movement, error)
	Create(ctx context.Context, m Movement) (Movement, error)
	Delete(ctx context.Context, id string) error
}
