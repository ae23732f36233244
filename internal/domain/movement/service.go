package movement

import "context"

type MovementService interface {
	// RegisterTermination marks the employee inactive and records the movement
	RegisterTermination(ctx context.Context, companyID string, req TerminationRequest) (Movement, error)

	// RegisterHire (re)activates an employee, optionally into another
	// company, sector or job title
	RegisterHire(ctx context.Context, companyID string, req HireRequest) (Movement, error)

	List(ctx context.Context, filter MovementFilter) ([]Movement, error)

	// Revert restores the employee from the movement snapshot and deletes
	// the movement, atomically
	Revert(ctx context.Context, companyID, id string) error
}
