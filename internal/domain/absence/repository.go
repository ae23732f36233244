package absence

import "context"

type AbsenceRepository interface {
	GetByID(ctx context.Context, id string) (Absence, error)
	List(ctx context.Context, filter AbsenceFilter) ([]Absence, error)
	Create(ctx context.Context, a Absence) (Absence, error)
	Delete(ctx context.Context, id string) error
}
