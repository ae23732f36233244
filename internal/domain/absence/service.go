package absence

import "context"

type AbsenceService interface {
	Register(ctx context.Context, companyID string, req RegisterRequest) (Absence, error)
	List(ctx context.Context, filter AbsenceFilter) ([]Absence, error)
	Delete(ctx context.Context, companyID, id string) error
}
