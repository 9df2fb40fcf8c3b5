package patient

import "context"

// Repo is the patient persistence contract. Lookups of a missing patient
// return (nil, nil).
type Repo interface {
	FindAll(ctx context.Context) ([]Patient, error)
	FindByID(ctx context.Context, id string) (*Patient, error)
	// FindByEmail and FindByPhone scan the collection; the fields are not
	// indexed on either backend.
	FindByEmail(ctx context.Context, email string) (*Patient, error)
	FindByPhone(ctx context.Context, phone string) (*Patient, error)
	Create(ctx context.Context, p *Patient) (*Patient, error)
	Update(ctx context.Context, id string, p *Patient) (*Patient, error)
	Delete(ctx context.Context, id string) (bool, error)
}
