package doctor

import "context"

// Repo is the doctor persistence contract. FindByID returns (nil, nil) for
// a missing ID.
type Repo interface {
	FindAll(ctx context.Context) ([]Doctor, error)
	FindByID(ctx context.Context, id string) (*Doctor, error)
	Create(ctx context.Context, d *Doctor) (*Doctor, error)
	Update(ctx context.Context, id string, d *Doctor) (*Doctor, error)
	Delete(ctx context.Context, id string) (bool, error)
}
