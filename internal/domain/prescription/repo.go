package prescription

import "context"

// Repo is the prescription persistence contract.
type Repo interface {
	FindAll(ctx context.Context) ([]Prescription, error)
	FindByID(ctx context.Context, id string) (*Prescription, error)
	FindByPatientID(ctx context.Context, patientID string) ([]Prescription, error)
	Create(ctx context.Context, p *Prescription) (*Prescription, error)
	Update(ctx context.Context, id string, p *Prescription) (*Prescription, error)
	Delete(ctx context.Context, id string) (bool, error)
}
