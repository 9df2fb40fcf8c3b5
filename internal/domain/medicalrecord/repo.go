package medicalrecord

import "context"

// Repo is the medical-record persistence contract. Patient listings come
// back newest first.
type Repo interface {
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByPatientID(ctx context.Context, patientID string) ([]Record, error)
	Create(ctx context.Context, rec *Record) (*Record, error)
	Delete(ctx context.Context, id string) (bool, error)
}
