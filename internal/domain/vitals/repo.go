package vitals

import "context"

// Repo is the per-patient vitals contract. Each patient's readings form an
// independent set, returned newest first.
type Repo interface {
	ByPatient(ctx context.Context, patientID string) (*PatientVitals, error)
	Add(ctx context.Context, patientID string, r *Reading) (*Reading, error)
	// Delete removes one reading; false when the reading does not exist.
	Delete(ctx context.Context, patientID, readingID string) (bool, error)
}
