package assessment

import "context"

// Repo is the per-patient assessment history contract.
type Repo interface {
	Save(ctx context.Context, patientID string, a *Assessment) (*Assessment, error)
	// History returns the patient's most recent assessments, newest first,
	// capped at HistoryLimit.
	History(ctx context.Context, patientID string) ([]Assessment, error)
}
