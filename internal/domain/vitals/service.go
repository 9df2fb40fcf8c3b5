package vitals

import (
	"context"

	"github.com/diacare/diacare/internal/platform/schema"
)

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// ByPatient returns the patient's readings, newest first. A patient with no
// readings yields an empty set, not an error.
func (s *Service) ByPatient(ctx context.Context, patientID string) (*PatientVitals, error) {
	if patientID == "" {
		return nil, schema.NewValidationError("patientId", "is required")
	}
	return s.repo.ByPatient(ctx, patientID)
}

// Add validates and stores one reading for the patient.
func (s *Service) Add(ctx context.Context, patientID string, r *Reading) (*Reading, error) {
	if patientID == "" {
		return nil, schema.NewValidationError("patientId", "is required")
	}
	if err := schema.Validate(r); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, patientID, r)
}

// Delete removes one reading; false when it does not exist.
func (s *Service) Delete(ctx context.Context, patientID, readingID string) (bool, error) {
	if patientID == "" {
		return false, schema.NewValidationError("patientId", "is required")
	}
	return s.repo.Delete(ctx, patientID, readingID)
}
