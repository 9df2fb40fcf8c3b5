package assessment

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

// Record validates and stores one assessment for the patient.
func (s *Service) Record(ctx context.Context, patientID string, a *Assessment) (*Assessment, error) {
	if patientID == "" {
		return nil, schema.NewValidationError("patientId", "is required")
	}
	if err := schema.Validate(a); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, patientID, a)
}

// History lists the patient's most recent assessments, newest first.
func (s *Service) History(ctx context.Context, patientID string) ([]Assessment, error) {
	if patientID == "" {
		return nil, schema.NewValidationError("patientId", "is required")
	}
	return s.repo.History(ctx, patientID)
}
