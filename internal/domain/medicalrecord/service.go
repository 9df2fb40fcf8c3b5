package medicalrecord

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

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.FindByID(ctx, id)
}

// History returns the patient's records, newest first.
func (s *Service) History(ctx context.Context, patientID string) ([]Record, error) {
	return s.repo.FindByPatientID(ctx, patientID)
}

func (s *Service) Create(ctx context.Context, rec *Record) (*Record, error) {
	if err := schema.Validate(rec); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, rec)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
