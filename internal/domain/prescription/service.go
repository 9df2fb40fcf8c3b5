package prescription

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

func (s *Service) List(ctx context.Context) ([]Prescription, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Prescription, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ByPatient(ctx context.Context, patientID string) ([]Prescription, error) {
	return s.repo.FindByPatientID(ctx, patientID)
}

func (s *Service) Create(ctx context.Context, p *Prescription) (*Prescription, error) {
	if err := schema.Validate(p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// Update applies a partial update; nil when the ID does not exist.
func (s *Service) Update(ctx context.Context, id string, p *Prescription) (*Prescription, error) {
	if p.Status != "" {
		switch p.Status {
		case StatusActive, StatusCompleted, StatusDiscontinued:
		default:
			return nil, schema.NewValidationError("status", "must be one of: Active, Completed, Discontinued")
		}
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
