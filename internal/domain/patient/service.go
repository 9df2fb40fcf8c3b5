package patient

import (
	"context"

	"github.com/diacare/diacare/internal/domain/doctor"
	"github.com/diacare/diacare/internal/platform/schema"
)

type Service struct {
	repo    Repo
	doctors doctor.Repo // optional, used for the joined doctor summary
}

func NewService(repo Repo, doctors doctor.Repo) *Service {
	return &Service{repo: repo, doctors: doctors}
}

// List returns all patients with the doctor summary attached.
func (s *Service) List(ctx context.Context) ([]Patient, error) {
	patients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		s.attachDoctor(ctx, &patients[i])
	}
	return patients, nil
}

// Get returns one patient with the doctor summary attached; nil when the ID
// does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	s.attachDoctor(ctx, p)
	return p, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil || p == nil {
		return nil, err
	}
	s.attachDoctor(ctx, p)
	return p, nil
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	p, err := s.repo.FindByPhone(ctx, phone)
	if err != nil || p == nil {
		return nil, err
	}
	s.attachDoctor(ctx, p)
	return p, nil
}

func (s *Service) Create(ctx context.Context, p *Patient) (*Patient, error) {
	if err := schema.Validate(p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// Update applies a partial update; nil when the ID does not exist.
func (s *Service) Update(ctx context.Context, id string, p *Patient) (*Patient, error) {
	if p.Email != "" || p.Type != "" {
		partial := Patient{Name: "-", Email: p.Email, Type: p.Type}
		if err := schema.Validate(&partial); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Aliases resolves the additional identities a patient messages under: the
// account UID linked to the patient record. Satisfies the messaging
// contact-resolution contract.
func (s *Service) Aliases(ctx context.Context, contactID string) []string {
	p, err := s.repo.FindByID(ctx, contactID)
	if err != nil || p == nil || p.UID == "" {
		return nil
	}
	return []string{p.UID}
}

// attachDoctor joins the treating doctor's display fields onto the patient.
// A failed lookup leaves the patient unchanged.
func (s *Service) attachDoctor(ctx context.Context, p *Patient) {
	if s.doctors == nil || p.DoctorID == "" {
		return
	}
	doc, err := s.doctors.FindByID(ctx, p.DoctorID.String())
	if err != nil || doc == nil {
		return
	}
	p.DoctorName = doc.Name
	p.DoctorPhoto = doc.Photo
	p.DoctorSpecialty = doc.Specialty
}
