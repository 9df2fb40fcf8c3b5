package appointment

import "context"

// Repo is the appointment persistence contract.
type Repo interface {
	FindAll(ctx context.Context) ([]Appointment, error)
	FindByID(ctx context.Context, id string) (*Appointment, error)
	FindByPatientID(ctx context.Context, patientID string) ([]Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]Appointment, error)
	Create(ctx context.Context, a *Appointment) (*Appointment, error)
	Update(ctx context.Context, id string, a *Appointment) (*Appointment, error)
	// UpdateStatus changes only the lifecycle state; nil when the ID does
	// not exist.
	UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error)
	Delete(ctx context.Context, id string) (bool, error)
}
