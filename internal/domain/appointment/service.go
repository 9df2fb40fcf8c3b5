package appointment

import (
	"context"

	"github.com/diacare/diacare/internal/domain/notification"
	"github.com/diacare/diacare/internal/platform/schema"
)

// Notifier is the delivery pipeline contract the appointment flow needs.
// Dispatch is fire-and-forget: it never errors and its result is only
// informational.
type Notifier interface {
	Dispatch(ctx context.Context, userID string, typ notification.Type, title, body string, data map[string]any) *notification.Notification
}

type Service struct {
	repo     Repo
	notifier Notifier // optional
}

func NewService(repo Repo, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	if patientID == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByPatientID(ctx, patientID)
}

func (s *Service) ByDoctor(ctx context.Context, doctorID string) ([]Appointment, error) {
	if doctorID == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByDoctorID(ctx, doctorID)
}

// Book validates and stores a new appointment, then notifies the doctor.
// Notification failures never affect the booking.
func (s *Service) Book(ctx context.Context, a *Appointment) (*Appointment, error) {
	if err := schema.Validate(a); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Dispatch(ctx, created.DoctorID.String(), notification.TypeAppointmentNew,
			"New appointment request",
			"A patient booked an appointment on "+created.Date,
			map[string]any{"appointmentId": created.ID.String()})
	}
	return created, nil
}

// SetStatus moves the appointment through its lifecycle and notifies the
// patient about confirmations and rejections. Nil when the ID is missing.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if !validStatus(status) {
		return nil, schema.NewValidationError("status", "must be one of: Scheduled, Completed, Cancelled, No Show, Pending")
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil || updated == nil {
		return nil, err
	}
	if s.notifier != nil {
		switch status {
		case StatusScheduled:
			s.notifier.Dispatch(ctx, updated.PatientID.String(), notification.TypeAppointmentConfirmed,
				"Appointment confirmed",
				"Your appointment on "+updated.Date+" is confirmed",
				map[string]any{"appointmentId": updated.ID.String()})
		case StatusCancelled:
			s.notifier.Dispatch(ctx, updated.PatientID.String(), notification.TypeAppointmentRejected,
				"Appointment cancelled",
				"Your appointment on "+updated.Date+" was cancelled",
				map[string]any{"appointmentId": updated.ID.String()})
		}
	}
	return updated, nil
}

// Update applies a partial update; nil when the ID does not exist.
func (s *Service) Update(ctx context.Context, id string, a *Appointment) (*Appointment, error) {
	if a.Status != "" && !validStatus(a.Status) {
		return nil, schema.NewValidationError("status", "must be one of: Scheduled, Completed, Cancelled, No Show, Pending")
	}
	return s.repo.Update(ctx, id, a)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func validStatus(status Status) bool {
	switch status {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow, StatusPending:
		return true
	}
	return false
}
