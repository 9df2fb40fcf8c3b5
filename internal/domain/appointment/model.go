package appointment

import "github.com/diacare/diacare/internal/platform/schema"

// Status is the appointment lifecycle state.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "No Show"
	StatusPending   Status = "Pending"
)

// Appointment links a patient and a doctor at a date. PatientName and
// DoctorName are joined onto reads when available.
type Appointment struct {
	ID        schema.ID `json:"id,omitempty"`
	PatientID schema.ID `json:"patientId,omitempty" validate:"required"`
	DoctorID  schema.ID `json:"doctorId,omitempty" validate:"required"`
	Date      string    `json:"date,omitempty" validate:"required"`
	Status    Status    `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Completed Cancelled 'No Show' Pending"`
	Type      string    `json:"type,omitempty"`
	Notes     string    `json:"notes,omitempty"`

	PatientName string `json:"patientName,omitempty"`
	DoctorName  string `json:"doctorName,omitempty"`
}
