package prescription

import "github.com/diacare/diacare/internal/platform/schema"

// Status is the prescription lifecycle state.
type Status string

const (
	StatusActive       Status = "Active"
	StatusCompleted    Status = "Completed"
	StatusDiscontinued Status = "Discontinued"
)

type Prescription struct {
	ID         schema.ID `json:"id,omitempty"`
	PatientID  schema.ID `json:"patientId,omitempty" validate:"required"`
	DoctorName string    `json:"doctorName,omitempty"`
	Medication string    `json:"medication,omitempty" validate:"required"`
	Dosage     string    `json:"dosage,omitempty"`
	Frequency  string    `json:"frequency,omitempty"`
	StartDate  string    `json:"startDate,omitempty"`
	EndDate    string    `json:"endDate,omitempty"`
	Status     Status    `json:"status,omitempty" validate:"omitempty,oneof=Active Completed Discontinued"`
	Notes      string    `json:"notes,omitempty"`
}
