package medicalrecord

import "github.com/diacare/diacare/internal/platform/schema"

// Record is one entry in a patient's medical history, newest first.
type Record struct {
	ID          schema.ID `json:"id,omitempty"`
	PatientID   schema.ID `json:"patientId,omitempty" validate:"required"`
	Date        string    `json:"date,omitempty" validate:"required"`
	Type        string    `json:"type,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	DoctorName  string    `json:"doctorName,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
}
