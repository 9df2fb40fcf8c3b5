package patient

import "github.com/diacare/diacare/internal/platform/schema"

// DiabetesType is the closed set of diagnosis categories.
type DiabetesType string

const (
	Type1       DiabetesType = "Type 1"
	Type2       DiabetesType = "Type 2"
	Gestational DiabetesType = "Gestational"
	PreDiabetes DiabetesType = "Pre-diabetes"
	TypeOther   DiabetesType = "Other"
)

// Patient is one patient record. Doctor fields suffixed with Name/Photo/
// Specialty are joined onto reads, never stored.
type Patient struct {
	ID        schema.ID    `json:"id,omitempty"`
	Name      string       `json:"name,omitempty" validate:"required"`
	Email     string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string       `json:"phone,omitempty"`
	Age       int          `json:"age,omitempty" validate:"omitempty,gte=0"`
	Type      DiabetesType `json:"type,omitempty" validate:"omitempty,oneof='Type 1' 'Type 2' Gestational Pre-diabetes Other"`
	Status    string       `json:"status,omitempty"`
	LastVisit string       `json:"lastVisit,omitempty"`
	DoctorID  schema.ID    `json:"doctorId,omitempty"`
	UID       string       `json:"uid,omitempty"`

	Caregivers []Caregiver `json:"caregivers,omitempty"`

	DoctorName      string `json:"doctorName,omitempty"`
	DoctorPhoto     string `json:"doctorPhoto,omitempty"`
	DoctorSpecialty string `json:"doctorSpecialty,omitempty"`
}

// Caregiver is a relative or helper granted access to the patient's data.
type Caregiver struct {
	Email        string `json:"email" validate:"required,email"`
	Relationship string `json:"relationship,omitempty"`
	Status       string `json:"status,omitempty"`
	AddedAt      string `json:"addedAt,omitempty"`
	AddedBy      string `json:"addedBy,omitempty"`
}
