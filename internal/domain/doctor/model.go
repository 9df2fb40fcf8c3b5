package doctor

import "github.com/diacare/diacare/internal/platform/schema"

// Doctor is a treating physician record.
type Doctor struct {
	ID        schema.ID `json:"id,omitempty"`
	Name      string    `json:"name,omitempty" validate:"required"`
	Specialty string    `json:"specialty,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	UID       string    `json:"uid,omitempty"`
}
