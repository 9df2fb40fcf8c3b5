package notification

import (
	"github.com/diacare/diacare/internal/platform/schema"
)

// Type classifies an in-app notification. The set is closed; validation
// rejects anything else.
type Type string

const (
	TypeAppointmentConfirmed Type = "appointment_confirmed"
	TypeAppointmentRejected  Type = "appointment_rejected"
	TypeAppointmentNew       Type = "appointment_new"
	TypeAppointmentReminder  Type = "appointment_reminder"
	TypeVitalReminder        Type = "vital_reminder"
	TypeNewPatientData       Type = "new_patient_data"
	TypeSystem               Type = "system"
)

// Notification is one in-app notification record. Created unread; the only
// mutation the domain allows is the read flag's false→true transition.
type Notification struct {
	ID        schema.ID      `json:"id,omitempty"`
	UserID    schema.ID      `json:"userId" validate:"required"`
	Type      Type           `json:"type" validate:"required,oneof=appointment_confirmed appointment_rejected appointment_new appointment_reminder vital_reminder new_patient_data system"`
	Title     string         `json:"title" validate:"required"`
	Body      string         `json:"body" validate:"required"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt schema.Time    `json:"createdAt"`
}

// DeviceToken is one registered push target. The token is the unique key:
// re-registration moves ownership to the most recent user (last wins).
type DeviceToken struct {
	Token     string      `json:"token" validate:"required"`
	UserID    schema.ID   `json:"userId" validate:"required"`
	UpdatedAt schema.Time `json:"updatedAt"`
}

// MarkAllResult reports how many records a mark-all-as-read call changed.
type MarkAllResult struct {
	Updated int `json:"updated"`
}

// ListOptions narrows a per-user notification listing.
type ListOptions struct {
	Limit      int
	UnreadOnly bool
}

// DefaultListLimit caps listings when the caller does not pass a limit.
const DefaultListLimit = 30
