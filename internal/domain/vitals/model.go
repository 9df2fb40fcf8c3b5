package vitals

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/diacare/diacare/internal/platform/schema"
)

// Reading is one vital measurement. Value accepts a number or a composite
// string ("120/80" for blood pressure).
type Reading struct {
	ID        schema.ID `json:"id,omitempty"`
	PatientID schema.ID `json:"patientId,omitempty"`
	Date      string    `json:"date" validate:"required"`
	Type      string    `json:"type" validate:"required"`
	Value     Value     `json:"value" validate:"required"`
	Unit      string    `json:"unit,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// PatientVitals is the per-patient container: one logical record holding the
// patient's readings newest first. On the remote store the readings live in
// a subcollection of the patient document; locally they are embedded in a
// single record per patient.
type PatientVitals struct {
	PatientID schema.ID `json:"patientId"`
	Readings  []Reading `json:"readings"`
}

// Value is a measurement value that unmarshals from a JSON number or string.
type Value string

func (v *Value) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("value must be a string or number, got %s", raw)
	}
	*v = Value(n.String())
	return nil
}

// Float parses the numeric form of the value; ok is false for composite
// strings like "120/80".
func (v Value) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
