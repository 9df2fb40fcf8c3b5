package schema

import (
	"encoding/json"
	"testing"
)

type samplePayload struct {
	UserID string `json:"userId" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=system vital_reminder"`
	Title  string `json:"title" validate:"required"`
}

func TestValidateRequiredAndEnum(t *testing.T) {
	err := Validate(samplePayload{UserID: "u1", Type: "system", Title: "t"})
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err = Validate(samplePayload{Type: "bogus"})
	if err == nil {
		t.Fatal("invalid payload accepted")
	}
	if !IsValidation(err) {
		t.Fatalf("want *ValidationError, got %T", err)
	}
}

func TestIDUnmarshalsStringAndNumber(t *testing.T) {
	var doc struct {
		PatientID ID `json:"patientId"`
	}
	if err := json.Unmarshal([]byte(`{"patientId": 42}`), &doc); err != nil {
		t.Fatalf("numeric id: %v", err)
	}
	if doc.PatientID != "42" {
		t.Errorf("numeric id = %q, want 42", doc.PatientID)
	}
	if err := json.Unmarshal([]byte(`{"patientId": "abc"}`), &doc); err != nil {
		t.Fatalf("string id: %v", err)
	}
	if doc.PatientID != "abc" {
		t.Errorf("string id = %q", doc.PatientID)
	}
	if !doc.PatientID.Equal("abc") {
		t.Error("Equal should match the string form")
	}
}

func TestTimeUnmarshalsFlexibleForms(t *testing.T) {
	cases := []struct {
		raw   string
		month string
	}{
		{`"2025-03-09T10:00:00Z"`, "2025-03"},
		{`"2025-03-09"`, "2025-03"},
		{`1741514400`, "2025-03"},
		{`1741514400000`, "2025-03"},
	}
	for _, tc := range cases {
		var ts Time
		if err := json.Unmarshal([]byte(tc.raw), &ts); err != nil {
			t.Errorf("unmarshal %s: %v", tc.raw, err)
			continue
		}
		if ts.Month() != tc.month {
			t.Errorf("%s → month %s, want %s", tc.raw, ts.Month(), tc.month)
		}
	}

	var ts Time
	if err := json.Unmarshal([]byte(`"not a date"`), &ts); err == nil {
		t.Error("garbage timestamp accepted")
	}
}
