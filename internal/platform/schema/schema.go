// Package schema validates domain payloads before they touch a store and
// defines the coercion types shared by all models: identifiers that accept
// string or number, timestamps that accept string, number or date object.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports malformed input. It is raised before any store is
// touched and is always distinct from store errors, so handlers can map it
// to 400 rather than 500.
type ValidationError struct {
	Fields []string
	msg    string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		Fields: []string{field},
		msg:    fmt.Sprintf("%s %s", field, reason),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a model's `validate` tags and converts any failure into a
// *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{msg: err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return &ValidationError{Fields: fields, msg: strings.Join(msgs, "; ")}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ID is a string-comparable identifier that unmarshals from either a JSON
// string or a JSON number, so numeric local IDs and string document IDs are
// interchangeable throughout the system.
type ID string

func (id *ID) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", raw)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Int parses the numeric form of the identifier; ok is false for
// non-numeric IDs.
func (id ID) Int() (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Equal compares two identifier values by their string form.
func (id ID) Equal(other any) bool {
	switch o := other.(type) {
	case ID:
		return string(id) == string(o)
	case string:
		return string(id) == o
	case float64:
		return string(id) == strconv.FormatInt(int64(o), 10)
	case int:
		return string(id) == strconv.Itoa(o)
	default:
		return string(id) == fmt.Sprint(other)
	}
}

// Time is a timestamp that unmarshals from an RFC 3339 string, a date-only
// string, or a unix epoch number (seconds or milliseconds).
type Time struct {
	time.Time
}

func Now() Time { return Time{Time: time.Now().UTC()} }

func (t *Time) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			*t = Time{}
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				*t = Time{Time: parsed}
				return nil
			}
		}
		return fmt.Errorf("unrecognized timestamp %q", s)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("timestamp must be a string or number, got %s", raw)
	}
	// Heuristic epoch unit: values past the year 2128 in seconds are taken
	// as milliseconds.
	const msCutoff = 5e9
	if n > msCutoff {
		*t = Time{Time: time.UnixMilli(int64(n)).UTC()}
	} else {
		*t = Time{Time: time.Unix(int64(n), 0).UTC()}
	}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Month returns the YYYY-MM calendar bucket of the timestamp.
func (t Time) Month() string {
	return t.UTC().Format("2006-01")
}

// ParseTime parses the same timestamp string forms Time accepts on the wire.
func ParseTime(s string) (Time, error) {
	var t Time
	if err := t.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return Time{}, err
	}
	return t, nil
}
