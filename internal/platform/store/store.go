// Package store implements the dual-backend persistence layer: a remote
// document store (Firestore) as primary and a flat-file JSON store as
// fallback, composed behind one CRUD contract.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one persisted document: an opaque field→value mapping that
// carries an "id" once stored.
type Record map[string]any

// ID returns the record's identifier normalized to a string, or "" when the
// record has none.
func (r Record) ID() string {
	return NormalizeID(r["id"])
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NormalizeID converts an identifier of any underlying type (string, int,
// float from JSON decoding) to its canonical string form. Identifiers are
// compared as strings everywhere so numeric and string IDs are
// interchangeable.
func NormalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SameID reports whether two identifier values denote the same record.
func SameID(a, b any) bool {
	return NormalizeID(a) != "" && NormalizeID(a) == NormalizeID(b)
}

// Filter is one equality constraint in a query.
type Filter struct {
	Field string
	Value any
}

// Query describes the shapes the domain repositories need: equality filters,
// one order-by and a limit. It deliberately is not a general query language.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Where appends an equality filter.
func (q Query) Where(field string, value any) Query {
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	return q
}

// Order sets the sort field and direction.
func (q Query) Order(field string, desc bool) Query {
	q.OrderBy = field
	q.Desc = desc
	return q
}

// Take caps the result size. Zero means no limit.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// Collection is the CRUD contract both adapters satisfy.
//
// FindByID returns (nil, nil) when the ID does not exist: absence is a
// normal outcome, not an error. Update returns (nil, nil) and Delete
// (false, nil) for the same reason.
type Collection interface {
	FindAll(ctx context.Context) ([]Record, error)
	FindByID(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, data Record) (Record, error)
	Update(ctx context.Context, id string, data Record) (Record, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Remote extends Collection with the query primitives the remote document
// store offers natively. The local adapter has no Remote counterpart; local
// query emulation is an in-memory scan done by the caller.
type Remote interface {
	Collection
	Find(ctx context.Context, q Query) ([]Record, error)
	Count(ctx context.Context, q Query) (int64, error)
	// UpdateWhere applies the same field changes to every record matching
	// q, committed as one atomic batch. Returns the number of records
	// written.
	UpdateWhere(ctx context.Context, q Query, fields Record) (int, error)
	// DeleteMany removes the given IDs in one batched write.
	DeleteMany(ctx context.Context, ids []string) error
	// Set writes a record under a caller-assigned ID (upsert).
	Set(ctx context.Context, id string, data Record) error
	// Sub addresses a subcollection under a parent document.
	Sub(parentID, name string) Remote
}

// Decode unmarshals a record into a typed model via its JSON representation.
func Decode(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Encode converts a typed model to a record via its JSON representation.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return rec, nil
}

// DecodeAll maps a record slice onto a typed slice.
func DecodeAll[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := Decode(rec, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
