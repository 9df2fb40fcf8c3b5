package medicalrecord

import (
	"context"

	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical medical-record collection.
const CollectionName = "medical_records"

type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) FindByID(ctx context.Context, id string) (*Record, error) {
	rec, _, err := r.col.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return decode(rec)
}

func (r *StoreRepo) FindByPatientID(ctx context.Context, patientID string) ([]Record, error) {
	q := store.Query{}.Order("date", true)
	recs, _, err := r.col.FindByRef(ctx, "patientId", patientID, q)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Record](recs)
}

func (r *StoreRepo) Create(ctx context.Context, m *Record) (*Record, error) {
	rec, err := store.Encode(m)
	if err != nil {
		return nil, err
	}
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return decode(created)
}

func (r *StoreRepo) Delete(ctx context.Context, id string) (bool, error) {
	ok, _, err := r.col.Delete(ctx, id)
	return ok, err
}

func decode(rec store.Record) (*Record, error) {
	var out Record
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
