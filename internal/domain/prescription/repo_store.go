package prescription

import (
	"context"

	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical prescription collection.
const CollectionName = "prescriptions"

type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) FindAll(ctx context.Context) ([]Prescription, error) {
	recs, _, err := r.col.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Prescription](recs)
}

func (r *StoreRepo) FindByID(ctx context.Context, id string) (*Prescription, error) {
	rec, _, err := r.col.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return decode(rec)
}

func (r *StoreRepo) FindByPatientID(ctx context.Context, patientID string) ([]Prescription, error) {
	recs, _, err := r.col.FindByRef(ctx, "patientId", patientID, store.Query{})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Prescription](recs)
}

func (r *StoreRepo) Create(ctx context.Context, p *Prescription) (*Prescription, error) {
	if p.Status == "" {
		p.Status = StatusActive
	}
	rec, err := store.Encode(p)
	if err != nil {
		return nil, err
	}
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return decode(created)
}

func (r *StoreRepo) Update(ctx context.Context, id string, p *Prescription) (*Prescription, error) {
	rec, err := store.Encode(p)
	if err != nil {
		return nil, err
	}
	updated, _, err := r.col.Update(ctx, id, rec)
	if err != nil || updated == nil {
		return nil, err
	}
	return decode(updated)
}

func (r *StoreRepo) Delete(ctx context.Context, id string) (bool, error) {
	ok, _, err := r.col.Delete(ctx, id)
	return ok, err
}

func decode(rec store.Record) (*Prescription, error) {
	var out Prescription
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
