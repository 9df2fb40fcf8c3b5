package appointment

import (
	"context"

	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical appointment collection.
const CollectionName = "appointments"

// StoreRepo implements Repo over the dual-backend store. Patient and doctor
// lookups go through the flexible foreign-key query, since stored reference
// types vary between numeric and string.
type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) FindAll(ctx context.Context) ([]Appointment, error) {
	recs, _, err := r.col.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Appointment](recs)
}

func (r *StoreRepo) FindByID(ctx context.Context, id string) (*Appointment, error) {
	rec, _, err := r.col.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return decode(rec)
}

func (r *StoreRepo) FindByPatientID(ctx context.Context, patientID string) ([]Appointment, error) {
	recs, _, err := r.col.FindByRef(ctx, "patientId", patientID, store.Query{})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Appointment](recs)
}

func (r *StoreRepo) FindByDoctorID(ctx context.Context, doctorID string) ([]Appointment, error) {
	recs, _, err := r.col.FindByRef(ctx, "doctorId", doctorID, store.Query{})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Appointment](recs)
}

func (r *StoreRepo) Create(ctx context.Context, a *Appointment) (*Appointment, error) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	rec, err := store.Encode(a)
	if err != nil {
		return nil, err
	}
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return decode(created)
}

func (r *StoreRepo) Update(ctx context.Context, id string, a *Appointment) (*Appointment, error) {
	rec, err := store.Encode(a)
	if err != nil {
		return nil, err
	}
	updated, _, err := r.col.Update(ctx, id, rec)
	if err != nil || updated == nil {
		return nil, err
	}
	return decode(updated)
}

func (r *StoreRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	updated, _, err := r.col.Update(ctx, id, store.Record{"status": string(status)})
	if err != nil || updated == nil {
		return nil, err
	}
	return decode(updated)
}

func (r *StoreRepo) Delete(ctx context.Context, id string) (bool, error) {
	ok, _, err := r.col.Delete(ctx, id)
	return ok, err
}

func decode(rec store.Record) (*Appointment, error) {
	var out Appointment
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
