package patient

import (
	"context"

	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical patient collection.
const CollectionName = "patients"

// StoreRepo implements Repo over the dual-backend store.
type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) FindAll(ctx context.Context) ([]Patient, error) {
	recs, _, err := r.col.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Patient](recs)
}

func (r *StoreRepo) FindByID(ctx context.Context, id string) (*Patient, error) {
	rec, _, err := r.col.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return decode(rec)
}

func (r *StoreRepo) FindByEmail(ctx context.Context, email string) (*Patient, error) {
	return r.findBy(ctx, func(p *Patient) bool { return p.Email == email })
}

func (r *StoreRepo) FindByPhone(ctx context.Context, phone string) (*Patient, error) {
	return r.findBy(ctx, func(p *Patient) bool { return p.Phone == phone })
}

func (r *StoreRepo) Create(ctx context.Context, p *Patient) (*Patient, error) {
	rec, err := store.Encode(p)
	if err != nil {
		return nil, err
	}
	stripJoined(rec)
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return decode(created)
}

func (r *StoreRepo) Update(ctx context.Context, id string, p *Patient) (*Patient, error) {
	rec, err := store.Encode(p)
	if err != nil {
		return nil, err
	}
	stripJoined(rec)
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

func (r *StoreRepo) findBy(ctx context.Context, match func(*Patient) bool) (*Patient, error) {
	patients, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if match(&patients[i]) {
			return &patients[i], nil
		}
	}
	return nil, nil
}

// stripJoined drops doctor fields attached on reads so they are never
// persisted.
func stripJoined(rec store.Record) {
	delete(rec, "doctorName")
	delete(rec, "doctorPhoto")
	delete(rec, "doctorSpecialty")
}

func decode(rec store.Record) (*Patient, error) {
	var out Patient
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
