package doctor

import (
	"context"

	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical doctor collection.
const CollectionName = "doctors"

// StoreRepo implements Repo over the dual-backend store with plain CRUD.
type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) FindAll(ctx context.Context) ([]Doctor, error) {
	recs, _, err := r.col.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Doctor](recs)
}

func (r *StoreRepo) FindByID(ctx context.Context, id string) (*Doctor, error) {
	rec, _, err := r.col.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return decode(rec)
}

func (r *StoreRepo) Create(ctx context.Context, d *Doctor) (*Doctor, error) {
	rec, err := store.Encode(d)
	if err != nil {
		return nil, err
	}
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return decode(created)
}

func (r *StoreRepo) Update(ctx context.Context, id string, d *Doctor) (*Doctor, error) {
	rec, err := store.Encode(d)
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

func decode(rec store.Record) (*Doctor, error) {
	var out Doctor
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
