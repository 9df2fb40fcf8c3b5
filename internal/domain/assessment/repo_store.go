package assessment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/schema"
	"github.com/diacare/diacare/internal/platform/store"
)

// SubcollectionName is the per-patient assessment subcollection on the
// remote store.
const SubcollectionName = "footRiskAssessments"

// LocalCollectionName is the flat local fallback collection; records carry a
// patientId field instead of living under a parent document.
const LocalCollectionName = "foot_risk_assessments"

// StoreRepo implements Repo over both representations.
type StoreRepo struct {
	patients store.Remote // nil when the remote store is not configured
	local    *store.LocalCollection
	log      zerolog.Logger
}

func NewStoreRepo(patients store.Remote, local *store.LocalCollection, log zerolog.Logger) *StoreRepo {
	return &StoreRepo{
		patients: patients,
		local:    local,
		log:      log.With().Str("collection", LocalCollectionName).Logger(),
	}
}

func (r *StoreRepo) Save(ctx context.Context, patientID string, a *Assessment) (*Assessment, error) {
	if a.AssessedAt.IsZero() {
		a.AssessedAt = schema.Now()
	}
	rec, err := store.Encode(a)
	if err != nil {
		return nil, err
	}
	delete(rec, "id")

	if r.patients != nil {
		sub := r.patients.Sub(patientID, SubcollectionName)
		subRec := rec.Clone()
		delete(subRec, "patientId")
		created, err := sub.Create(ctx, subRec)
		if err == nil {
			return decode(created)
		}
		r.log.Warn().Err(err).Str("op", "save").Msg("remote store failed, falling back to local")
	}

	rec["patientId"] = patientID
	created, err := r.local.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return decode(created)
}

func (r *StoreRepo) History(ctx context.Context, patientID string) ([]Assessment, error) {
	q := store.Query{}.Order("assessedAt", true).Take(HistoryLimit)
	if r.patients != nil {
		sub := r.patients.Sub(patientID, SubcollectionName)
		recs, err := sub.Find(ctx, q)
		if err == nil {
			return store.DecodeAll[Assessment](recs)
		}
		r.log.Warn().Err(err).Str("op", "history").Msg("remote store failed, falling back to local")
	}
	records, err := r.local.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Assessment](store.ApplyQuery(records, q.Where("patientId", patientID)))
}

func decode(rec store.Record) (*Assessment, error) {
	var out Assessment
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
