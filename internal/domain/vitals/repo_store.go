package vitals

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/schema"
	"github.com/diacare/diacare/internal/platform/store"
)

// SubcollectionName is the per-patient readings subcollection on the remote
// store.
const SubcollectionName = "vitals"

// LocalCollectionName is the local container file: one record per patient
// with an embedded readings list.
const LocalCollectionName = "vitals"

// StoreRepo implements Repo over both representations. The remote store
// keeps readings in patients/{id}/vitals; the local store keeps one
// container record per patient. Both must yield the same logical reading
// set, newest first.
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

func (r *StoreRepo) ByPatient(ctx context.Context, patientID string) (*PatientVitals, error) {
	if r.patients != nil {
		sub := r.patients.Sub(patientID, SubcollectionName)
		recs, err := sub.Find(ctx, store.Query{}.Order("date", true))
		if err == nil {
			readings, err := store.DecodeAll[Reading](recs)
			if err != nil {
				return nil, err
			}
			return &PatientVitals{PatientID: schema.ID(patientID), Readings: readings}, nil
		}
		r.log.Warn().Err(err).Str("op", "byPatient").Msg("remote store failed, falling back to local")
	}
	return r.localByPatient(ctx, patientID)
}

func (r *StoreRepo) Add(ctx context.Context, patientID string, reading *Reading) (*Reading, error) {
	rec, err := store.Encode(reading)
	if err != nil {
		return nil, err
	}
	delete(rec, "id")
	delete(rec, "patientId")

	if r.patients != nil {
		sub := r.patients.Sub(patientID, SubcollectionName)
		created, err := sub.Create(ctx, rec)
		if err == nil {
			var out Reading
			if err := store.Decode(created, &out); err != nil {
				return nil, err
			}
			return &out, nil
		}
		r.log.Warn().Err(err).Str("op", "add").Msg("remote store failed, falling back to local")
	}
	return r.localAdd(ctx, patientID, rec)
}

func (r *StoreRepo) Delete(ctx context.Context, patientID, readingID string) (bool, error) {
	if r.patients != nil {
		sub := r.patients.Sub(patientID, SubcollectionName)
		ok, err := sub.Delete(ctx, readingID)
		if err == nil {
			return ok, nil
		}
		r.log.Warn().Err(err).Str("op", "delete").Msg("remote store failed, falling back to local")
	}
	return r.localDelete(ctx, patientID, readingID)
}

func (r *StoreRepo) localByPatient(ctx context.Context, patientID string) (*PatientVitals, error) {
	container, err := r.findContainer(ctx, patientID)
	if err != nil {
		return nil, err
	}
	out := &PatientVitals{PatientID: schema.ID(patientID), Readings: []Reading{}}
	if container == nil {
		return out, nil
	}
	if err := store.Decode(container, out); err != nil {
		return nil, err
	}
	if out.Readings == nil {
		out.Readings = []Reading{}
	}
	return out, nil
}

func (r *StoreRepo) localAdd(ctx context.Context, patientID string, rec store.Record) (*Reading, error) {
	container, err := r.findContainer(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var pv PatientVitals
	if container != nil {
		if err := store.Decode(container, &pv); err != nil {
			return nil, err
		}
	}

	rec["id"] = nextReadingID(pv.Readings)
	var reading Reading
	if err := store.Decode(rec, &reading); err != nil {
		return nil, err
	}
	pv.PatientID = schema.ID(patientID)
	pv.Readings = append(pv.Readings, reading)
	sortReadings(pv.Readings)

	body, err := store.Encode(&pv)
	if err != nil {
		return nil, err
	}
	if container == nil {
		_, err = r.local.Create(ctx, body)
	} else {
		_, err = r.local.Update(ctx, container.ID(), body)
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *StoreRepo) localDelete(ctx context.Context, patientID, readingID string) (bool, error) {
	container, err := r.findContainer(ctx, patientID)
	if err != nil || container == nil {
		return false, err
	}
	var pv PatientVitals
	if err := store.Decode(container, &pv); err != nil {
		return false, err
	}
	kept := pv.Readings[:0]
	for _, reading := range pv.Readings {
		if !reading.ID.Equal(readingID) {
			kept = append(kept, reading)
		}
	}
	if len(kept) == len(pv.Readings) {
		return false, nil
	}
	pv.Readings = kept

	body, err := store.Encode(&pv)
	if err != nil {
		return false, err
	}
	if _, err := r.local.Update(ctx, container.ID(), body); err != nil {
		return false, err
	}
	return true, nil
}

func (r *StoreRepo) findContainer(ctx context.Context, patientID string) (store.Record, error) {
	records, err := r.local.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if store.SameID(rec["patientId"], patientID) {
			return rec, nil
		}
	}
	return nil, nil
}

func nextReadingID(readings []Reading) int {
	max := 0
	for _, reading := range readings {
		if n, ok := reading.ID.Int(); ok && n > max {
			max = n
		}
	}
	return max + 1
}

func sortReadings(readings []Reading) {
	// ISO-8601 dates order correctly as strings.
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Date > readings[j].Date
	})
}
