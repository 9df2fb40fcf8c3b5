package vitals

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/store"
)

func newLocalRepo(t *testing.T) *StoreRepo {
	t.Helper()
	local := store.NewLocal(t.TempDir()).Collection(LocalCollectionName)
	return NewStoreRepo(nil, local, zerolog.Nop())
}

func TestAddKeepsReadingsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	for _, date := range []string{"2025-01-02", "2025-01-05", "2025-01-01"} {
		_, err := repo.Add(ctx, "7", &Reading{Date: date, Type: "Blood Sugar", Value: "110"})
		if err != nil {
			t.Fatalf("add %s: %v", date, err)
		}
	}

	pv, err := repo.ByPatient(ctx, "7")
	if err != nil {
		t.Fatalf("byPatient: %v", err)
	}
	if len(pv.Readings) != 3 {
		t.Fatalf("len = %d, want 3", len(pv.Readings))
	}
	want := []string{"2025-01-05", "2025-01-02", "2025-01-01"}
	for i, reading := range pv.Readings {
		if reading.Date != want[i] {
			t.Errorf("readings[%d].Date = %s, want %s", i, reading.Date, want[i])
		}
	}
}

func TestPatientsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	repo.Add(ctx, "1", &Reading{Date: "2025-01-01", Type: "Blood Sugar", Value: "100"})
	repo.Add(ctx, "2", &Reading{Date: "2025-01-02", Type: "Blood Sugar", Value: "200"})

	pv1, err := repo.ByPatient(ctx, "1")
	if err != nil {
		t.Fatalf("byPatient: %v", err)
	}
	if len(pv1.Readings) != 1 || pv1.Readings[0].Value != "100" {
		t.Errorf("patient 1 readings = %+v", pv1.Readings)
	}
}

func TestByPatientWithNoReadings(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	pv, err := repo.ByPatient(ctx, "99")
	if err != nil {
		t.Fatalf("byPatient: %v", err)
	}
	if pv == nil || len(pv.Readings) != 0 {
		t.Errorf("want empty reading set, got %+v", pv)
	}
}

func TestDeleteReading(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	first, _ := repo.Add(ctx, "7", &Reading{Date: "2025-01-01", Type: "Blood Sugar", Value: "100"})
	repo.Add(ctx, "7", &Reading{Date: "2025-01-02", Type: "Blood Sugar", Value: "120"})

	ok, err := repo.Delete(ctx, "7", first.ID.String())
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}

	pv, _ := repo.ByPatient(ctx, "7")
	if len(pv.Readings) != 1 {
		t.Errorf("len after delete = %d, want 1", len(pv.Readings))
	}

	ok, err = repo.Delete(ctx, "7", "404")
	if err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if ok {
		t.Error("deleting a missing reading must report false")
	}
}

func TestValueAcceptsStringAndNumber(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	if _, err := repo.Add(ctx, "7", &Reading{Date: "2025-01-01", Type: "Blood Pressure", Value: "120/80"}); err != nil {
		t.Fatalf("composite value: %v", err)
	}

	pv, _ := repo.ByPatient(ctx, "7")
	if _, ok := pv.Readings[0].Value.Float(); ok {
		t.Error("composite value must not parse as a number")
	}
	if f, ok := Value("126.5").Float(); !ok || f != 126.5 {
		t.Errorf("numeric value parse = %v, %v", f, ok)
	}
}
