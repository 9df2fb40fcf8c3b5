package medicalrecord

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/store"
)

func newLocalService(t *testing.T) *Service {
	t.Helper()
	local := store.NewLocal(t.TempDir()).Collection(CollectionName)
	return NewService(NewStoreRepo(store.NewDual(CollectionName, nil, local, zerolog.Nop())))
}

func TestHistoryNewestFirstPerPatient(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t)

	svc.Create(ctx, &Record{PatientID: "1", Date: "2025-01-10", Title: "Annual checkup"})
	svc.Create(ctx, &Record{PatientID: "1", Date: "2025-04-02", Title: "HbA1c panel"})
	svc.Create(ctx, &Record{PatientID: "2", Date: "2025-05-01", Title: "Eye exam"})

	got, err := svc.History(ctx, "1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("history len = %d, want 2", len(got))
	}
	if got[0].Date != "2025-04-02" || got[1].Date != "2025-01-10" {
		t.Errorf("order = [%s %s], want newest first", got[0].Date, got[1].Date)
	}
}

func TestCreateValidates(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t)

	if _, err := svc.Create(ctx, &Record{Date: "2025-01-10"}); err == nil {
		t.Error("missing patientId must be rejected")
	}
	if _, err := svc.Create(ctx, &Record{PatientID: "1"}); err == nil {
		t.Error("missing date must be rejected")
	}
}

func TestDeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t)

	created, _ := svc.Create(ctx, &Record{PatientID: "1", Date: "2025-01-10"})

	ok, err := svc.Delete(ctx, created.ID.String())
	if err != nil || !ok {
		t.Fatalf("delete: %v, %v", ok, err)
	}
	if rec, _ := svc.Get(ctx, created.ID.String()); rec != nil {
		t.Error("deleted record still readable")
	}
	if ok, _ := svc.Delete(ctx, created.ID.String()); ok {
		t.Error("double delete reported true")
	}
}
