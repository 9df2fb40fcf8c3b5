package assessment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/schema"
	"github.com/diacare/diacare/internal/platform/store"
)

func newLocalRepo(t *testing.T) *StoreRepo {
	t.Helper()
	local := store.NewLocal(t.TempDir()).Collection(LocalCollectionName)
	return NewStoreRepo(nil, local, zerolog.Nop())
}

func at(t *testing.T, iso string) schema.Time {
	t.Helper()
	var ts schema.Time
	if err := ts.UnmarshalJSON([]byte(`"` + iso + `"`)); err != nil {
		t.Fatalf("parse %s: %v", iso, err)
	}
	return ts
}

func TestHistoryNewestFirstPerPatient(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	repo.Save(ctx, "1", &Assessment{RiskLevel: RiskLow, Score: 10, AssessedAt: at(t, "2025-01-01T00:00:00Z")})
	repo.Save(ctx, "1", &Assessment{RiskLevel: RiskHigh, Score: 80, AssessedAt: at(t, "2025-02-01T00:00:00Z")})
	repo.Save(ctx, "2", &Assessment{RiskLevel: RiskModerate, Score: 40, AssessedAt: at(t, "2025-03-01T00:00:00Z")})

	history, err := repo.History(ctx, "1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len = %d, want 2", len(history))
	}
	if history[0].RiskLevel != RiskHigh {
		t.Errorf("newest first expected, got %s", history[0].RiskLevel)
	}
	for _, a := range history {
		if !a.PatientID.Equal("1") {
			t.Errorf("foreign patient's assessment leaked: %+v", a)
		}
	}
}

func TestSaveAssignsTimestampAndID(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t)

	saved, err := repo.Save(ctx, "1", &Assessment{RiskLevel: RiskLow, Score: 5})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved assessment has no id")
	}
	if saved.AssessedAt.IsZero() {
		t.Error("assessedAt not defaulted")
	}
}

func TestRecordValidatesRiskLevel(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newLocalRepo(t))

	if _, err := svc.Record(ctx, "1", &Assessment{RiskLevel: "catastrophic"}); err == nil {
		t.Error("unknown risk level must be rejected")
	}
	if _, err := svc.Record(ctx, "", &Assessment{RiskLevel: RiskLow}); err == nil {
		t.Error("missing patient id must be rejected")
	}
}
