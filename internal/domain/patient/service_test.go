package patient

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/domain/doctor"
	"github.com/diacare/diacare/internal/platform/store"
)

func newLocalRepos(t *testing.T) (*StoreRepo, *doctor.StoreRepo) {
	t.Helper()
	local := store.NewLocal(t.TempDir())
	patients := NewStoreRepo(store.NewDual(CollectionName, nil, local.Collection(CollectionName), zerolog.Nop()))
	doctors := doctor.NewStoreRepo(store.NewDual(doctor.CollectionName, nil, local.Collection(doctor.CollectionName), zerolog.Nop()))
	return patients, doctors
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	patients, doctors := newLocalRepos(t)
	svc := NewService(patients, doctors)

	created, err := svc.Create(ctx, &Patient{Name: "Ada", Email: "ada@example.com", Age: 44, Type: Type2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created patient has no id")
	}

	got, err := svc.Get(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Ada" || got.Type != Type2 {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	patients, doctors := newLocalRepos(t)
	svc := NewService(patients, doctors)

	got, err := svc.Get(ctx, "404")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("want nil for missing patient, got %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	patients, doctors := newLocalRepos(t)
	svc := NewService(patients, doctors)

	if _, err := svc.Create(ctx, &Patient{}); err == nil {
		t.Error("missing name must be rejected")
	}
	if _, err := svc.Create(ctx, &Patient{Name: "Ada", Type: "Type 9"}); err == nil {
		t.Error("unknown diabetes type must be rejected")
	}
	if _, err := svc.Create(ctx, &Patient{Name: "Ada", Email: "not-an-email"}); err == nil {
		t.Error("malformed email must be rejected")
	}
}

func TestLookupByEmailAndPhone(t *testing.T) {
	ctx := context.Background()
	patients, doctors := newLocalRepos(t)
	svc := NewService(patients, doctors)

	svc.Create(ctx, &Patient{Name: "Ada", Email: "ada@example.com", Phone: "555-0001"})
	svc.Create(ctx, &Patient{Name: "Bob", Email: "bob@example.com", Phone: "555-0002"})

	byEmail, err := svc.GetByEmail(ctx, "bob@example.com")
	if err != nil || byEmail == nil || byEmail.Name != "Bob" {
		t.Errorf("byEmail = %+v, %v", byEmail, err)
	}
	byPhone, err := svc.GetByPhone(ctx, "555-0001")
	if err != nil || byPhone == nil || byPhone.Name != "Ada" {
		t.Errorf("byPhone = %+v, %v", byPhone, err)
	}
	missing, err := svc.GetByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("missing lookup = %+v, %v", missing, err)
	}
}

func TestDoctorSummaryAttachedOnReads(t *testing.T) {
	ctx := context.Background()
	patients, doctors := newLocalRepos(t)
	svc := NewService(patients, doctors)

	doc, err := doctors.Create(ctx, &doctor.Doctor{Name: "Dr. Gray", Specialty: "Endocrinology"})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	created, err := svc.Create(ctx, &Patient{Name: "Ada", DoctorID: doc.ID})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	got, err := svc.Get(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DoctorName != "Dr. Gray" || got.DoctorSpecialty != "Endocrinology" {
		t.Errorf("doctor summary not attached: %+v", got)
	}

	// Joined fields are never persisted.
	raw, err := patients.FindByID(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("findById: %v", err)
	}
	if raw.DoctorName != "" {
		t.Error("joined doctorName leaked into the store")
	}
}

func TestAliasesResolveAccountUID(t *testing.T) {
	ctx := context.Background()
	patients, doctors := newLocalRepos(t)
	svc := NewService(patients, doctors)

	created, _ := svc.Create(ctx, &Patient{Name: "Ada", UID: "uid-ada"})

	aliases := svc.Aliases(ctx, created.ID.String())
	if len(aliases) != 1 || aliases[0] != "uid-ada" {
		t.Errorf("aliases = %v, want [uid-ada]", aliases)
	}
	if got := svc.Aliases(ctx, "404"); got != nil {
		t.Errorf("aliases for missing patient = %v, want nil", got)
	}
}
