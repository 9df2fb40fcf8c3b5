package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

// fakeRemote is an in-memory Remote used to exercise the fallback resolver.
// With fail=true every call errors, simulating an unreachable remote store.
type fakeRemote struct {
	fail    bool
	records map[string]Record
	nextID  int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: map[string]Record{}, nextID: 1}
}

func (f *fakeRemote) err() error {
	if f.fail {
		return fmt.Errorf("remote unavailable")
	}
	return nil
}

func (f *fakeRemote) FindAll(ctx context.Context) ([]Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	var out []Record
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRemote) FindByID(ctx context.Context, id string) (Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeRemote) Create(ctx context.Context, data Record) (Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	rec := data.Clone()
	rec["id"] = fmt.Sprintf("r%d", f.nextID)
	f.nextID++
	f.records[rec.ID()] = rec
	return rec, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, data Record) (Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	for k, v := range data {
		if k != "id" {
			rec[k] = v
		}
	}
	return rec, nil
}

func (f *fakeRemote) Delete(ctx context.Context, id string) (bool, error) {
	if err := f.err(); err != nil {
		return false, err
	}
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	delete(f.records, id)
	return true, nil
}

func (f *fakeRemote) Find(ctx context.Context, q Query) ([]Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	all, _ := f.FindAll(ctx)
	return ApplyQuery(all, q), nil
}

func (f *fakeRemote) Count(ctx context.Context, q Query) (int64, error) {
	if err := f.err(); err != nil {
		return 0, err
	}
	all, _ := f.FindAll(ctx)
	return int64(len(ApplyQuery(all, q))), nil
}

func (f *fakeRemote) UpdateWhere(ctx context.Context, q Query, fields Record) (int, error) {
	if err := f.err(); err != nil {
		return 0, err
	}
	all, _ := f.FindAll(ctx)
	n := 0
	for _, rec := range ApplyQuery(all, q) {
		f.Update(ctx, rec.ID(), fields)
		n++
	}
	return n, nil
}

func (f *fakeRemote) DeleteMany(ctx context.Context, ids []string) error {
	if err := f.err(); err != nil {
		return err
	}
	for _, id := range ids {
		delete(f.records, id)
	}
	return nil
}

func (f *fakeRemote) Set(ctx context.Context, id string, data Record) error {
	if err := f.err(); err != nil {
		return err
	}
	rec := data.Clone()
	rec["id"] = id
	f.records[id] = rec
	return nil
}

func (f *fakeRemote) Sub(parentID, name string) Remote { return f }

func newTestDual(t *testing.T, remote Remote) *Dual {
	t.Helper()
	local := NewLocal(t.TempDir()).Collection("things")
	return NewDual("things", remote, local, zerolog.Nop())
}

func TestDualPrefersRemote(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	d := newTestDual(t, remote)

	rec, src, err := d.Create(ctx, Record{"name": "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if src != SourceRemote {
		t.Errorf("source = %s, want remote", src)
	}
	if rec.ID() != "r1" {
		t.Errorf("remote store should assign the id, got %q", rec.ID())
	}
}

func TestDualFallsBackOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail = true
	d := newTestDual(t, remote)

	rec, src, err := d.Create(ctx, Record{"name": "a"})
	if err != nil {
		t.Fatalf("create should succeed via fallback: %v", err)
	}
	if src != SourceLocal {
		t.Errorf("source = %s, want local", src)
	}
	if rec.ID() != "1" {
		t.Errorf("local path should assign numeric id 1, got %q", rec.ID())
	}

	found, src, err := d.FindByID(ctx, rec.ID())
	if err != nil || found == nil {
		t.Fatalf("findById via fallback: %v, %v", found, err)
	}
	if src != SourceLocal {
		t.Errorf("source = %s, want local", src)
	}
}

func TestDualRemoteNotFoundDoesNotFallBack(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	d := newTestDual(t, remote)

	// Seed the local store with an id the healthy remote does not have.
	d.LocalStore().Create(ctx, Record{"name": "ghost"})

	rec, src, err := d.FindByID(ctx, "1")
	if err != nil {
		t.Fatalf("findById: %v", err)
	}
	if src != SourceRemote {
		t.Errorf("healthy remote must serve the call, got %s", src)
	}
	if rec != nil {
		t.Errorf("remote not-found must surface as nil, not fall through to local: %v", rec)
	}
}

func TestDualLocalOnlyWhenRemoteUnconfigured(t *testing.T) {
	ctx := context.Background()
	d := newTestDual(t, nil)

	rec, src, err := d.Create(ctx, Record{"name": "offline"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if src != SourceLocal || rec.ID() != "1" {
		t.Errorf("unconfigured remote must go straight to local: %s %q", src, rec.ID())
	}
}

func TestDualErrorOnlyWhenBothFail(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail = true
	local := NewLocal("/dev/null/nope").Collection("things")
	d := NewDual("things", remote, local, zerolog.Nop())

	if _, _, err := d.Create(ctx, Record{"name": "a"}); err == nil {
		t.Fatal("want error when both stores fail")
	}
}

func TestDualFindEmulatesQueryLocally(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail = true
	d := newTestDual(t, remote)

	d.Create(ctx, Record{"userId": "u1", "createdAt": "2025-02-01T00:00:00Z"})
	d.Create(ctx, Record{"userId": "u1", "createdAt": "2025-03-01T00:00:00Z"})
	d.Create(ctx, Record{"userId": "u2", "createdAt": "2025-01-01T00:00:00Z"})

	got, src, err := d.Find(ctx, Query{}.Where("userId", "u1").Order("createdAt", true))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if src != SourceLocal {
		t.Errorf("source = %s, want local", src)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0]["createdAt"] != "2025-03-01T00:00:00Z" {
		t.Errorf("descending order expected, got %v first", got[0]["createdAt"])
	}

	n, _, err := d.Count(ctx, Query{}.Where("userId", "u1"))
	if err != nil || n != 2 {
		t.Errorf("count = %d, %v, want 2", n, err)
	}
}
