package store

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// Source tags which backend served a call.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Dual composes the remote and local adapters for one collection: remote
// first, local on remote failure, straight to local when no remote store is
// configured. A remote not-found is a result, never a reason to fall back.
//
// The two stores are not synchronized; fallback is read/write-through on the
// failing path only.
type Dual struct {
	name   string
	remote Remote // nil when the remote store is not configured
	local  *LocalCollection
	log    zerolog.Logger
}

func NewDual(name string, remote Remote, local *LocalCollection, log zerolog.Logger) *Dual {
	return &Dual{
		name:   name,
		remote: remote,
		local:  local,
		log:    log.With().Str("collection", name).Logger(),
	}
}

// Name returns the logical collection name.
func (d *Dual) Name() string { return d.name }

// RemoteStore exposes the remote adapter for specialized queries. Nil when
// the system runs local-only.
func (d *Dual) RemoteStore() Remote { return d.remote }

// LocalStore exposes the local adapter for specialized query emulation.
func (d *Dual) LocalStore() *LocalCollection { return d.local }

// Resolve runs remoteFn against the remote adapter and falls back to localFn
// when the remote call fails (or when no remote adapter exists). The returned
// Source tag reports which path produced the result, so callers and tests can
// observe the serving backend without reaching into internals. An error is
// returned only when both paths fail.
func Resolve[T any](
	ctx context.Context,
	d *Dual,
	op string,
	remoteFn func(context.Context, Remote) (T, error),
	localFn func(context.Context, *LocalCollection) (T, error),
) (T, Source, error) {
	if d.remote != nil {
		v, err := remoteFn(ctx, d.remote)
		if err == nil {
			return v, SourceRemote, nil
		}
		d.log.Warn().Err(err).Str("op", op).Msg("remote store failed, falling back to local")
	}
	v, err := localFn(ctx, d.local)
	if err != nil {
		var zero T
		d.log.Error().Err(err).Str("op", op).Msg("local store failed")
		return zero, SourceLocal, err
	}
	return v, SourceLocal, nil
}

func (d *Dual) FindAll(ctx context.Context) ([]Record, Source, error) {
	return Resolve(ctx, d, "findAll",
		func(ctx context.Context, r Remote) ([]Record, error) { return r.FindAll(ctx) },
		func(ctx context.Context, l *LocalCollection) ([]Record, error) { return l.FindAll(ctx) },
	)
}

func (d *Dual) FindByID(ctx context.Context, id string) (Record, Source, error) {
	return Resolve(ctx, d, "findById",
		func(ctx context.Context, r Remote) (Record, error) { return r.FindByID(ctx, id) },
		func(ctx context.Context, l *LocalCollection) (Record, error) { return l.FindByID(ctx, id) },
	)
}

// Create persists a new record. The remote store assigns document IDs; the
// local path assigns the next monotonic numeric ID.
func (d *Dual) Create(ctx context.Context, data Record) (Record, Source, error) {
	return Resolve(ctx, d, "create",
		func(ctx context.Context, r Remote) (Record, error) { return r.Create(ctx, data) },
		func(ctx context.Context, l *LocalCollection) (Record, error) { return l.Create(ctx, data) },
	)
}

func (d *Dual) Update(ctx context.Context, id string, data Record) (Record, Source, error) {
	return Resolve(ctx, d, "update",
		func(ctx context.Context, r Remote) (Record, error) { return r.Update(ctx, id, data) },
		func(ctx context.Context, l *LocalCollection) (Record, error) { return l.Update(ctx, id, data) },
	)
}

func (d *Dual) Delete(ctx context.Context, id string) (bool, Source, error) {
	return Resolve(ctx, d, "delete",
		func(ctx context.Context, r Remote) (bool, error) { return r.Delete(ctx, id) },
		func(ctx context.Context, l *LocalCollection) (bool, error) { return l.Delete(ctx, id) },
	)
}

// Find runs a query: natively on the remote path, as a full scan plus
// in-memory filter/sort/limit on the local path.
func (d *Dual) Find(ctx context.Context, q Query) ([]Record, Source, error) {
	return Resolve(ctx, d, "find",
		func(ctx context.Context, r Remote) ([]Record, error) { return r.Find(ctx, q) },
		func(ctx context.Context, l *LocalCollection) ([]Record, error) {
			records, err := l.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			return ApplyQuery(records, q), nil
		},
	)
}

// Count counts matches without materializing them on the remote path; the
// local path scans.
func (d *Dual) Count(ctx context.Context, q Query) (int64, Source, error) {
	return Resolve(ctx, d, "count",
		func(ctx context.Context, r Remote) (int64, error) { return r.Count(ctx, q) },
		func(ctx context.Context, l *LocalCollection) (int64, error) {
			records, err := l.FindAll(ctx)
			if err != nil {
				return 0, err
			}
			return int64(len(ApplyQuery(records, q))), nil
		},
	)
}

// FindByRef queries by a logical foreign-key field whose stored type varies
// between numeric and string across records. The remote path tries the
// numeric form first and retries with the string form when nothing matches;
// the local path's scan compares string forms directly.
func (d *Dual) FindByRef(ctx context.Context, field, id string, q Query) ([]Record, Source, error) {
	return Resolve(ctx, d, "findByRef",
		func(ctx context.Context, r Remote) ([]Record, error) {
			if n, err := strconv.Atoi(id); err == nil {
				recs, err := r.Find(ctx, q.Where(field, n))
				if err != nil {
					return nil, err
				}
				if len(recs) > 0 {
					return recs, nil
				}
			}
			return r.Find(ctx, q.Where(field, id))
		},
		func(ctx context.Context, l *LocalCollection) ([]Record, error) {
			records, err := l.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			return ApplyQuery(records, q.Where(field, id)), nil
		},
	)
}

// UpdateWhere applies field changes to all matches: one atomic batch on the
// remote path; on the local path the records are changed in memory and the
// file rewritten once.
func (d *Dual) UpdateWhere(ctx context.Context, q Query, fields Record) (int, Source, error) {
	return Resolve(ctx, d, "updateWhere",
		func(ctx context.Context, r Remote) (int, error) { return r.UpdateWhere(ctx, q, fields) },
		func(ctx context.Context, l *LocalCollection) (int, error) {
			return l.UpdateWhere(ctx, q, fields)
		},
	)
}
