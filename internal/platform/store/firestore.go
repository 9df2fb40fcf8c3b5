package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firestorepb "cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is the remote document store adapter.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore connects to the given project. credentialsFile may be empty,
// in which case application-default credentials are used.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

// Collection returns the remote handle for one top-level collection.
func (f *Firestore) Collection(name string) Remote {
	return &fsCollection{client: f.client, ref: f.client.Collection(name)}
}

type fsCollection struct {
	client *firestore.Client
	ref    *firestore.CollectionRef
}

var _ Remote = (*fsCollection)(nil)

func (c *fsCollection) FindAll(ctx context.Context) ([]Record, error) {
	return collect(c.ref.Documents(ctx))
}

func (c *fsCollection) FindByID(ctx context.Context, id string) (Record, error) {
	snap, err := c.ref.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", c.ref.Path, id, err)
	}
	return toRecord(snap), nil
}

func (c *fsCollection) Create(ctx context.Context, data Record) (Record, error) {
	doc, _, err := c.ref.Add(ctx, map[string]any(data))
	if err != nil {
		return nil, fmt.Errorf("add to %s: %w", c.ref.Path, err)
	}
	rec := data.Clone()
	rec["id"] = doc.ID
	return rec, nil
}

func (c *fsCollection) Update(ctx context.Context, id string, data Record) (Record, error) {
	doc := c.ref.Doc(id)
	snap, err := doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", c.ref.Path, id, err)
	}
	fields := data.Clone()
	delete(fields, "id")
	if _, err := doc.Set(ctx, map[string]any(fields), firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", c.ref.Path, id, err)
	}
	merged := toRecord(snap)
	for k, v := range fields {
		merged[k] = v
	}
	return merged, nil
}

func (c *fsCollection) Delete(ctx context.Context, id string) (bool, error) {
	doc := c.ref.Doc(id)
	_, err := doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", c.ref.Path, id, err)
	}
	if _, err := doc.Delete(ctx); err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", c.ref.Path, id, err)
	}
	return true, nil
}

func (c *fsCollection) Find(ctx context.Context, q Query) ([]Record, error) {
	return collect(c.build(q).Documents(ctx))
}

// Count runs a server-side aggregation; no documents are materialized.
func (c *fsCollection) Count(ctx context.Context, q Query) (int64, error) {
	fq := c.build(q)
	agg := fq.NewAggregationQuery().WithCount("all")
	result, err := agg.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.ref.Path, err)
	}
	v, ok := result["all"]
	if !ok {
		return 0, fmt.Errorf("count %s: missing aggregation result", c.ref.Path)
	}
	value, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count %s: unexpected aggregation type %T", c.ref.Path, v)
	}
	return value.GetIntegerValue(), nil
}

func (c *fsCollection) UpdateWhere(ctx context.Context, q Query, fields Record) (int, error) {
	docs, err := c.build(q).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", c.ref.Path, err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	batch := c.client.Batch()
	for _, doc := range docs {
		batch.Set(doc.Ref, map[string]any(fields), firestore.MergeAll)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("batch update %s: %w", c.ref.Path, err)
	}
	return len(docs), nil
}

func (c *fsCollection) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	batch := c.client.Batch()
	for _, id := range ids {
		batch.Delete(c.ref.Doc(id))
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("batch delete %s: %w", c.ref.Path, err)
	}
	return nil
}

func (c *fsCollection) Set(ctx context.Context, id string, data Record) error {
	fields := data.Clone()
	delete(fields, "id")
	if _, err := c.ref.Doc(id).Set(ctx, map[string]any(fields)); err != nil {
		return fmt.Errorf("set %s/%s: %w", c.ref.Path, id, err)
	}
	return nil
}

func (c *fsCollection) Sub(parentID, name string) Remote {
	return &fsCollection{client: c.client, ref: c.ref.Doc(parentID).Collection(name)}
}

func (c *fsCollection) build(q Query) firestore.Query {
	fq := c.ref.Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

func collect(it *firestore.DocumentIterator) ([]Record, error) {
	defer it.Stop()
	var records []Record
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate documents: %w", err)
		}
		records = append(records, toRecord(snap))
	}
}

func toRecord(snap *firestore.DocumentSnapshot) Record {
	rec := Record(snap.Data())
	if rec == nil {
		rec = Record{}
	}
	rec["id"] = snap.Ref.ID
	return rec
}
