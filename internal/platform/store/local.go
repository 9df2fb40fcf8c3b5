package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
)

// Local is the flat-file fallback store: one UTF-8 JSON file per collection,
// holding a single JSON array of records. Every operation reads the whole
// array, mutates it in memory and rewrites the whole file.
//
// Writers within one process are serialized per collection. Concurrent
// writers to the same file from multiple processes are not supported (last
// write wins).
type Local struct {
	dir string

	mu   sync.Mutex
	cols map[string]*LocalCollection
}

// NewLocal creates a file store rooted at dir. The directory is created on
// first write, not here.
func NewLocal(dir string) *Local {
	return &Local{dir: dir, cols: make(map[string]*LocalCollection)}
}

// Collection returns the handle for one named collection. Handles are shared
// so that the per-collection write lock is too.
func (l *Local) Collection(name string) *LocalCollection {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.cols[name]
	if !ok {
		c = &LocalCollection{path: filepath.Join(l.dir, name+".json")}
		l.cols[name] = c
	}
	return c
}

// LocalCollection is one collection file.
type LocalCollection struct {
	path string
	mu   sync.Mutex
}

var _ Collection = (*LocalCollection)(nil)

func (c *LocalCollection) FindAll(ctx context.Context) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *LocalCollection) FindByID(ctx context.Context, id string) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if SameID(rec["id"], id) {
			return rec, nil
		}
	}
	return nil, nil
}

// Create assigns the next monotonic numeric ID: max existing numeric ID + 1,
// or 1 when the collection is empty. Non-numeric IDs count as 0.
func (c *LocalCollection) Create(ctx context.Context, data Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return nil, err
	}
	rec := data.Clone()
	rec["id"] = nextID(records)
	records = append(records, rec)
	if err := c.write(records); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *LocalCollection) Update(ctx context.Context, id string, data Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		if !SameID(rec["id"], id) {
			continue
		}
		merged := rec.Clone()
		for k, v := range data {
			if k == "id" {
				continue
			}
			merged[k] = v
		}
		records[i] = merged
		if err := c.write(records); err != nil {
			return nil, err
		}
		return merged, nil
	}
	return nil, nil
}

func (c *LocalCollection) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return false, err
	}
	kept := records[:0]
	for _, rec := range records {
		if !SameID(rec["id"], id) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := c.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateWhere changes every matching record in memory, then rewrites the
// file once. Atomic only at the file-write boundary.
func (c *LocalCollection) UpdateWhere(ctx context.Context, q Query, fields Record) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return 0, err
	}
	n := 0
	for i, rec := range records {
		if !matches(rec, q.Filters) {
			continue
		}
		merged := rec.Clone()
		for k, v := range fields {
			if k == "id" {
				continue
			}
			merged[k] = v
		}
		records[i] = merged
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := c.write(records); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *LocalCollection) read() ([]Record, error) {
	raw, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return records, nil
}

func (c *LocalCollection) write(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", c.path, err)
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

func nextID(records []Record) int {
	max := 0
	for _, rec := range records {
		n := numericID(rec["id"])
		if n > max {
			max = n
		}
	}
	return max + 1
}

func numericID(v any) int {
	switch id := v.(type) {
	case float64:
		return int(id)
	case int:
		return id
	case string:
		n, err := strconv.Atoi(id)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ApplyQuery evaluates a query against an in-memory record set. This is the
// local emulation of the remote store's filter/order/limit primitives; for
// equal inputs it must produce the same logical result as the remote path.
func ApplyQuery(records []Record, q Query) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, q.Filters) {
			out = append(out, rec)
		}
	}
	if q.OrderBy != "" {
		SortBy(out, q.OrderBy, q.Desc)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matches(rec Record, filters []Filter) bool {
	for _, f := range filters {
		if !valueEqual(rec[f.Field], f.Value) {
			return false
		}
	}
	return true
}

// valueEqual compares with the same coercion the query layer promises:
// numbers and strings match by their string form, booleans strictly.
func valueEqual(a, b any) bool {
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if aok || bok {
		return aok && bok && ab == bb
	}
	return NormalizeID(a) == NormalizeID(b)
}

// SortBy orders records in place by one field. Numbers compare numerically,
// everything else by string form (ISO-8601 timestamps sort correctly this
// way).
func SortBy(records []Record, field string, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		less := valueLess(records[i][field], records[j][field])
		if desc {
			return valueLess(records[j][field], records[i][field])
		}
		return less
	})
}

func valueLess(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
