package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/diacare/diacare/internal/platform/schema"
	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical notification collection.
const CollectionName = "notifications"

// TokenCollectionName is the device-token collection.
const TokenCollectionName = "fcm_tokens"

// StoreRepo implements Repo over the dual-backend store. Listing and
// counting run natively on the remote path and as scan/filter/sort on the
// local path; both must agree for equal inputs.
type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) Create(ctx context.Context, n *Notification) (*Notification, error) {
	n.Read = false
	n.CreatedAt = schema.Now()
	rec, err := store.Encode(n)
	if err != nil {
		return nil, err
	}
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	var out Notification
	if err := store.Decode(created, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreRepo) FindByUserID(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := store.Query{}.Where("userId", userID)
	if opts.UnreadOnly {
		q = q.Where("read", false)
	}
	q = q.Order("createdAt", true).Take(limit)

	recs, _, err := r.col.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Notification](recs)
}

func (r *StoreRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	q := store.Query{}.Where("userId", userID).Where("read", false)
	n, _, err := r.col.Count(ctx, q)
	return n, err
}

func (r *StoreRepo) MarkAsRead(ctx context.Context, id string) (*Notification, error) {
	rec, _, err := r.col.Update(ctx, id, store.Record{"read": true})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	var out Notification
	if err := store.Decode(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreRepo) MarkAllAsRead(ctx context.Context, userID string) (MarkAllResult, error) {
	q := store.Query{}.Where("userId", userID).Where("read", false)
	n, _, err := r.col.UpdateWhere(ctx, q, store.Record{"read": true})
	if err != nil {
		return MarkAllResult{}, err
	}
	return MarkAllResult{Updated: n}, nil
}

// StoreTokenRepo implements TokenRepo over the dual-backend store. On the
// remote path the token doubles as the document ID, which makes registration
// a natural upsert; the local path emulates the upsert with a scan.
type StoreTokenRepo struct {
	col *store.Dual
}

func NewStoreTokenRepo(col *store.Dual) *StoreTokenRepo {
	return &StoreTokenRepo{col: col}
}

func (r *StoreTokenRepo) Register(ctx context.Context, token, userID string) error {
	if token == "" {
		return schema.NewValidationError("token", "is required")
	}
	rec := store.Record{
		"token":     token,
		"userId":    userID,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	_, _, err := store.Resolve(ctx, r.col, "registerToken",
		func(ctx context.Context, rem store.Remote) (struct{}, error) {
			return struct{}{}, rem.Set(ctx, token, rec)
		},
		func(ctx context.Context, local *store.LocalCollection) (struct{}, error) {
			existing, err := r.findLocalByToken(ctx, local, token)
			if err != nil {
				return struct{}{}, err
			}
			if existing != nil {
				_, err = local.Update(ctx, existing.ID(), rec)
			} else {
				_, err = local.Create(ctx, rec)
			}
			return struct{}{}, err
		},
	)
	return err
}

func (r *StoreTokenRepo) TokensForUser(ctx context.Context, userID string) ([]string, error) {
	recs, _, err := r.col.Find(ctx, store.Query{}.Where("userId", userID))
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(recs))
	for _, rec := range recs {
		if tok, ok := rec["token"].(string); ok && tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func (r *StoreTokenRepo) RemoveTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	_, _, err := store.Resolve(ctx, r.col, "removeTokens",
		func(ctx context.Context, rem store.Remote) (struct{}, error) {
			return struct{}{}, rem.DeleteMany(ctx, tokens)
		},
		func(ctx context.Context, local *store.LocalCollection) (struct{}, error) {
			dead := make(map[string]bool, len(tokens))
			for _, t := range tokens {
				dead[t] = true
			}
			recs, err := local.FindAll(ctx)
			if err != nil {
				return struct{}{}, err
			}
			for _, rec := range recs {
				tok, _ := rec["token"].(string)
				if !dead[tok] {
					continue
				}
				if _, err := local.Delete(ctx, rec.ID()); err != nil {
					return struct{}{}, err
				}
			}
			return struct{}{}, nil
		},
	)
	return err
}

func (r *StoreTokenRepo) findLocalByToken(ctx context.Context, local *store.LocalCollection, token string) (store.Record, error) {
	recs, err := local.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", TokenCollectionName, err)
	}
	for _, rec := range recs {
		if tok, _ := rec["token"].(string); tok == token {
			return rec, nil
		}
	}
	return nil, nil
}
